package service

import (
	"context"

	"github.com/Lovrevar/Landmark-sub006/internal/funding"
	"github.com/Lovrevar/Landmark-sub006/internal/models"
)

// ProjectFunding evaluates every funding source of one project and
// returns its summary. All derivation happens over a fresh snapshot of
// the ledger; nothing is cached between calls.
func (s *Service) ProjectFunding(ctx context.Context, projectID int64) (*models.ProjectFundingSummary, error) {
	commitments, err := s.store.ListCommitments(ctx, projectID)
	if err != nil {
		return nil, err
	}
	disbursements, err := s.listDisbursementsFor(ctx, commitments)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sources := make([]models.FundingSource, 0, len(commitments))
	var warnings []string
	for _, c := range commitments {
		src, warns := funding.EvaluateSource(c, disbursements, now)
		sources = append(sources, src)
		warnings = append(warnings, warns...)
	}
	summary := funding.SummarizeProject(projectID, sources, warnings)
	return &summary, nil
}

// FundingOverview holds per-project summaries plus the global rollup
type FundingOverview struct {
	Projects []models.ProjectFundingSummary `json:"projects"`
	Global   models.ProjectFundingSummary   `json:"global"`
}

// AllProjectFunding evaluates funding across every project. Projects
// without funding sources are not listed.
func (s *Service) AllProjectFunding(ctx context.Context) (*FundingOverview, error) {
	commitments, err := s.store.ListCommitments(ctx, 0)
	if err != nil {
		return nil, err
	}
	disbursements, err := s.listDisbursementsFor(ctx, commitments)
	if err != nil {
		return nil, err
	}

	summaries := funding.SummarizeAll(commitments, disbursements, s.now())
	return &FundingOverview{
		Projects: summaries,
		Global:   funding.Rollup(summaries),
	}, nil
}

func (s *Service) listDisbursementsFor(ctx context.Context, commitments []models.FundingCommitment) ([]models.DisbursementRecord, error) {
	seen := make(map[models.FunderKey]bool)
	var funders []models.FunderKey
	for _, c := range commitments {
		key := c.Funder()
		if !seen[key] {
			seen[key] = true
			funders = append(funders, key)
		}
	}
	if len(funders) == 0 {
		return nil, nil
	}
	return s.store.ListDisbursements(ctx, funders)
}
