package funding

import (
	"sort"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/shopspring/decimal"
)

// SummarizeProject rolls one project's evaluated sources into a summary.
// Utilization is recomputed from the summed totals.
func SummarizeProject(projectID int64, sources []models.FundingSource, warnings []string) models.ProjectFundingSummary {
	summary := models.ProjectFundingSummary{
		ProjectID:      projectID,
		TotalCommitted: decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalAvailable: decimal.Zero,
		Sources:        sources,
		Warnings:       warnings,
	}
	for _, s := range sources {
		summary.TotalCommitted = summary.TotalCommitted.Add(s.Total)
		summary.TotalSpent = summary.TotalSpent.Add(s.Spent)
		summary.TotalAvailable = summary.TotalAvailable.Add(s.Available)
	}
	if !summary.TotalCommitted.IsZero() {
		summary.UtilizationPct = summary.TotalSpent.Div(summary.TotalCommitted).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return summary
}

// SummarizeAll evaluates every commitment and groups the resulting
// sources per project, ordered by project id. Commitments without a
// project (unassigned/OPEX credits) and projects with zero funding
// sources are not reported.
func SummarizeAll(commitments []models.FundingCommitment, disbursements []models.DisbursementRecord, now time.Time) []models.ProjectFundingSummary {
	byFunder := make(map[models.FunderKey][]models.DisbursementRecord)
	for _, d := range disbursements {
		byFunder[d.Funder()] = append(byFunder[d.Funder()], d)
	}

	sources := make(map[int64][]models.FundingSource)
	warnings := make(map[int64][]string)
	for _, c := range commitments {
		if c.ProjectID == 0 {
			continue
		}
		src, warns := EvaluateSource(c, byFunder[c.Funder()], now)
		sources[c.ProjectID] = append(sources[c.ProjectID], src)
		warnings[c.ProjectID] = append(warnings[c.ProjectID], warns...)
	}

	projectIDs := make([]int64, 0, len(sources))
	for id := range sources {
		projectIDs = append(projectIDs, id)
	}
	sort.Slice(projectIDs, func(i, j int) bool { return projectIDs[i] < projectIDs[j] })

	summaries := make([]models.ProjectFundingSummary, 0, len(projectIDs))
	for _, id := range projectIDs {
		summaries = append(summaries, SummarizeProject(id, sources[id], warnings[id]))
	}
	return summaries
}

// Rollup sums per-project summaries into a global summary. Utilization is
// recomputed from the summed totals, never averaged from per-project
// percentages.
func Rollup(summaries []models.ProjectFundingSummary) models.ProjectFundingSummary {
	global := models.ProjectFundingSummary{
		TotalCommitted: decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalAvailable: decimal.Zero,
	}
	for _, s := range summaries {
		global.TotalCommitted = global.TotalCommitted.Add(s.TotalCommitted)
		global.TotalSpent = global.TotalSpent.Add(s.TotalSpent)
		global.TotalAvailable = global.TotalAvailable.Add(s.TotalAvailable)
		global.Warnings = append(global.Warnings, s.Warnings...)
	}
	if !global.TotalCommitted.IsZero() {
		global.UtilizationPct = global.TotalSpent.Div(global.TotalCommitted).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return global
}
