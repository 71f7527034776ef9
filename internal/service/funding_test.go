package service

import (
	"context"
	"testing"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/shopspring/decimal"
)

func TestProjectFundingEvaluatesSnapshot(t *testing.T) {
	store := &fakeStore{
		commitments: []models.FundingCommitment{
			{ID: 1, FunderID: 1, FunderName: "Alpha Capital", FunderType: models.FunderInvestor, ProjectID: 1, Amount: decimal.NewFromInt(100000)},
			{ID: 2, FunderID: 2, FunderName: "Banka Zagreb", FunderType: models.FunderBank, ProjectID: 1, Amount: decimal.NewFromInt(50000)},
		},
		disbursements: []models.DisbursementRecord{
			{FunderID: 1, FunderType: models.FunderInvestor, Amount: decimal.NewFromInt(85000), PaidAt: testNow},
			{FunderID: 2, FunderType: models.FunderBank, Amount: decimal.NewFromInt(52000), PaidAt: testNow},
		},
	}
	svc := newTestService(store)

	summary, err := svc.ProjectFunding(context.Background(), 1)
	if err != nil {
		t.Fatalf("ProjectFunding failed: %v", err)
	}
	if len(summary.Sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(summary.Sources))
	}
	if summary.Sources[0].Status != models.SourceActive {
		t.Errorf("Expected first source active, got %s", summary.Sources[0].Status)
	}
	if summary.Sources[1].Status != models.SourceDepleted {
		t.Errorf("Expected over-spent source depleted, got %s", summary.Sources[1].Status)
	}
	if !summary.TotalAvailable.Equal(decimal.NewFromInt(13000)) {
		t.Errorf("Expected total available 13000, got %s", summary.TotalAvailable)
	}
	wantWarnings := []string{"Alpha Capital: 85% utilized", "Banka Zagreb: Funds fully depleted"}
	if len(summary.Warnings) != 2 || summary.Warnings[0] != wantWarnings[0] || summary.Warnings[1] != wantWarnings[1] {
		t.Errorf("Expected warnings %v, got %v", wantWarnings, summary.Warnings)
	}
}

func TestProjectFundingDeduplicatesFunderQueries(t *testing.T) {
	// Two commitments backed by the same funder must query that funder's
	// disbursements once.
	store := &fakeStore{
		commitments: []models.FundingCommitment{
			{ID: 1, FunderID: 1, FunderName: "Alpha Capital", FunderType: models.FunderInvestor, ProjectID: 1, Amount: decimal.NewFromInt(100000)},
			{ID: 2, FunderID: 1, FunderName: "Alpha Capital", FunderType: models.FunderInvestor, ProjectID: 1, Amount: decimal.NewFromInt(40000)},
		},
	}
	svc := newTestService(store)

	if _, err := svc.ProjectFunding(context.Background(), 1); err != nil {
		t.Fatalf("ProjectFunding failed: %v", err)
	}
	if len(store.funderQueries) != 1 || len(store.funderQueries[0]) != 1 {
		t.Errorf("Expected one query for one distinct funder, got %v", store.funderQueries)
	}
}

func TestAllProjectFundingRollup(t *testing.T) {
	store := &fakeStore{
		commitments: []models.FundingCommitment{
			{ID: 1, FunderID: 1, FunderName: "Alpha Capital", FunderType: models.FunderInvestor, ProjectID: 1, Amount: decimal.NewFromInt(100000)},
			{ID: 2, FunderID: 2, FunderName: "Banka Zagreb", FunderType: models.FunderBank, ProjectID: 2, Amount: decimal.NewFromInt(50000)},
		},
		disbursements: []models.DisbursementRecord{
			{FunderID: 1, FunderType: models.FunderInvestor, Amount: decimal.NewFromInt(30000), PaidAt: testNow},
		},
	}
	svc := newTestService(store)

	overview, err := svc.AllProjectFunding(context.Background())
	if err != nil {
		t.Fatalf("AllProjectFunding failed: %v", err)
	}
	if len(overview.Projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(overview.Projects))
	}
	if !overview.Global.TotalCommitted.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected global committed 150000, got %s", overview.Global.TotalCommitted)
	}
	want := 100.0 * 30000 / 150000
	if diff := overview.Global.UtilizationPct - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected global utilization %f, got %f", want, overview.Global.UtilizationPct)
	}
}
