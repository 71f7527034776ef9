package funding

import (
	"testing"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/shopspring/decimal"
)

func source(projectID int64, total, spent int64) models.FundingSource {
	return models.FundingSource{
		ProjectID: projectID,
		Total:     decimal.NewFromInt(total),
		Spent:     decimal.NewFromInt(spent),
		Available: decimal.NewFromInt(total - spent),
	}
}

func TestSummarizeProjectTotals(t *testing.T) {
	summary := SummarizeProject(1, []models.FundingSource{
		source(1, 100000, 40000),
		source(1, 50000, 10000),
	}, []string{"a warning"})

	if !summary.TotalCommitted.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected committed 150000, got %s", summary.TotalCommitted)
	}
	if !summary.TotalSpent.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected spent 50000, got %s", summary.TotalSpent)
	}
	if !summary.TotalAvailable.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("Expected available 100000, got %s", summary.TotalAvailable)
	}
	want := 100.0 * 50000 / 150000
	if diff := summary.UtilizationPct - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected utilization %f, got %f", want, summary.UtilizationPct)
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("Expected warnings to carry through, got %v", summary.Warnings)
	}
}

func TestSummarizeProjectZeroCommitted(t *testing.T) {
	summary := SummarizeProject(1, nil, nil)
	if summary.UtilizationPct != 0 {
		t.Errorf("Expected utilization 0 with no sources, got %f", summary.UtilizationPct)
	}
}

func TestSummarizeAllGroupsByProject(t *testing.T) {
	commitments := []models.FundingCommitment{
		{ID: 1, FunderID: 1, FunderName: "A", FunderType: models.FunderInvestor, ProjectID: 2, Amount: decimal.NewFromInt(1000)},
		{ID: 2, FunderID: 2, FunderName: "B", FunderType: models.FunderBank, ProjectID: 1, Amount: decimal.NewFromInt(2000)},
		{ID: 3, FunderID: 3, FunderName: "C", FunderType: models.FunderBank, ProjectID: 0, Amount: decimal.NewFromInt(9000)}, // unassigned OPEX credit
	}
	summaries := SummarizeAll(commitments, nil, testNow)

	if len(summaries) != 2 {
		t.Fatalf("Expected 2 project summaries, got %d", len(summaries))
	}
	if summaries[0].ProjectID != 1 || summaries[1].ProjectID != 2 {
		t.Errorf("Expected project order [1 2], got [%d %d]", summaries[0].ProjectID, summaries[1].ProjectID)
	}
}

func TestRollupUtilizationFromSummedTotals(t *testing.T) {
	// Per-project utilizations are 10% and 90%; the rollup must not
	// average them.
	summaries := []models.ProjectFundingSummary{
		SummarizeProject(1, []models.FundingSource{source(1, 100000, 10000)}, nil),
		SummarizeProject(2, []models.FundingSource{source(2, 10000, 9000)}, nil),
	}
	global := Rollup(summaries)

	want := 100.0 * 19000 / 110000
	if diff := global.UtilizationPct - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected global utilization %f, got %f", want, global.UtilizationPct)
	}
}

func TestAggregationAssociativity(t *testing.T) {
	sources := []models.FundingSource{
		source(1, 100000, 40000),
		source(1, 50000, 50000),
		source(2, 80000, 10000),
		source(3, 20000, 25000),
	}

	perProject := map[int64][]models.FundingSource{}
	for _, s := range sources {
		perProject[s.ProjectID] = append(perProject[s.ProjectID], s)
	}
	var summaries []models.ProjectFundingSummary
	for id, group := range perProject {
		summaries = append(summaries, SummarizeProject(id, group, nil))
	}
	global := Rollup(summaries)

	direct := SummarizeProject(0, sources, nil)
	if !global.TotalCommitted.Equal(direct.TotalCommitted) {
		t.Errorf("Committed mismatch: %s vs %s", global.TotalCommitted, direct.TotalCommitted)
	}
	if !global.TotalSpent.Equal(direct.TotalSpent) {
		t.Errorf("Spent mismatch: %s vs %s", global.TotalSpent, direct.TotalSpent)
	}
	if !global.TotalAvailable.Equal(direct.TotalAvailable) {
		t.Errorf("Available mismatch: %s vs %s", global.TotalAvailable, direct.TotalAvailable)
	}
}
