package funding

import (
	"testing"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func commitment(id int64, name string, amount int64) models.FundingCommitment {
	return models.FundingCommitment{
		ID:          id,
		FunderID:    id,
		FunderName:  name,
		FunderType:  models.FunderInvestor,
		ProjectID:   1,
		Amount:      decimal.NewFromInt(amount),
		CommittedAt: testNow.AddDate(-1, 0, 0),
	}
}

func disbursement(funderID, amount int64) models.DisbursementRecord {
	return models.DisbursementRecord{
		FunderID:   funderID,
		FunderType: models.FunderInvestor,
		Amount:     decimal.NewFromInt(amount),
		PaidAt:     testNow.AddDate(0, -1, 0),
	}
}

func TestEvaluateSourceHighUtilization(t *testing.T) {
	c := commitment(1, "Alpha Capital", 100000)
	src, warnings := EvaluateSource(c, []models.DisbursementRecord{disbursement(1, 85000)}, testNow)

	if !src.Spent.Equal(decimal.NewFromInt(85000)) {
		t.Errorf("Expected spent 85000, got %s", src.Spent)
	}
	if !src.Available.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Expected available 15000, got %s", src.Available)
	}
	if src.UtilizationPct != 85.0 {
		t.Errorf("Expected utilization 85, got %f", src.UtilizationPct)
	}
	if src.Status != models.SourceActive {
		t.Errorf("Expected status active, got %s", src.Status)
	}
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if warnings[0] != "Alpha Capital: 85% utilized" {
		t.Errorf("Unexpected warning: %q", warnings[0])
	}
}

func TestEvaluateSourceOverspendIsDepleted(t *testing.T) {
	c := commitment(1, "Alpha Capital", 50000)
	disbursements := []models.DisbursementRecord{
		disbursement(1, 30000),
		disbursement(1, 22000),
	}
	src, warnings := EvaluateSource(c, disbursements, testNow)

	if !src.Available.Equal(decimal.NewFromInt(-2000)) {
		t.Errorf("Expected available -2000, got %s", src.Available)
	}
	if src.Status != models.SourceDepleted {
		t.Errorf("Expected status depleted, got %s", src.Status)
	}
	if len(warnings) != 1 || warnings[0] != "Alpha Capital: Funds fully depleted" {
		t.Errorf("Unexpected warnings: %v", warnings)
	}
}

func TestEvaluateSourceDepletedWinsOverExpired(t *testing.T) {
	expired := testNow.AddDate(0, -2, 0)
	c := commitment(1, "Alpha Capital", 1000)
	c.UsageExpiresAt = &expired
	src, _ := EvaluateSource(c, []models.DisbursementRecord{disbursement(1, 1000)}, testNow)

	if src.Status != models.SourceDepleted {
		t.Errorf("Expected depleted to take precedence over expired, got %s", src.Status)
	}
}

func TestEvaluateSourceExpiredWithFundsRemaining(t *testing.T) {
	expired := testNow.AddDate(0, 0, -1)
	c := commitment(1, "Banka Zagreb", 100000)
	c.UsageExpiresAt = &expired
	src, warnings := EvaluateSource(c, []models.DisbursementRecord{disbursement(1, 40000)}, testNow)

	if src.Status != models.SourceExpired {
		t.Errorf("Expected status expired, got %s", src.Status)
	}
	if !src.Available.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("Expected available 60000, got %s", src.Available)
	}
	if len(warnings) != 1 || warnings[0] != "Banka Zagreb: Usage period expired" {
		t.Errorf("Unexpected warnings: %v", warnings)
	}
}

func TestEvaluateSourceExpiringSoon(t *testing.T) {
	expires := testNow.AddDate(0, 0, 10)
	c := commitment(1, "Banka Zagreb", 100000)
	c.UsageExpiresAt = &expires
	src, warnings := EvaluateSource(c, nil, testNow)

	if src.Status != models.SourceExpiringSoon {
		t.Errorf("Expected status expiring_soon, got %s", src.Status)
	}
	if len(warnings) != 1 || warnings[0] != "Banka Zagreb: Expires in 10 days" {
		t.Errorf("Unexpected warnings: %v", warnings)
	}
}

func TestEvaluateSourceExpirationBeyondWindowIsActive(t *testing.T) {
	expires := testNow.AddDate(0, 0, 31)
	c := commitment(1, "Alpha Capital", 100000)
	c.UsageExpiresAt = &expires
	src, warnings := EvaluateSource(c, nil, testNow)

	if src.Status != models.SourceActive {
		t.Errorf("Expected status active, got %s", src.Status)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestEvaluateSourceZeroTotal(t *testing.T) {
	c := commitment(1, "Alpha Capital", 0)
	src, _ := EvaluateSource(c, nil, testNow)

	if src.UtilizationPct != 0 {
		t.Errorf("Expected utilization 0 for zero total, got %f", src.UtilizationPct)
	}
	if src.Status != models.SourceDepleted {
		t.Errorf("Expected zero-total commitment to read depleted, got %s", src.Status)
	}
}

func TestEvaluateSourceAttributionIsByFunder(t *testing.T) {
	c := commitment(1, "Alpha Capital", 100000)
	disbursements := []models.DisbursementRecord{
		disbursement(1, 10000),
		disbursement(2, 99999), // different funder, ignored
		{FunderID: 1, FunderType: models.FunderBank, Amount: decimal.NewFromInt(5000), PaidAt: testNow}, // same id, different type
	}
	src, _ := EvaluateSource(c, disbursements, testNow)

	if !src.Spent.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Expected spent 10000, got %s", src.Spent)
	}
}
