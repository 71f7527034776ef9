package funding

import (
	"fmt"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/shopspring/decimal"
)

// expiryWarningDays is the window before usage expiration in which a
// source is flagged as expiring soon.
const expiryWarningDays = 30

// highUtilizationPct is the utilization threshold above which an active
// source emits an advisory warning.
const highUtilizationPct = 80.0

// EvaluateSource classifies one commitment against the disbursements
// attributed to its funder. Attribution is by funder identity, not by
// commitment row: a funder can back disbursements that are not linked to
// a specific commitment. Pure; re-evaluated from current data on every
// call.
func EvaluateSource(c models.FundingCommitment, disbursements []models.DisbursementRecord, now time.Time) (models.FundingSource, []string) {
	spent := decimal.Zero
	funder := c.Funder()
	for _, d := range disbursements {
		if d.Funder() == funder {
			spent = spent.Add(d.Amount)
		}
	}

	// Available may go negative on over-spend; never clamped.
	available := c.Amount.Sub(spent)

	utilization := 0.0
	if !c.Amount.IsZero() {
		utilization = spent.Div(c.Amount).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	source := models.FundingSource{
		CommitmentID:   c.ID,
		FunderName:     c.FunderName,
		FunderType:     c.FunderType,
		ProjectID:      c.ProjectID,
		Total:          c.Amount,
		Spent:          spent,
		Available:      available,
		UtilizationPct: utilization,
		UsageExpiresAt: c.UsageExpiresAt,
	}

	var warnings []string
	switch {
	case available.Sign() <= 0:
		source.Status = models.SourceDepleted
		warnings = append(warnings, fmt.Sprintf("%s: Funds fully depleted", c.FunderName))
	case c.UsageExpiresAt != nil && daysUntil(now, *c.UsageExpiresAt) < 0:
		source.Status = models.SourceExpired
		warnings = append(warnings, fmt.Sprintf("%s: Usage period expired", c.FunderName))
	case c.UsageExpiresAt != nil && daysUntil(now, *c.UsageExpiresAt) <= expiryWarningDays:
		source.Status = models.SourceExpiringSoon
		warnings = append(warnings, fmt.Sprintf("%s: Expires in %d days", c.FunderName, daysUntil(now, *c.UsageExpiresAt)))
	default:
		source.Status = models.SourceActive
		if utilization >= highUtilizationPct {
			warnings = append(warnings, fmt.Sprintf("%s: %.0f%% utilized", c.FunderName, utilization))
		}
	}

	return source, warnings
}

// daysUntil returns the number of whole calendar days from now to t,
// negative when t is in the past. Time-of-day is ignored.
func daysUntil(now, t time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
