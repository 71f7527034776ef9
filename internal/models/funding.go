package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FunderType discriminates who backs a commitment
type FunderType string

const (
	FunderInvestor FunderType = "investor"
	FunderBank     FunderType = "bank"
)

// SourceStatus classifies an evaluated funding source
type SourceStatus string

const (
	SourceActive       SourceStatus = "active"
	SourceExpiringSoon SourceStatus = "expiring_soon"
	SourceExpired      SourceStatus = "expired"
	SourceDepleted     SourceStatus = "depleted"
)

// FunderKey identifies a funder across commitment and disbursement rows
type FunderKey struct {
	Type FunderType
	ID   int64
}

// FundingCommitment represents an investor investment or a bank credit
// extended to a project. ProjectID 0 means an unassigned/OPEX credit.
type FundingCommitment struct {
	ID             int64           `json:"id"`
	FunderID       int64           `json:"funder_id"`
	FunderName     string          `json:"funder_name"`
	FunderType     FunderType      `json:"funder_type"`
	ProjectID      int64           `json:"project_id"`
	Amount         decimal.Decimal `json:"amount"`
	UsageExpiresAt *time.Time      `json:"usage_expires_at,omitempty"`
	GraceDays      int             `json:"grace_days"`
	CommittedAt    time.Time       `json:"committed_at"`
	MaturesAt      *time.Time      `json:"matures_at,omitempty"`
	Rate           *float64        `json:"rate,omitempty"`
}

// Funder returns the commitment's funder key
func (c *FundingCommitment) Funder() FunderKey {
	return FunderKey{Type: c.FunderType, ID: c.FunderID}
}

// DisbursementRecord is a realized payment drawn against a funder.
// Append-only; the engine never updates or deletes these.
type DisbursementRecord struct {
	ID         int64           `json:"id"`
	FunderID   int64           `json:"funder_id"`
	FunderType FunderType      `json:"funder_type"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAt     time.Time       `json:"paid_at"`
}

// Funder returns the disbursement's funder key
func (d *DisbursementRecord) Funder() FunderKey {
	return FunderKey{Type: d.FunderType, ID: d.FunderID}
}

// FundingSource is one evaluated commitment. Derived on every read,
// never persisted.
type FundingSource struct {
	CommitmentID   int64           `json:"commitment_id"`
	FunderName     string          `json:"funder_name"`
	FunderType     FunderType      `json:"funder_type"`
	ProjectID      int64           `json:"project_id"`
	Total          decimal.Decimal `json:"total"`
	Spent          decimal.Decimal `json:"spent"`
	Available      decimal.Decimal `json:"available"`
	UtilizationPct float64         `json:"utilization_pct"`
	UsageExpiresAt *time.Time      `json:"usage_expires_at,omitempty"`
	Status         SourceStatus    `json:"status"`
}

// ProjectFundingSummary aggregates all funding sources of a project
type ProjectFundingSummary struct {
	ProjectID      int64           `json:"project_id"`
	TotalCommitted decimal.Decimal `json:"total_committed"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	UtilizationPct float64         `json:"utilization_pct"`
	Sources        []FundingSource `json:"sources"`
	Warnings       []string        `json:"warnings"`
}
