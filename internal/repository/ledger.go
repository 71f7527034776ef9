package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/lib/pq"
)

// ListCommitments returns investor investments and bank credits as one
// commitment set. projectID 0 means all projects, including unassigned
// credits.
func (r *Repository) ListCommitments(ctx context.Context, projectID int64) ([]models.FundingCommitment, error) {
	var commitments []models.FundingCommitment

	investmentQuery := `
		SELECT i.id, i.investor_id, inv.name, COALESCE(i.project_id, 0),
		       i.amount, i.usage_expires_at, i.grace_days, i.committed_at,
		       i.matures_at, i.expected_return
		FROM landmark.investments i
		JOIN landmark.investors inv ON inv.id = i.investor_id
		WHERE $1 = 0 OR i.project_id = $1
		ORDER BY i.id`
	rows, err := r.db.QueryContext(ctx, investmentQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	commitments, err = scanCommitments(rows, commitments, models.FunderInvestor)
	if err != nil {
		return nil, err
	}

	creditQuery := `
		SELECT c.id, c.bank_id, b.name, COALESCE(c.project_id, 0),
		       c.amount, c.usage_expires_at, c.grace_days, c.committed_at,
		       c.matures_at, c.interest_rate
		FROM landmark.bank_credits c
		JOIN landmark.banks b ON b.id = c.bank_id
		WHERE $1 = 0 OR c.project_id = $1
		ORDER BY c.id`
	rows, err = r.db.QueryContext(ctx, creditQuery, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank credits: %w", err)
	}
	commitments, err = scanCommitments(rows, commitments, models.FunderBank)
	if err != nil {
		return nil, err
	}

	return commitments, nil
}

func scanCommitments(rows *sql.Rows, out []models.FundingCommitment, funderType models.FunderType) ([]models.FundingCommitment, error) {
	defer rows.Close()
	for rows.Next() {
		var c models.FundingCommitment
		var expiresAt, maturesAt sql.NullTime
		var rate sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.FunderID, &c.FunderName, &c.ProjectID,
			&c.Amount, &expiresAt, &c.GraceDays, &c.CommittedAt,
			&maturesAt, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan commitment: %w", err)
		}
		c.FunderType = funderType
		if expiresAt.Valid {
			t := expiresAt.Time
			c.UsageExpiresAt = &t
		}
		if maturesAt.Valid {
			t := maturesAt.Time
			c.MaturesAt = &t
		}
		if rate.Valid {
			v := rate.Float64
			c.Rate = &v
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commitments: %w", err)
	}
	return out, nil
}

// ListDisbursements returns wire payments attributed to the given funder
// identities. Attribution is by funder, not by commitment row.
func (r *Repository) ListDisbursements(ctx context.Context, funders []models.FunderKey) ([]models.DisbursementRecord, error) {
	var investorIDs, bankIDs []int64
	for _, f := range funders {
		switch f.Type {
		case models.FunderInvestor:
			investorIDs = append(investorIDs, f.ID)
		case models.FunderBank:
			bankIDs = append(bankIDs, f.ID)
		}
	}

	query := `
		SELECT id, funder_type, funder_id, amount, paid_at
		FROM landmark.wire_payments
		WHERE (funder_type = 'investor' AND funder_id = ANY($1))
		   OR (funder_type = 'bank' AND funder_id = ANY($2))
		ORDER BY paid_at, id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(investorIDs), pq.Array(bankIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list disbursements: %w", err)
	}
	defer rows.Close()

	var records []models.DisbursementRecord
	for rows.Next() {
		var d models.DisbursementRecord
		if err := rows.Scan(&d.ID, &d.FunderType, &d.FunderID, &d.Amount, &d.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan disbursement: %w", err)
		}
		records = append(records, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read disbursements: %w", err)
	}
	return records, nil
}
