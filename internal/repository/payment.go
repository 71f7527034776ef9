package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/shopspring/decimal"
)

// CreateInvoice inserts an accounting invoice for a bank credit payment
func (r *Repository) CreateInvoice(ctx context.Context, id string, creditID int64, amount decimal.Decimal, issuedAt time.Time, notes string) error {
	query := `
		INSERT INTO landmark.invoices (id, credit_id, amount, issued_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)`
	if _, err := r.db.ExecContext(ctx, query, id, creditID, amount, issuedAt, notes); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// CreateInvoicePayment inserts the payment settling an invoice
func (r *Repository) CreateInvoicePayment(ctx context.Context, id, invoiceID string, amount decimal.Decimal, paidAt time.Time) error {
	query := `
		INSERT INTO landmark.invoice_payments (id, invoice_id, amount, paid_at, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)`
	if _, err := r.db.ExecContext(ctx, query, id, invoiceID, amount, paidAt); err != nil {
		return fmt.Errorf("failed to create invoice payment: %w", err)
	}
	return nil
}

// DecrementCreditBalance reduces a credit's outstanding balance by the
// paid amount
func (r *Repository) DecrementCreditBalance(ctx context.Context, creditID int64, amount decimal.Decimal) error {
	query := `
		UPDATE landmark.bank_credits
		SET outstanding_balance = outstanding_balance - $2
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, creditID, amount); err != nil {
		return fmt.Errorf("failed to decrement balance of credit %d: %w", creditID, err)
	}
	return nil
}

// CreateWirePayment inserts a wire payment to a subcontractor, optionally
// attributed to an investor or bank funder
func (r *Repository) CreateWirePayment(ctx context.Context, id string, subcontractorID, milestoneID int64, amount decimal.Decimal, paidAt time.Time, notes string, paidBy *models.FunderKey) error {
	var funderType *models.FunderType
	var funderID *int64
	if paidBy != nil {
		funderType = &paidBy.Type
		funderID = &paidBy.ID
	}
	query := `
		INSERT INTO landmark.wire_payments
			(payment_ref, subcontractor_id, milestone_id, amount, paid_at, notes, funder_type, funder_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)`
	if _, err := r.db.ExecContext(ctx, query, id, subcontractorID, milestoneID, amount, paidAt, notes, funderType, funderID); err != nil {
		return fmt.Errorf("failed to create wire payment: %w", err)
	}
	return nil
}
