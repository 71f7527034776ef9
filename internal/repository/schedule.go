package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/lib/pq"
)

// ScheduleFilter narrows schedule listings. Zero value means no filter.
type ScheduleFilter struct {
	Statuses  []models.NotificationStatus
	DueBefore *time.Time
}

// ListBankScheduleEntries returns bank credit repayment installments
// joined with bank and project display names.
func (r *Repository) ListBankScheduleEntries(ctx context.Context, filter ScheduleFilter) ([]models.BankScheduleRow, error) {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, string(s))
	}

	query := `
		SELECT s.id, s.credit_id, b.name, COALESCE(p.name, ''),
		       s.installment_no,
		       COUNT(*) OVER (PARTITION BY s.credit_id),
		       s.amount, s.due_date, s.status, s.dismissed_at, s.dismissed_by
		FROM landmark.credit_payment_schedule s
		JOIN landmark.bank_credits c ON c.id = s.credit_id
		JOIN landmark.banks b ON b.id = c.bank_id
		LEFT JOIN landmark.projects p ON p.id = c.project_id
		WHERE (cardinality($1::text[]) = 0 OR s.status = ANY($1))
		  AND ($2::date IS NULL OR s.due_date < $2::date)
		ORDER BY s.due_date, s.id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(statuses), filter.DueBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank schedule entries: %w", err)
	}
	defer rows.Close()

	var entries []models.BankScheduleRow
	for rows.Next() {
		row, err := scanBankRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bank schedule entries: %w", err)
	}
	return entries, nil
}

// GetBankScheduleEntry retrieves a single installment by id
func (r *Repository) GetBankScheduleEntry(ctx context.Context, id int64) (*models.BankScheduleRow, error) {
	query := `
		SELECT s.id, s.credit_id, b.name, COALESCE(p.name, ''),
		       s.installment_no,
		       (SELECT COUNT(*) FROM landmark.credit_payment_schedule WHERE credit_id = s.credit_id),
		       s.amount, s.due_date, s.status, s.dismissed_at, s.dismissed_by
		FROM landmark.credit_payment_schedule s
		JOIN landmark.bank_credits c ON c.id = s.credit_id
		JOIN landmark.banks b ON b.id = c.bank_id
		LEFT JOIN landmark.projects p ON p.id = c.project_id
		WHERE s.id = $1`
	row, err := scanBankRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bank schedule entry %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBankRow(s rowScanner) (*models.BankScheduleRow, error) {
	var row models.BankScheduleRow
	var dismissedAt sql.NullTime
	var dismissedBy sql.NullInt64
	err := s.Scan(&row.ID, &row.CreditID, &row.BankName, &row.ProjectName,
		&row.InstallmentNo, &row.TotalInstallments,
		&row.Amount, &row.DueDate, &row.Status, &dismissedAt, &dismissedBy)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan bank schedule entry: %w", err)
	}
	if dismissedAt.Valid {
		t := dismissedAt.Time
		row.DismissedAt = &t
	}
	if dismissedBy.Valid {
		v := dismissedBy.Int64
		row.DismissedBy = &v
	}
	return &row, nil
}

// ListMilestoneScheduleEntries returns subcontractor milestones joined
// with contract value and display names. Milestones without a due date
// are included; the notification builder skips them.
func (r *Repository) ListMilestoneScheduleEntries(ctx context.Context, filter ScheduleFilter) ([]models.MilestoneRow, error) {
	query := `
		SELECT m.id, m.contract_id, ct.subcontractor_id, sc.name,
		       COALESCE(p.name, ''), m.percentage, ct.total_value,
		       m.due_date, m.status, m.paid_at
		FROM landmark.contract_milestones m
		JOIN landmark.contracts ct ON ct.id = m.contract_id
		JOIN landmark.subcontractors sc ON sc.id = ct.subcontractor_id
		LEFT JOIN landmark.projects p ON p.id = ct.project_id
		WHERE ($1::date IS NULL OR m.due_date < $1::date)
		ORDER BY m.due_date NULLS LAST, m.id`
	rows, err := r.db.QueryContext(ctx, query, filter.DueBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	defer rows.Close()

	var entries []models.MilestoneRow
	for rows.Next() {
		row, err := scanMilestoneRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read milestones: %w", err)
	}
	return entries, nil
}

// GetMilestone retrieves a single milestone by id
func (r *Repository) GetMilestone(ctx context.Context, id int64) (*models.MilestoneRow, error) {
	query := `
		SELECT m.id, m.contract_id, ct.subcontractor_id, sc.name,
		       COALESCE(p.name, ''), m.percentage, ct.total_value,
		       m.due_date, m.status, m.paid_at
		FROM landmark.contract_milestones m
		JOIN landmark.contracts ct ON ct.id = m.contract_id
		JOIN landmark.subcontractors sc ON sc.id = ct.subcontractor_id
		LEFT JOIN landmark.projects p ON p.id = ct.project_id
		WHERE m.id = $1`
	row, err := scanMilestoneRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("milestone %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func scanMilestoneRow(s rowScanner) (*models.MilestoneRow, error) {
	var row models.MilestoneRow
	var dueDate, paidAt sql.NullTime
	err := s.Scan(&row.ID, &row.ContractID, &row.SubcontractorID, &row.SubcontractorName,
		&row.ProjectName, &row.Percentage, &row.ContractValue,
		&dueDate, &row.Status, &paidAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan milestone: %w", err)
	}
	if dueDate.Valid {
		t := dueDate.Time
		row.DueDate = &t
	}
	if paidAt.Valid {
		t := paidAt.Time
		row.PaidAt = &t
	}
	return &row, nil
}

// DismissBankEntry marks an installment dismissed and stamps who did it
// and when. Last write wins; the single-operator assumption makes
// concurrent dismissals an accepted race.
func (r *Repository) DismissBankEntry(ctx context.Context, id, actorID int64, dismissedAt time.Time) error {
	query := `
		UPDATE landmark.credit_payment_schedule
		SET status = 'dismissed', dismissed_at = $2, dismissed_by = $3
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, dismissedAt, actorID); err != nil {
		return fmt.Errorf("failed to dismiss bank schedule entry %d: %w", id, err)
	}
	return nil
}

// CompleteBankEntry marks an installment completed
func (r *Repository) CompleteBankEntry(ctx context.Context, id int64) error {
	query := `
		UPDATE landmark.credit_payment_schedule
		SET status = 'completed'
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to complete bank schedule entry %d: %w", id, err)
	}
	return nil
}

// MarkMilestoneComplete transitions a milestone to paid with a paid date
func (r *Repository) MarkMilestoneComplete(ctx context.Context, id int64, paidAt time.Time) error {
	query := `
		UPDATE landmark.contract_milestones
		SET status = 'paid', paid_at = $2
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, paidAt); err != nil {
		return fmt.Errorf("failed to mark milestone %d complete: %w", id, err)
	}
	return nil
}

// PromoteOverdue flips pending installments whose due date has passed to
// overdue and returns the promoted rows. Idempotent: already-overdue rows
// are untouched.
func (r *Repository) PromoteOverdue(ctx context.Context, today time.Time) ([]models.BankScheduleRow, error) {
	query := `
		UPDATE landmark.credit_payment_schedule s
		SET status = 'overdue'
		FROM landmark.bank_credits c
		JOIN landmark.banks b ON b.id = c.bank_id
		LEFT JOIN landmark.projects p ON p.id = c.project_id
		WHERE c.id = s.credit_id
		  AND s.status = 'pending'
		  AND s.due_date < $1::date
		RETURNING s.id, s.credit_id, b.name, COALESCE(p.name, ''),
		          s.installment_no, 0,
		          s.amount, s.due_date, s.status, s.dismissed_at, s.dismissed_by`
	rows, err := r.db.QueryContext(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("failed to promote overdue entries: %w", err)
	}
	defer rows.Close()

	var promoted []models.BankScheduleRow
	for rows.Next() {
		row, err := scanBankRow(rows)
		if err != nil {
			return nil, err
		}
		promoted = append(promoted, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read promoted entries: %w", err)
	}
	return promoted, nil
}
