package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/Lovrevar/Landmark-sub006/internal/notifications"
	"github.com/Lovrevar/Landmark-sub006/internal/repository"
	"github.com/google/uuid"
)

// visibleStatuses narrows bank schedule listings to the non-terminal
// entries shown in active views.
var visibleStatuses = []models.NotificationStatus{models.StatusPending, models.StatusOverdue}

// Notifications returns the unified notification stream. By default the
// terminal entries (completed, dismissed) are filtered out; includeAll
// returns the full history. dueBefore optionally restricts both
// schedules to entries due before that date.
func (s *Service) Notifications(ctx context.Context, includeAll bool, dueBefore *time.Time) ([]models.PaymentNotification, error) {
	filter := repository.ScheduleFilter{DueBefore: dueBefore}
	if !includeAll {
		filter.Statuses = visibleStatuses
	}
	list, err := s.buildNotifications(ctx, filter)
	if err != nil {
		return nil, err
	}
	if includeAll {
		return list, nil
	}
	// Milestone listings carry no status filter; paid milestones read as
	// completed and are dropped here.
	return notifications.Visible(list), nil
}

// NotificationStats computes dashboard counters over the currently
// visible notification set
func (s *Service) NotificationStats(ctx context.Context) (*models.NotificationStats, error) {
	list, err := s.buildNotifications(ctx, repository.ScheduleFilter{Statuses: visibleStatuses})
	if err != nil {
		return nil, err
	}
	stats := notifications.Stats(notifications.Visible(list), s.now())
	return &stats, nil
}

func (s *Service) buildNotifications(ctx context.Context, filter repository.ScheduleFilter) ([]models.PaymentNotification, error) {
	bankRows, err := s.store.ListBankScheduleEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	milestones, err := s.store.ListMilestoneScheduleEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	return notifications.Build(bankRows, milestones, s.now()), nil
}

// Dismiss marks a bank installment dismissed, stamping the acting
// operator and time. Only bank notifications can be dismissed;
// subcontractor milestones have no dismissal, only completion.
// Dismissing an already-completed installment is rejected.
func (s *Service) Dismiss(ctx context.Context, scheduleID, actorID int64) error {
	entry, err := s.store.GetBankScheduleEntry(ctx, scheduleID)
	if err != nil {
		return err
	}
	if entry.Status == models.StatusCompleted {
		return fmt.Errorf("cannot dismiss completed installment %d: %w", scheduleID, models.ErrInvalidTransition)
	}
	if err := s.store.DismissBankEntry(ctx, scheduleID, actorID, s.now()); err != nil {
		return err
	}
	s.log.Infof("Installment %d dismissed by operator %d", scheduleID, actorID)
	return nil
}

// Complete is the generic notification-completion step. Bank entries are
// marked completed; subcontractor milestones transition to paid without a
// recorded payment (a forced completion).
func (s *Service) Complete(ctx context.Context, source models.NotificationSource, scheduleID int64) error {
	switch source {
	case models.SourceBank:
		if _, err := s.store.GetBankScheduleEntry(ctx, scheduleID); err != nil {
			return err
		}
		return s.store.CompleteBankEntry(ctx, scheduleID)
	case models.SourceSubcontractor:
		if _, err := s.store.GetMilestone(ctx, scheduleID); err != nil {
			return err
		}
		return s.store.MarkMilestoneComplete(ctx, scheduleID, s.now())
	default:
		return fmt.Errorf("unknown notification source %q: %w", source, models.ErrInvalidTransition)
	}
}

// RecordBankPayment records a payment against the credit behind a bank
// installment: it creates an invoice and payment pair and decrements the
// credit's outstanding balance. The installment's own status is not
// touched; completion is a separate step. The workflow is not atomic:
// a failed step is reported as a PartialWriteError and earlier writes
// stay in place for manual reconciliation.
func (s *Service) RecordBankPayment(ctx context.Context, scheduleID int64, req models.BankPaymentRequest) (*models.BankPaymentResult, error) {
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("payment amount must be positive: %w", models.ErrInvalidTransition)
	}
	entry, err := s.store.GetBankScheduleEntry(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	invoiceID := uuid.NewString()
	paymentID := uuid.NewString()

	if err := s.store.CreateInvoice(ctx, invoiceID, entry.CreditID, req.Amount, req.Date, req.Notes); err != nil {
		return nil, &models.PartialWriteError{Step: "create invoice", Err: err}
	}
	if err := s.store.CreateInvoicePayment(ctx, paymentID, invoiceID, req.Amount, req.Date); err != nil {
		return nil, &models.PartialWriteError{Step: "create payment", Err: err}
	}
	if err := s.store.DecrementCreditBalance(ctx, entry.CreditID, req.Amount); err != nil {
		return nil, &models.PartialWriteError{Step: "decrement credit balance", Err: err}
	}

	s.log.Infof("Recorded payment of %s against credit %d (invoice %s)", req.Amount, entry.CreditID, invoiceID)
	return &models.BankPaymentResult{InvoiceID: invoiceID, PaymentID: paymentID}, nil
}

// RecordSubcontractorPayment creates a wire payment for a milestone,
// optionally attributed to an investor or bank, then transitions the
// milestone to paid. Same non-atomic step semantics as RecordBankPayment.
func (s *Service) RecordSubcontractorPayment(ctx context.Context, milestoneID int64, req models.SubcontractorPaymentRequest) (*models.SubcontractorPaymentResult, error) {
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("payment amount must be positive: %w", models.ErrInvalidTransition)
	}
	milestone, err := s.store.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if milestone.Status == models.MilestonePaid {
		return nil, fmt.Errorf("milestone %d already paid: %w", milestoneID, models.ErrInvalidTransition)
	}

	paymentID := uuid.NewString()
	if err := s.store.CreateWirePayment(ctx, paymentID, milestone.SubcontractorID, milestoneID, req.Amount, req.Date, req.Notes, req.PaidBy); err != nil {
		return nil, &models.PartialWriteError{Step: "create wire payment", Err: err}
	}
	if err := s.store.MarkMilestoneComplete(ctx, milestoneID, req.Date); err != nil {
		return nil, &models.PartialWriteError{Step: "mark milestone paid", Err: err}
	}

	s.log.Infof("Recorded wire payment of %s for milestone %d", req.Amount, milestoneID)
	return &models.SubcontractorPaymentResult{PaymentID: paymentID}, nil
}
