package service

import (
	"context"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/Lovrevar/Landmark-sub006/internal/notifications"
)

// SweepOverdue promotes pending bank installments past their due date to
// overdue. Idempotent and safe to run concurrently with reads; scheduled
// periodically from main. Newly promoted installments trigger a reminder
// mail to the configured operator address.
func (s *Service) SweepOverdue(ctx context.Context) error {
	now := s.now()
	// Overdue is a day-granularity transition: an installment due today
	// is not yet overdue, whatever the wall-clock time. Pass the day
	// boundary, not the full timestamp.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	promoted, err := s.store.PromoteOverdue(ctx, today)
	if err != nil {
		return err
	}
	if len(promoted) == 0 {
		return nil
	}
	s.log.Infof("Promoted %d installment(s) to overdue", len(promoted))

	if s.mailer == nil || s.config.OperatorEmail == "" {
		return nil
	}
	for _, row := range promoted {
		n := notifications.Build([]models.BankScheduleRow{row}, nil, now)[0]
		if err := s.mailer.SendOverdueReminder(s.config.OperatorEmail, n); err != nil {
			// Reminder mail is best effort; the promotion already
			// committed.
			s.log.Errorf("Failed to send overdue reminder for installment %d: %v", row.ID, err)
		}
	}
	return nil
}
