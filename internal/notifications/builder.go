package notifications

import (
	"sort"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Build merges bank installment rows and subcontractor milestone rows
// into one notification stream, sorted ascending by due date. The sort
// is stable: entries sharing a due date keep their relative input order.
// Derivation is pure and idempotent: unchanged rows always produce the
// same list.
func Build(bankRows []models.BankScheduleRow, milestones []models.MilestoneRow, now time.Time) []models.PaymentNotification {
	list := make([]models.PaymentNotification, 0, len(bankRows)+len(milestones))
	for _, row := range bankRows {
		list = append(list, fromBankRow(row, now))
	}
	for _, row := range milestones {
		n, ok := fromMilestoneRow(row, now)
		if !ok {
			continue
		}
		list = append(list, n)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].DueDate.Before(list[j].DueDate)
	})
	return list
}

// Visible filters out terminal notifications (completed or dismissed).
// Active dashboard views use this; callers wanting the full history pass
// the unfiltered list.
func Visible(list []models.PaymentNotification) []models.PaymentNotification {
	out := make([]models.PaymentNotification, 0, len(list))
	for _, n := range list {
		if n.Status == models.StatusCompleted || n.Status == models.StatusDismissed {
			continue
		}
		out = append(out, n)
	}
	return out
}

func fromBankRow(row models.BankScheduleRow, now time.Time) models.PaymentNotification {
	status := row.Status
	// Read-time promotion: a pending installment past due is observable
	// as overdue even before the persistence sweep has run.
	if status == models.StatusPending && daysUntil(now, row.DueDate) < 0 {
		status = models.StatusOverdue
	}

	n := models.PaymentNotification{
		Source:      models.SourceBank,
		ScheduleID:  row.ID,
		PayeeName:   row.BankName,
		ProjectName: row.ProjectName,
		Amount:      row.Amount,
		DueDate:     row.DueDate,
		Status:      status,
		Type:        installmentType(row.InstallmentNo, row.TotalInstallments),
	}
	n.Urgency, n.Message = Classify(status, row.DueDate, now)
	return n
}

func fromMilestoneRow(row models.MilestoneRow, now time.Time) (models.PaymentNotification, bool) {
	if row.DueDate == nil {
		return models.PaymentNotification{}, false
	}
	if row.Status != models.MilestonePending && row.Status != models.MilestonePaid {
		return models.PaymentNotification{}, false
	}

	status := models.StatusPending
	switch {
	case row.Status == models.MilestonePaid:
		status = models.StatusCompleted
	case daysUntil(now, *row.DueDate) < 0:
		status = models.StatusOverdue
	}

	n := models.PaymentNotification{
		Source:      models.SourceSubcontractor,
		ScheduleID:  row.ID,
		PayeeName:   row.SubcontractorName,
		ProjectName: row.ProjectName,
		Amount:      row.ContractValue.Mul(row.Percentage).Div(oneHundred),
		DueDate:     *row.DueDate,
		Status:      status,
		Type:        models.TypeMilestone,
	}
	n.Urgency, n.Message = Classify(status, *row.DueDate, now)
	return n, true
}

func installmentType(no, total int) models.NotificationType {
	switch {
	case total > 0 && no == total:
		return models.TypeFinalPayment
	case no == 1:
		return models.TypeFirstPayment
	default:
		return models.TypeRecurring
	}
}

// daysUntil returns whole calendar days from now to t, negative when t is
// in the past. Time-of-day is ignored.
func daysUntil(now, t time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
