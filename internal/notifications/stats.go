package notifications

import (
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/shopspring/decimal"
)

// Stats computes dashboard counters over the given notification set.
// Callers pass the currently visible set; DueThisMonth is a superset of
// DueThisWeek, not exclusive of it.
func Stats(list []models.PaymentNotification, now time.Time) models.NotificationStats {
	stats := models.NotificationStats{
		TotalOverdueAmount: decimal.Zero,
		TotalAmountDue:     decimal.Zero,
	}
	for _, n := range list {
		days := daysUntil(now, n.DueDate)
		switch n.Status {
		case models.StatusPending:
			stats.TotalPending++
			stats.TotalAmountDue = stats.TotalAmountDue.Add(n.Amount)
			if days >= 0 && days <= 7 {
				stats.DueThisWeek++
			}
			if days >= 0 && days <= 30 {
				stats.DueThisMonth++
			}
		case models.StatusOverdue:
			stats.TotalOverdue++
			stats.TotalOverdueAmount = stats.TotalOverdueAmount.Add(n.Amount)
			stats.TotalAmountDue = stats.TotalAmountDue.Add(n.Amount)
		}
	}
	return stats
}
