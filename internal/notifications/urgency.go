package notifications

import (
	"fmt"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/models"
)

// Classify maps a notification's status and due date to an urgency level
// and operator message. The overdue check runs before the due-today
// check: an entry already flagged overdue never reads as "Due today".
func Classify(status models.NotificationStatus, dueDate, now time.Time) (models.UrgencyLevel, string) {
	days := daysUntil(now, dueDate)
	switch {
	case status == models.StatusOverdue || days < 0:
		late := days
		if late < 0 {
			late = -late
		}
		return models.UrgencyCritical, fmt.Sprintf("Overdue by %d %s", late, dayWord(late))
	case days == 0:
		return models.UrgencyCritical, "Due today"
	case days <= 7:
		return models.UrgencyHigh, fmt.Sprintf("Due in %d %s", days, dayWord(days))
	case days <= 30:
		return models.UrgencyMedium, fmt.Sprintf("Due in %d days", days)
	default:
		return models.UrgencyLow, fmt.Sprintf("Due in %d days", days)
	}
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
