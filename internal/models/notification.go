package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationSource discriminates the schedule a notification came from
type NotificationSource string

const (
	SourceBank          NotificationSource = "bank"
	SourceSubcontractor NotificationSource = "subcontractor"
)

// NotificationStatus is the lifecycle status of a payment notification
type NotificationStatus string

const (
	StatusPending   NotificationStatus = "pending"
	StatusOverdue   NotificationStatus = "overdue"
	StatusCompleted NotificationStatus = "completed"
	StatusDismissed NotificationStatus = "dismissed"
)

// NotificationType classifies the payment within its schedule
type NotificationType string

const (
	TypeFirstPayment NotificationType = "first_payment"
	TypeRecurring    NotificationType = "recurring"
	TypeFinalPayment NotificationType = "final_payment"
	TypeMilestone    NotificationType = "milestone"
)

// UrgencyLevel is a time-to-due-date classification independent of status
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyLow      UrgencyLevel = "low"
)

// MilestoneStatus is the persisted state of a subcontractor milestone.
// "paid" is the milestone's terminal state; there is no dismissal.
type MilestoneStatus string

const (
	MilestonePending MilestoneStatus = "pending"
	MilestonePaid    MilestoneStatus = "paid"
)

// BankScheduleRow is a persisted bank credit repayment installment
type BankScheduleRow struct {
	ID                int64              `json:"id"`
	CreditID          int64              `json:"credit_id"`
	BankName          string             `json:"bank_name"`
	ProjectName       string             `json:"project_name"`
	InstallmentNo     int                `json:"installment_no"`
	TotalInstallments int                `json:"total_installments"`
	Amount            decimal.Decimal    `json:"amount"`
	DueDate           time.Time          `json:"due_date"`
	Status            NotificationStatus `json:"status"`
	DismissedAt       *time.Time         `json:"dismissed_at,omitempty"`
	DismissedBy       *int64             `json:"dismissed_by,omitempty"`
}

// MilestoneRow is a persisted subcontractor payment milestone. The amount
// is derived from the contract value, never stored.
type MilestoneRow struct {
	ID                int64           `json:"id"`
	ContractID        int64           `json:"contract_id"`
	SubcontractorID   int64           `json:"subcontractor_id"`
	SubcontractorName string          `json:"subcontractor_name"`
	ProjectName       string          `json:"project_name"`
	Percentage        decimal.Decimal `json:"percentage"`
	ContractValue     decimal.Decimal `json:"contract_value"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	Status            MilestoneStatus `json:"status"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
}

// PaymentNotification is the unified, derived view over both schedules.
// Identity is (Source, ScheduleID); rebuilding from unchanged rows yields
// the same list.
type PaymentNotification struct {
	Source      NotificationSource `json:"source"`
	ScheduleID  int64              `json:"schedule_id"`
	PayeeName   string             `json:"payee_name"`
	ProjectName string             `json:"project_name"`
	Amount      decimal.Decimal    `json:"amount"`
	DueDate     time.Time          `json:"due_date"`
	Status      NotificationStatus `json:"status"`
	Type        NotificationType   `json:"type"`
	Urgency     UrgencyLevel       `json:"urgency"`
	Message     string             `json:"message"`
}

// NotificationStats are dashboard counters over the visible notification set
type NotificationStats struct {
	TotalPending       int             `json:"total_pending"`
	TotalOverdue       int             `json:"total_overdue"`
	TotalOverdueAmount decimal.Decimal `json:"total_overdue_amount"`
	DueThisWeek        int             `json:"due_this_week"`
	DueThisMonth       int             `json:"due_this_month"`
	TotalAmountDue     decimal.Decimal `json:"total_amount_due"`
}
