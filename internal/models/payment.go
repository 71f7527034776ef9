package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankPaymentResult identifies the records created by a recorded bank
// installment payment
type BankPaymentResult struct {
	InvoiceID string `json:"invoice_id"`
	PaymentID string `json:"payment_id"`
}

// SubcontractorPaymentResult identifies the wire payment created for a
// milestone
type SubcontractorPaymentResult struct {
	PaymentID string `json:"payment_id"`
}

// BankPaymentRequest is an operator request to record a bank installment
// payment
type BankPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Notes  string          `json:"notes"`
}

// SubcontractorPaymentRequest is an operator request to record a milestone
// payment. PaidBy optionally attributes the wire payment to a funder.
type SubcontractorPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Notes  string          `json:"notes"`
	PaidBy *FunderKey      `json:"paid_by,omitempty"`
}
