package email

import (
	"fmt"
	"net/smtp"

	"github.com/Lovrevar/Landmark-sub006/internal/config"
	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendOverdueReminder notifies the operator of an installment that went
// overdue
func (s *Sender) SendOverdueReminder(to string, n models.PaymentNotification) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Overdue Payment: %s", n.PayeeName)

	body := fmt.Sprintf(
		"A scheduled payment is overdue and requires attention.\n\n"+
			"Payee: %s\n"+
			"Project: %s\n"+
			"Amount: EUR %s\n"+
			"Due date: %s\n"+
			"%s\n\n"+
			"Please record the payment or dismiss the notification in Landmark.\n",
		n.PayeeName, n.ProjectName, n.Amount.StringFixed(2),
		n.DueDate.Format("2006-01-02"), n.Message,
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
