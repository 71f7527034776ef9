package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Lovrevar/Landmark-sub006/internal/config"
	"github.com/Lovrevar/Landmark-sub006/internal/models"
	"github.com/Lovrevar/Landmark-sub006/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Store is the persistence contract the service depends on. Implemented
// by repository.Repository; faked in tests.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	ListCommitments(ctx context.Context, projectID int64) ([]models.FundingCommitment, error)
	ListDisbursements(ctx context.Context, funders []models.FunderKey) ([]models.DisbursementRecord, error)

	ListBankScheduleEntries(ctx context.Context, filter repository.ScheduleFilter) ([]models.BankScheduleRow, error)
	ListMilestoneScheduleEntries(ctx context.Context, filter repository.ScheduleFilter) ([]models.MilestoneRow, error)
	GetBankScheduleEntry(ctx context.Context, id int64) (*models.BankScheduleRow, error)
	GetMilestone(ctx context.Context, id int64) (*models.MilestoneRow, error)
	DismissBankEntry(ctx context.Context, id, actorID int64, dismissedAt time.Time) error
	CompleteBankEntry(ctx context.Context, id int64) error
	MarkMilestoneComplete(ctx context.Context, id int64, paidAt time.Time) error
	PromoteOverdue(ctx context.Context, today time.Time) ([]models.BankScheduleRow, error)

	CreateInvoice(ctx context.Context, id string, creditID int64, amount decimal.Decimal, issuedAt time.Time, notes string) error
	CreateInvoicePayment(ctx context.Context, id, invoiceID string, amount decimal.Decimal, paidAt time.Time) error
	DecrementCreditBalance(ctx context.Context, creditID int64, amount decimal.Decimal) error
	CreateWirePayment(ctx context.Context, id string, subcontractorID, milestoneID int64, amount decimal.Decimal, paidAt time.Time, notes string, paidBy *models.FunderKey) error
}

// Mailer sends operator reminder mail. Nil disables reminders.
type Mailer interface {
	SendOverdueReminder(to string, n models.PaymentNotification) error
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
	mailer Mailer
	now    func() time.Time
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, cfg *config.Config, mailer Mailer) *Service {
	return &Service{
		store:  store,
		log:    log,
		config: cfg,
		mailer: mailer,
		now:    time.Now,
	}
}

// Register creates a new operator with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates an operator and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}
