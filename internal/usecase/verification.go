package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
)

var (
	// ErrCodeInvalid indicates no matching code exists for the email.
	ErrCodeInvalid = errors.New("verification code invalid")
	// ErrCodeExpired indicates the code exists but is past its expiry.
	ErrCodeExpired = errors.New("verification code expired")
)

// codeTTL is how long an issued code stays valid.
const codeTTL = 5 * time.Minute

// VerificationService issues and checks short-lived numeric codes used by
// the password reset flow. Codes are verified, not consumed; they stay
// usable until expiry.
type VerificationService struct {
	users  port.UserRepository
	codes  port.VerificationCodeRepository
	events port.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewVerificationService constructs a VerificationService instance.
func NewVerificationService(
	users port.UserRepository,
	codes port.VerificationCodeRepository,
	events port.EventPublisher,
	logger *zap.Logger,
) *VerificationService {
	return &VerificationService{
		users:  users,
		codes:  codes,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock injects a custom clock, primarily for testing.
func (s *VerificationService) WithClock(now func() time.Time) *VerificationService {
	if now != nil {
		s.now = now
	}
	return s
}

// SendCode generates a six-digit code for the account behind the email,
// stores it with a five-minute expiry, and returns it for delivery.
func (s *VerificationService) SendCode(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email is required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	expiresAt := s.now().UTC().Add(codeTTL)
	if _, err := s.codes.Insert(ctx, domain.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
	}); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}

	if pubErr := s.events.PublishVerificationCodeIssued(ctx, domain.VerificationCodeIssuedEvent{
		EventID:   uuid.NewString(),
		Email:     email,
		ExpiresAt: expiresAt,
		IssuedAt:  s.now().UTC(),
	}); pubErr != nil {
		s.logger.Warn("Failed to publish code issued event", zap.Error(pubErr))
	}

	return code, nil
}

// VerifyCode checks that the code was issued to the email and has not
// expired. The code is left in place for repeat verification.
func (s *VerificationService) VerifyCode(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return ErrCodeInvalid
	}

	rec, err := s.codes.Find(ctx, email, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCodeInvalid
		}
		return fmt.Errorf("lookup code: %w", err)
	}

	if rec.Expired(s.now().UTC()) {
		return ErrCodeExpired
	}

	return nil
}

// generateCode draws a uniformly random six-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
