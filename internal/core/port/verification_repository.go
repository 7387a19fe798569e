package port

import (
	"context"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

// VerificationCodeRepository persists short-lived password-reset codes.
type VerificationCodeRepository interface {
	Insert(ctx context.Context, code domain.VerificationCode) (int, error)
	Find(ctx context.Context, email, code string) (*domain.VerificationCode, error)
	DeleteByEmail(ctx context.Context, email string) error
}
