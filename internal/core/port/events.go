package port

import (
	"context"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

// EventPublisher emits audit events for security-relevant flows. Publishing
// is best-effort; flows never fail because an event could not be sent.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishLoginSucceeded(ctx context.Context, event domain.LoginSucceededEvent) error
	PublishLoginFailed(ctx context.Context, event domain.LoginFailedEvent) error
	PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error
	PublishPasswordReset(ctx context.Context, event domain.PasswordResetEvent) error
	PublishVerificationCodeIssued(ctx context.Context, event domain.VerificationCodeIssuedEvent) error
}
