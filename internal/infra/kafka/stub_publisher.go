package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.logEvent("admin.user.registered", event.RegisteredAt, event)
	return nil
}

func (p *StubPublisher) PublishLoginSucceeded(_ context.Context, event domain.LoginSucceededEvent) error {
	p.logEvent("admin.auth.login.succeeded", event.At, event)
	return nil
}

func (p *StubPublisher) PublishLoginFailed(_ context.Context, event domain.LoginFailedEvent) error {
	p.logEvent("admin.auth.login.failed", event.At, event)
	return nil
}

func (p *StubPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	p.logEvent("admin.user.password.changed", event.ChangedAt, event)
	return nil
}

func (p *StubPublisher) PublishPasswordReset(_ context.Context, event domain.PasswordResetEvent) error {
	p.logEvent("admin.user.password.reset", event.ResetAt, event)
	return nil
}

func (p *StubPublisher) PublishVerificationCodeIssued(_ context.Context, event domain.VerificationCodeIssuedEvent) error {
	p.logEvent("admin.auth.code.issued", event.IssuedAt, event)
	return nil
}
