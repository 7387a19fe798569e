package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/infra/config"
	"github.com/chanwihad/DashboardAppApi/internal/infra/logger"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed audit event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, log *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: log}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishUserRegistered publishes admin.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	payload := struct {
		UserID       int       `json:"user_id"`
		Username     string    `json:"username"`
		Email        string    `json:"email,omitempty"`
		RegisteredAt time.Time `json:"registered_at"`
	}{
		UserID:       event.UserID,
		Username:     event.Username,
		Email:        logger.MaskEmail(event.Email),
		RegisteredAt: event.RegisteredAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "admin.user.registered", event.RegisteredAt, payload)
}

// PublishLoginSucceeded publishes admin.auth.login.succeeded events.
func (p *EventPublisher) PublishLoginSucceeded(ctx context.Context, event domain.LoginSucceededEvent) error {
	payload := struct {
		UserID   int       `json:"user_id"`
		Username string    `json:"username"`
		Role     string    `json:"role"`
		At       time.Time `json:"at"`
	}{
		UserID:   event.UserID,
		Username: event.Username,
		Role:     event.Role,
		At:       event.At.UTC(),
	}

	return p.publish(ctx, event.EventID, "admin.auth.login.succeeded", event.At, payload)
}

// PublishLoginFailed publishes admin.auth.login.failed events.
func (p *EventPublisher) PublishLoginFailed(ctx context.Context, event domain.LoginFailedEvent) error {
	payload := struct {
		Username string    `json:"username"`
		Reason   string    `json:"reason"`
		Retry    int       `json:"retry"`
		At       time.Time `json:"at"`
	}{
		Username: event.Username,
		Reason:   event.Reason,
		Retry:    event.Retry,
		At:       event.At.UTC(),
	}

	return p.publish(ctx, event.EventID, "admin.auth.login.failed", event.At, payload)
}

// PublishPasswordChanged publishes admin.user.password.changed events.
func (p *EventPublisher) PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error {
	payload := struct {
		UserID    int       `json:"user_id"`
		ChangedAt time.Time `json:"changed_at"`
	}{
		UserID:    event.UserID,
		ChangedAt: event.ChangedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "admin.user.password.changed", event.ChangedAt, payload)
}

// PublishPasswordReset publishes admin.user.password.reset events.
func (p *EventPublisher) PublishPasswordReset(ctx context.Context, event domain.PasswordResetEvent) error {
	payload := struct {
		UserID  int       `json:"user_id"`
		Email   string    `json:"email"`
		ResetAt time.Time `json:"reset_at"`
	}{
		UserID:  event.UserID,
		Email:   logger.MaskEmail(event.Email),
		ResetAt: event.ResetAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "admin.user.password.reset", event.ResetAt, payload)
}

// PublishVerificationCodeIssued publishes admin.auth.code.issued events.
// The code itself is never part of the event.
func (p *EventPublisher) PublishVerificationCodeIssued(ctx context.Context, event domain.VerificationCodeIssuedEvent) error {
	payload := struct {
		Email     string    `json:"email"`
		ExpiresAt time.Time `json:"expires_at"`
		IssuedAt  time.Time `json:"issued_at"`
	}{
		Email:     logger.MaskEmail(event.Email),
		ExpiresAt: event.ExpiresAt.UTC(),
		IssuedAt:  event.IssuedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "admin.auth.code.issued", event.IssuedAt, payload)
}
