package domain

import "time"

// UserRegisteredEvent is published when a new account is created.
type UserRegisteredEvent struct {
	EventID      string
	UserID       int
	Username     string
	Email        string
	RegisteredAt time.Time
}

// LoginSucceededEvent is published after a successful authentication.
type LoginSucceededEvent struct {
	EventID  string
	UserID   int
	Username string
	Role     string
	At       time.Time
}

// LoginFailedEvent is published after a rejected authentication attempt.
type LoginFailedEvent struct {
	EventID  string
	Username string
	Reason   string
	Retry    int
	At       time.Time
}

// PasswordChangedEvent is published when a user changes their own password.
type PasswordChangedEvent struct {
	EventID   string
	UserID    int
	ChangedAt time.Time
}

// PasswordResetEvent is published when a password is reset by email lookup.
type PasswordResetEvent struct {
	EventID string
	UserID  int
	Email   string
	ResetAt time.Time
}

// VerificationCodeIssuedEvent is published when a one-time code is stored.
type VerificationCodeIssuedEvent struct {
	EventID   string
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}
