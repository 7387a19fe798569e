package domain

import "time"

// VerificationCode is a short-lived numeric one-time code tied to an email.
// Rows are valid until their expiry; several may coexist for one address.
type VerificationCode struct {
	ID        int
	Email     string
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the code is past its validity window at the
// provided instant.
func (c VerificationCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
