package security

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"strings"
	"time"
)

// TimestampLayout is the fixed wire format of the X-Time-Stamp header (UTC).
const TimestampLayout = "20060102150405"

// DefaultReplayWindow bounds how far a request timestamp may drift from
// server time, in either direction, before the signature is rejected.
const DefaultReplayWindow = 5 * time.Minute

// Signer computes and verifies per-request HMAC signatures over the
// canonical string METHOD:PATH:CLIENT_ID:TIMESTAMP:BODY.
type Signer struct {
	secret []byte
	window time.Duration
	now    func() time.Time
}

// NewSigner constructs a Signer with the pre-shared secret. A non-positive
// window falls back to the default five minutes.
func NewSigner(secret string, window time.Duration) *Signer {
	if window <= 0 {
		window = DefaultReplayWindow
	}
	return &Signer{
		secret: []byte(secret),
		window: window,
		now:    time.Now,
	}
}

// WithClock injects a custom clock, primarily for testing.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	if now != nil {
		s.now = now
	}
	return s
}

// Canonical joins the request fields in signing order. Body is the exact
// serialized payload, empty for bodyless requests.
func (s *Signer) Canonical(method, path, clientID, timestamp, body string) string {
	return strings.Join([]string{method, path, clientID, timestamp, body}, ":")
}

// Sign returns the base64 HMAC-SHA512 digest of the canonical string.
func (s *Signer) Sign(canonical string) string {
	mac := hmac.New(sha512.New, s.secret)
	mac.Write([]byte(canonical))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature for the declared request fields and checks
// it against the supplied one. It fails closed: empty client id, timestamp,
// or signature, an unparseable timestamp, or a timestamp more than the
// replay window away from server time (in either direction) all reject the
// request regardless of digest correctness.
func (s *Signer) Verify(method, path, clientID, timestamp, signature, body string) bool {
	if clientID == "" || timestamp == "" || signature == "" {
		return false
	}

	ts, err := time.ParseInLocation(TimestampLayout, timestamp, time.UTC)
	if err != nil {
		return false
	}

	drift := s.now().UTC().Sub(ts)
	if drift < 0 {
		drift = -drift
	}
	if drift > s.window {
		return false
	}

	expected := s.Sign(s.Canonical(method, path, clientID, timestamp, body))
	return hmac.Equal([]byte(expected), []byte(signature))
}
