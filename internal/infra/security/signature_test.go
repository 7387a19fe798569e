package security

import (
	"testing"
	"time"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestSignatureRoundTrip(t *testing.T) {
	now := time.Date(2024, 12, 6, 10, 30, 0, 0, time.UTC)
	signer := NewSigner("per-test-secret", 0).WithClock(fixedClock(now))

	ts := now.Format(TimestampLayout)
	body := `{"name":"Widget","price":12.5}`

	sig := signer.Sign(signer.Canonical("POST", "api/product", "7", ts, body))

	if !signer.Verify("POST", "api/product", "7", ts, sig, body) {
		t.Fatal("expected signature to verify inside the replay window")
	}
}

func TestSignatureReplayRejection(t *testing.T) {
	issued := time.Date(2024, 12, 6, 10, 30, 0, 0, time.UTC)
	signer := NewSigner("per-test-secret", 0).WithClock(fixedClock(issued))

	ts := issued.Format(TimestampLayout)
	sig := signer.Sign(signer.Canonical("GET", "api/user", "3", ts, ""))

	// Still valid just inside the window.
	signer.WithClock(fixedClock(issued.Add(5*time.Minute - time.Second)))
	if !signer.Verify("GET", "api/user", "3", ts, sig, "") {
		t.Fatal("expected signature to verify at window edge")
	}

	signer.WithClock(fixedClock(issued.Add(5*time.Minute + time.Second)))
	if signer.Verify("GET", "api/user", "3", ts, sig, "") {
		t.Fatal("expected stale signature to be rejected")
	}
}

func TestSignatureFutureSkewRejection(t *testing.T) {
	now := time.Date(2024, 12, 6, 10, 30, 0, 0, time.UTC)
	signer := NewSigner("per-test-secret", 0).WithClock(fixedClock(now))

	future := now.Add(6 * time.Minute).Format(TimestampLayout)
	sig := signer.Sign(signer.Canonical("GET", "api/user", "3", future, ""))

	if signer.Verify("GET", "api/user", "3", future, sig, "") {
		t.Fatal("expected future-skewed signature to be rejected")
	}
}

func TestSignatureFailsClosed(t *testing.T) {
	now := time.Date(2024, 12, 6, 10, 30, 0, 0, time.UTC)
	signer := NewSigner("per-test-secret", 0).WithClock(fixedClock(now))

	ts := now.Format(TimestampLayout)
	sig := signer.Sign(signer.Canonical("GET", "api/user", "3", ts, ""))

	cases := []struct {
		name      string
		clientID  string
		timestamp string
		signature string
	}{
		{"empty client id", "", ts, sig},
		{"empty timestamp", "3", "", sig},
		{"empty signature", "3", ts, ""},
		{"unparseable timestamp", "3", "2024-12-06T10:30:00Z", sig},
	}

	for _, tc := range cases {
		if signer.Verify("GET", "api/user", tc.clientID, tc.timestamp, tc.signature, "") {
			t.Fatalf("%s: expected verification to fail closed", tc.name)
		}
	}
}

func TestSignatureTamperRejection(t *testing.T) {
	now := time.Date(2024, 12, 6, 10, 30, 0, 0, time.UTC)
	signer := NewSigner("per-test-secret", 0).WithClock(fixedClock(now))

	ts := now.Format(TimestampLayout)
	body := `{"stock":10}`
	sig := signer.Sign(signer.Canonical("PUT", "api/product/4", "7", ts, body))

	if signer.Verify("PUT", "api/product/4", "7", ts, sig, `{"stock":9999}`) {
		t.Fatal("expected tampered body to be rejected")
	}
	if signer.Verify("PUT", "api/product/5", "7", ts, sig, body) {
		t.Fatal("expected tampered path to be rejected")
	}

	other := NewSigner("another-secret", 0).WithClock(fixedClock(now))
	if other.Verify("PUT", "api/product/4", "7", ts, sig, body) {
		t.Fatal("expected signature under a different secret to be rejected")
	}
}
