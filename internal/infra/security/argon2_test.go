package security

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hasher := NewArgon2Hasher()

	encoded, err := hasher.Hash("s3cr3t-value")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if !strings.HasPrefix(encoded, "argon2id$v=19$") {
		t.Fatalf("unexpected encoded format: %s", encoded)
	}

	ok, err := hasher.Verify("s3cr3t-value", encoded)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify against its own hash")
	}

	ok, err = hasher.Verify("different-value", encoded)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched password to fail verification")
	}
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	hasher := NewArgon2Hasher()

	first, err := hasher.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if first == second {
		t.Fatal("expected distinct digests for repeated hashes of the same input")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	hasher := NewArgon2Hasher()

	cases := []string{
		"",
		"not-a-digest",
		"argon2id$v=19$m=65536,t=3,p=4$salt",
		"argon2id$v=18$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"argon2id$v=19$m=0,t=3,p=4$c2FsdA$aGFzaA",
		"argon2id$v=19$m=oops,t=3,p=4$c2FsdA$aGFzaA",
		"argon2id$v=19$m=65536,t=3,p=4$!!$aGFzaA",
	}

	for _, encoded := range cases {
		ok, err := hasher.Verify("anything", encoded)
		if err != nil {
			t.Fatalf("Verify(%q) returned error: %v", encoded, err)
		}
		if ok {
			t.Fatalf("Verify(%q) unexpectedly succeeded", encoded)
		}
	}
}
