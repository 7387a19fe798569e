package port

// PasswordHasher hashes and verifies secrets using the configured algorithm.
// Verify reports false for malformed digests instead of failing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}
