package domain

// UserStatus enumerates possible account states.
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusLocked   UserStatus = "Locked"
	UserStatusDisabled UserStatus = "Disabled"
)

// User mirrors the persisted representation in the can_users table.
type User struct {
	ID           int
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	Status       UserStatus
	MaxRetry     int
	Retry        int
}

// CanLogin reports whether the account may attempt authentication.
// A locked or disabled account is rejected before the password is checked,
// as is one whose retry counter already reached its threshold.
func (u User) CanLogin() bool {
	if u.Status == UserStatusLocked || u.Status == UserStatusDisabled {
		return false
	}
	if u.MaxRetry > 0 && u.Retry >= u.MaxRetry {
		return false
	}
	return true
}

// UserRole assigns a role to a user. The flows only ever consult a single
// role per user; the repository keeps at most one row per user.
type UserRole struct {
	UserID int
	RoleID int
}
