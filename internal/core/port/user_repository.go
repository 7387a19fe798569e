package port

import (
	"context"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

// UserFilter narrows and pages user listings. Search matches username,
// full name, email, and status case-insensitively.
type UserFilter struct {
	Search string
	Limit  int
	Offset int
}

// UserWithRole is a listing row joining a user with its assigned role.
type UserWithRole struct {
	domain.User
	RoleID   int
	RoleName string
}

// UserRepository exposes persistence behavior for users.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (int, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]UserWithRole, int, error)
	Update(ctx context.Context, user domain.User) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	UpdateRetry(ctx context.Context, id int, retry int, status domain.UserStatus) error
	Delete(ctx context.Context, id int) error
	ReplaceRole(ctx context.Context, userID, roleID int) error
}
