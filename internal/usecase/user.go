package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
)

// keepPasswordSentinel is the client-side marker meaning "leave the stored
// password untouched" on user updates.
const keepPasswordSentinel = "@#%empty021&^"

// UserService handles the administrative user CRUD surface.
type UserService struct {
	users  port.UserRepository
	roles  port.RoleRepository
	hasher port.PasswordHasher
}

// NewUserService constructs a UserService instance.
func NewUserService(users port.UserRepository, roles port.RoleRepository, hasher port.PasswordHasher) *UserService {
	return &UserService{users: users, roles: roles, hasher: hasher}
}

// Create stores a new user with a hashed password and an optional role.
func (s *UserService) Create(ctx context.Context, user domain.User, password string, roleID int) (int, error) {
	if user.Username == "" {
		return 0, fmt.Errorf("username is required")
	}
	if password == "" || password == keepPasswordSentinel {
		return 0, fmt.Errorf("password is required")
	}

	if _, err := s.users.GetByUsername(ctx, user.Username); err == nil {
		return 0, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return 0, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	if user.Status == "" {
		user.Status = domain.UserStatusActive
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}

	if roleID != 0 {
		if err := s.users.ReplaceRole(ctx, id, roleID); err != nil {
			return 0, fmt.Errorf("assign role: %w", err)
		}
	}

	return id, nil
}

// Get returns the user joined with its assigned role, if any.
func (s *UserService) Get(ctx context.Context, id int) (*port.UserWithRole, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := port.UserWithRole{User: *user}
	result.PasswordHash = ""

	role, err := s.roles.GetByUser(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("resolve role: %w", err)
		}
		return &result, nil
	}

	result.RoleID = role.ID
	result.RoleName = role.Name

	return &result, nil
}

// List returns users with their roles, filtered and paged.
func (s *UserService) List(ctx context.Context, filter port.UserFilter) ([]port.UserWithRole, int, error) {
	return s.users.List(ctx, filter)
}

// Update rewrites the user's profile fields and role assignment. The
// password changes only when the payload carries a real value; the
// keep-password sentinel and an empty string both preserve the stored hash.
func (s *UserService) Update(ctx context.Context, user domain.User, password string, roleID int) error {
	if user.ID == 0 {
		return fmt.Errorf("user id is required")
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if password != "" && password != keepPasswordSentinel {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
			return fmt.Errorf("store password: %w", err)
		}
	}

	if err := s.users.ReplaceRole(ctx, user.ID, roleID); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}

	return nil
}

// Delete removes the user.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.users.Delete(ctx, id)
}
