package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/infra/security"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked indicates the account is locked or has exhausted its
	// retry budget.
	ErrAccountLocked = errors.New("account locked")
	// ErrAccountDisabled indicates the account was administratively disabled.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrRoleNotAssigned indicates the user has no role and cannot receive a
	// permission snapshot.
	ErrRoleNotAssigned = errors.New("no role assigned")
	// ErrUsernameTaken indicates the requested username already exists.
	ErrUsernameTaken = errors.New("username already taken")
)

// resetPlaceholder is the well-known password written by the reset flow. The
// user is expected to change it right after regaining access.
const resetPlaceholder = "password"

// LoginResult bundles everything the login response needs: the signed token
// and the identity/permission snapshot it was minted from.
type LoginResult struct {
	Token string
	User  domain.User
	Role  domain.RoleWithMenus
}

// AuthService coordinates authentication and credential lifecycle flows.
type AuthService struct {
	users  port.UserRepository
	roles  port.RoleRepository
	hasher port.PasswordHasher
	tokens *security.TokenIssuer
	events port.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(
	users port.UserRepository,
	roles port.RoleRepository,
	hasher port.PasswordHasher,
	tokens *security.TokenIssuer,
	events port.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		hasher: hasher,
		tokens: tokens,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock injects a custom clock, primarily for testing.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	if now != nil {
		s.now = now
	}
	return s
}

// Login validates credentials, maintains the retry counter, and issues a
// session token carrying the role's permission snapshot.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.publishLoginFailed(ctx, username, "unknown user", 0)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.Status == domain.UserStatusDisabled {
		s.publishLoginFailed(ctx, username, "account disabled", user.Retry)
		return nil, ErrAccountDisabled
	}
	if !user.CanLogin() {
		s.publishLoginFailed(ctx, username, "account locked", user.Retry)
		return nil, ErrAccountLocked
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		retry := user.Retry + 1
		status := user.Status
		if user.MaxRetry > 0 && retry >= user.MaxRetry {
			status = domain.UserStatusLocked
		}
		if err := s.users.UpdateRetry(ctx, user.ID, retry, status); err != nil {
			s.logger.Warn("Failed to persist retry counter",
				zap.Int("user_id", user.ID), zap.Error(err))
		}

		s.publishLoginFailed(ctx, username, "wrong password", retry)

		if status == domain.UserStatusLocked {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if user.Retry > 0 {
		if err := s.users.UpdateRetry(ctx, user.ID, 0, user.Status); err != nil {
			s.logger.Warn("Failed to reset retry counter",
				zap.Int("user_id", user.ID), zap.Error(err))
		}
	}

	role, err := s.roles.GetByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleNotAssigned
		}
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	token, err := s.tokens.Issue(*user, role.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.publishLoginSucceeded(ctx, user.ID, username, role.Name)

	sanitized := *user
	sanitized.PasswordHash = ""

	return &LoginResult{Token: token, User: sanitized, Role: *role}, nil
}

// Register creates a user with a hashed password and an optional role
// assignment.
func (s *AuthService) Register(ctx context.Context, user domain.User, password string, roleID int) (int, error) {
	if user.Username == "" {
		return 0, fmt.Errorf("username is required")
	}
	if password == "" {
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

	if pubErr := s.events.PublishUserRegistered(ctx, domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       id,
		Username:     user.Username,
		Email:        user.Email,
		RegisteredAt: s.now().UTC(),
	}); pubErr != nil {
		s.logger.Warn("Failed to publish registration event", zap.Error(pubErr))
	}

	return id, nil
}

// ChangePassword verifies the caller's current password before storing the
// replacement. The caller is the token's client id, never a request field.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	if pubErr := s.events.PublishPasswordChanged(ctx, domain.PasswordChangedEvent{
		EventID:   uuid.NewString(),
		UserID:    user.ID,
		ChangedAt: s.now().UTC(),
	}); pubErr != nil {
		s.logger.Warn("Failed to publish password change event", zap.Error(pubErr))
	}

	return nil
}

// ResetPassword looks the account up by email and overwrites its password
// with the hashed placeholder.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(resetPlaceholder)
	if err != nil {
		return fmt.Errorf("hash placeholder: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	if pubErr := s.events.PublishPasswordReset(ctx, domain.PasswordResetEvent{
		EventID: uuid.NewString(),
		UserID:  user.ID,
		Email:   user.Email,
		ResetAt: s.now().UTC(),
	}); pubErr != nil {
		s.logger.Warn("Failed to publish password reset event", zap.Error(pubErr))
	}

	return nil
}

func (s *AuthService) publishLoginFailed(ctx context.Context, username, reason string, retry int) {
	if err := s.events.PublishLoginFailed(ctx, domain.LoginFailedEvent{
		EventID:  uuid.NewString(),
		Username: username,
		Reason:   reason,
		Retry:    retry,
		At:       s.now().UTC(),
	}); err != nil {
		s.logger.Warn("Failed to publish login failure event", zap.Error(err))
	}
}

func (s *AuthService) publishLoginSucceeded(ctx context.Context, userID int, username, role string) {
	if err := s.events.PublishLoginSucceeded(ctx, domain.LoginSucceededEvent{
		EventID:  uuid.NewString(),
		UserID:   userID,
		Username: username,
		Role:     role,
		At:       s.now().UTC(),
	}); err != nil {
		s.logger.Warn("Failed to publish login success event", zap.Error(err))
	}
}
