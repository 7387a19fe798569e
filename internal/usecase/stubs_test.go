package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

type testUserRepo struct {
	users map[int]domain.User

	createdID       int
	created         *domain.User
	updatedPassword map[int]string
	retryUpdates    []retryUpdate
	replacedRoles   map[int]int
	deleted         []int
}

type retryUpdate struct {
	userID int
	retry  int
	status domain.UserStatus
}

func newTestUserRepo(users ...domain.User) *testUserRepo {
	repo := &testUserRepo{
		users:           make(map[int]domain.User),
		updatedPassword: make(map[int]string),
		replacedRoles:   make(map[int]int),
	}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *testUserRepo) Create(_ context.Context, user domain.User) (int, error) {
	if r.createdID == 0 {
		r.createdID = 100
	}
	user.ID = r.createdID
	r.created = &user
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *testUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		copy := user
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (r *testUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copy := user
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *testUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copy := user
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *testUserRepo) List(context.Context, port.UserFilter) ([]port.UserWithRole, int, error) {
	return nil, 0, errors.New("unexpected call")
}

func (r *testUserRepo) Update(_ context.Context, user domain.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = stored.PasswordHash
	r.users[user.ID] = user
	return nil
}

func (r *testUserRepo) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	r.users[id] = user
	r.updatedPassword[id] = passwordHash
	return nil
}

func (r *testUserRepo) UpdateRetry(_ context.Context, id int, retry int, status domain.UserStatus) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Retry = retry
	user.Status = status
	r.users[id] = user
	r.retryUpdates = append(r.retryUpdates, retryUpdate{userID: id, retry: retry, status: status})
	return nil
}

func (r *testUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *testUserRepo) ReplaceRole(_ context.Context, userID, roleID int) error {
	r.replacedRoles[userID] = roleID
	return nil
}

type testRoleRepo struct {
	byUser map[int]domain.RoleWithMenus
}

func newTestRoleRepo() *testRoleRepo {
	return &testRoleRepo{byUser: make(map[int]domain.RoleWithMenus)}
}

func (r *testRoleRepo) Create(context.Context, domain.Role) (int, error) {
	return 0, errors.New("unexpected call")
}

func (r *testRoleRepo) GetByID(context.Context, int) (*domain.Role, error) {
	return nil, errors.New("unexpected call")
}

func (r *testRoleRepo) GetWithMenus(context.Context, int) (*domain.RoleWithMenus, error) {
	return nil, errors.New("unexpected call")
}

func (r *testRoleRepo) GetByUser(_ context.Context, userID int) (*domain.RoleWithMenus, error) {
	if role, ok := r.byUser[userID]; ok {
		copy := role
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (r *testRoleRepo) List(context.Context, port.RoleFilter) ([]domain.Role, int, error) {
	return nil, 0, errors.New("unexpected call")
}

func (r *testRoleRepo) Update(context.Context, domain.Role) error {
	return errors.New("unexpected call")
}

func (r *testRoleRepo) Delete(context.Context, int) error {
	return errors.New("unexpected call")
}

func (r *testRoleRepo) ReplaceMenus(context.Context, int, []int) error {
	return errors.New("unexpected call")
}

type testCodeRepo struct {
	codes  []domain.VerificationCode
	nextID int
}

func (r *testCodeRepo) Insert(_ context.Context, code domain.VerificationCode) (int, error) {
	r.nextID++
	code.ID = r.nextID
	r.codes = append(r.codes, code)
	return code.ID, nil
}

func (r *testCodeRepo) Find(_ context.Context, email, code string) (*domain.VerificationCode, error) {
	for i := len(r.codes) - 1; i >= 0; i-- {
		if r.codes[i].Email == email && r.codes[i].Code == code {
			copy := r.codes[i]
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *testCodeRepo) DeleteByEmail(_ context.Context, email string) error {
	kept := r.codes[:0]
	for _, c := range r.codes {
		if c.Email != email {
			kept = append(kept, c)
		}
	}
	r.codes = kept
	return nil
}

type testPublisher struct {
	registered []domain.UserRegisteredEvent
	succeeded  []domain.LoginSucceededEvent
	failed     []domain.LoginFailedEvent
	changed    []domain.PasswordChangedEvent
	reset      []domain.PasswordResetEvent
	issued     []domain.VerificationCodeIssuedEvent
}

func (p *testPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.registered = append(p.registered, event)
	return nil
}

func (p *testPublisher) PublishLoginSucceeded(_ context.Context, event domain.LoginSucceededEvent) error {
	p.succeeded = append(p.succeeded, event)
	return nil
}

func (p *testPublisher) PublishLoginFailed(_ context.Context, event domain.LoginFailedEvent) error {
	p.failed = append(p.failed, event)
	return nil
}

func (p *testPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	p.changed = append(p.changed, event)
	return nil
}

func (p *testPublisher) PublishPasswordReset(_ context.Context, event domain.PasswordResetEvent) error {
	p.reset = append(p.reset, event)
	return nil
}

func (p *testPublisher) PublishVerificationCodeIssued(_ context.Context, event domain.VerificationCodeIssuedEvent) error {
	p.issued = append(p.issued, event)
	return nil
}

// plainHasher keeps usecase tests readable; digest format is covered by the
// security package tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Verify(password, encoded string) (bool, error) {
	return encoded == "hashed:"+password, nil
}
