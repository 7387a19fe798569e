package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/core/port"
	"github.com/chanwihad/DashboardAppApi/internal/infra/security"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
	"github.com/chanwihad/DashboardAppApi/internal/usecase"
)

type stubRoleRepo struct {
	byUser map[int]domain.RoleWithMenus
}

func (r *stubRoleRepo) Create(context.Context, domain.Role) (int, error) {
	return 0, repository.ErrNotFound
}

func (r *stubRoleRepo) GetByID(context.Context, int) (*domain.Role, error) {
	return nil, repository.ErrNotFound
}

func (r *stubRoleRepo) GetWithMenus(context.Context, int) (*domain.RoleWithMenus, error) {
	return nil, repository.ErrNotFound
}

func (r *stubRoleRepo) GetByUser(_ context.Context, userID int) (*domain.RoleWithMenus, error) {
	if role, ok := r.byUser[userID]; ok {
		copy := role
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubRoleRepo) List(context.Context, port.RoleFilter) ([]domain.Role, int, error) {
	return nil, 0, repository.ErrNotFound
}

func (r *stubRoleRepo) Update(context.Context, domain.Role) error { return repository.ErrNotFound }
func (r *stubRoleRepo) Delete(context.Context, int) error         { return repository.ErrNotFound }
func (r *stubRoleRepo) ReplaceMenus(context.Context, int, []int) error {
	return repository.ErrNotFound
}

func newSignatureTestRouter(t *testing.T, now time.Time) (*gin.Engine, *security.Signer) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	signer := security.NewSigner("gate-secret", 5*time.Minute).
		WithClock(func() time.Time { return now })

	roles := &stubRoleRepo{byUser: map[int]domain.RoleWithMenus{
		5: {
			Role:  domain.Role{ID: 1, Name: "Editor", CanView: true, CanUpdate: true},
			Menus: []domain.Menu{{ID: 1, URL: "api/user"}},
		},
	}}
	gate := NewSignatureGate(signer, usecase.NewPermissionService(roles), zap.NewNop())

	engine := gin.New()

	// Stands in for RequireAuth: the gate only consumes what that middleware
	// stores on the context.
	engine.Use(func(c *gin.Context) {
		c.Set(UserIDKey, 5)
		c.Set(ClaimsKey, &security.SessionClaims{ClientID: "5"})
		c.Next()
	})

	engine.GET("/api/user/:id", gate.Require(domain.ActionView, "api/user"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.DELETE("/api/user/:id", gate.Require(domain.ActionDelete, "api/user"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.POST("/api/auth/change-password", gate.RequireSignature(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return engine, signer
}

func signedRequest(signer *security.Signer, method, path, clientID, timestamp, body string) *http.Request {
	req := httptest.NewRequest(method, "/"+path, strings.NewReader(body))
	req.Header.Set(ClientIDHeader, clientID)
	req.Header.Set(TimestampHeader, timestamp)
	req.Header.Set(SignatureHeader, signer.Sign(signer.Canonical(method, path, clientID, timestamp, body)))
	return req
}

func TestSignatureGate_AllowsValidRequest(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, signer := newSignatureTestRouter(t, now)

	req := signedRequest(signer, http.MethodGet, "api/user/5", "5", now.Format(security.TimestampLayout), "")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSignatureGate_RejectsTamperedSignature(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, signer := newSignatureTestRouter(t, now)

	req := signedRequest(signer, http.MethodGet, "api/user/5", "5", now.Format(security.TimestampLayout), "")
	req.Header.Set(SignatureHeader, "bm90LXRoZS1zaWduYXR1cmU=")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSignatureGate_RejectsStaleTimestamp(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, signer := newSignatureTestRouter(t, now)

	stale := now.Add(-6 * time.Minute).Format(security.TimestampLayout)
	req := signedRequest(signer, http.MethodGet, "api/user/5", "5", stale, "")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSignatureGate_RejectsMissingHeaders(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, _ := newSignatureTestRouter(t, now)

	req := httptest.NewRequest(http.MethodGet, "/api/user/5", nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSignatureGate_RejectsClientIDMismatch(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, signer := newSignatureTestRouter(t, now)

	// Signed correctly for client 9, but the session belongs to client 5.
	req := signedRequest(signer, http.MethodGet, "api/user/5", "9", now.Format(security.TimestampLayout), "")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSignatureGate_SignatureOnlySkipsPermission(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, signer := newSignatureTestRouter(t, now)

	// The role lacks CanCreate, but the signature-only gate never resolves
	// permissions.
	body := `{"current_password":"old","new_password":"new"}`
	req := signedRequest(signer, http.MethodPost, "api/auth/change-password", "5", now.Format(security.TimestampLayout), body)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSignatureGate_DeniesMissingPermission(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, signer := newSignatureTestRouter(t, now)

	// Valid signature, but the role lacks CanDelete.
	req := signedRequest(signer, http.MethodDelete, "api/user/5", "5", now.Format(security.TimestampLayout), "")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
