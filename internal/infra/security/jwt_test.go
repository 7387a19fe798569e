package security

import (
	"errors"
	"testing"
	"time"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

func testUserAndRole() (domain.User, domain.Role) {
	user := domain.User{ID: 1, Username: "admin"}
	role := domain.Role{
		ID:        1,
		Name:      "Admin",
		CanView:   true,
		CanCreate: true,
		CanUpdate: true,
		CanDelete: false,
	}
	return user, role
}

func TestTokenIssueAndParse(t *testing.T) {
	now := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("per-test-secret", "dashboard-app-api", "dashboard-app", time.Hour).
		WithClock(fixedClock(now))

	user, role := testUserAndRole()

	token, err := issuer.Issue(user, role)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if claims.Name != "admin" {
		t.Fatalf("expected name claim admin, got %s", claims.Name)
	}
	if claims.Role != "Admin" {
		t.Fatalf("expected role claim Admin, got %s", claims.Role)
	}
	if claims.ClientID != "1" {
		t.Fatalf("expected client_id claim 1, got %s", claims.ClientID)
	}
	if claims.CanCreate != "true" || claims.CanView != "true" || claims.CanUpdate != "true" {
		t.Fatal("expected granted flags to serialize as true")
	}
	if claims.CanDelete != "false" {
		t.Fatalf("expected CanDelete claim false, got %s", claims.CanDelete)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", now.Add(time.Hour), got)
	}
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("per-test-secret", "dashboard-app-api", "dashboard-app", time.Hour).
		WithClock(fixedClock(now))

	user, role := testUserAndRole()
	token, err := issuer.Issue(user, role)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	issuer.WithClock(fixedClock(now.Add(61 * time.Minute)))
	if _, err := issuer.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	now := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("per-test-secret", "dashboard-app-api", "dashboard-app", time.Hour).
		WithClock(fixedClock(now))

	user, role := testUserAndRole()
	token, err := issuer.Issue(user, role)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	other := NewTokenIssuer("rotated-secret", "dashboard-app-api", "dashboard-app", time.Hour).
		WithClock(fixedClock(now))
	if _, err := other.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid after secret rotation, got %v", err)
	}
}
