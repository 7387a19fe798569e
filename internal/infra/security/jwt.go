package security

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
)

var (
	// ErrTokenExpired indicates the session token is past its expiry.
	ErrTokenExpired = errors.New("session token expired")
	// ErrTokenInvalid indicates the token is malformed or its signature failed validation.
	ErrTokenInvalid = errors.New("invalid session token")
)

// SessionClaims carries identity and the permission snapshot taken at login.
// The token is self-contained; the server holds no session state.
type SessionClaims struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	ClientID  string `json:"client_id"`
	CanCreate string `json:"CanCreate"`
	CanView   string `json:"CanView"`
	CanUpdate string `json:"CanUpdate"`
	CanDelete string `json:"CanDelete"`
	jwt.RegisteredClaims
}

// TokenIssuer builds and validates signed, time-limited session tokens
// using a symmetric key. Expiry is the only invalidation mechanism.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer. A non-positive ttl falls back to
// one hour.
func NewTokenIssuer(secret, issuer, audience string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock injects a custom clock, primarily for testing.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	if now != nil {
		i.now = now
	}
	return i
}

// Issue signs a token embedding the user's identity and the role's four
// permission flags as stringified booleans.
func (i *TokenIssuer) Issue(user domain.User, role domain.Role) (string, error) {
	if user.ID == 0 {
		return "", fmt.Errorf("user id is required")
	}

	now := i.now().UTC()

	claims := SessionClaims{
		Name:      user.Username,
		Role:      role.Name,
		ClientID:  strconv.Itoa(user.ID),
		CanCreate: strconv.FormatBool(role.CanCreate),
		CanView:   strconv.FormatBool(role.CanView),
		CanUpdate: strconv.FormatBool(role.CanUpdate),
		CanDelete: strconv.FormatBool(role.CanDelete),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Parse validates the token signature, issuer, audience, and expiry, and
// returns its claims.
func (i *TokenIssuer) Parse(token string) (*SessionClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenInvalid
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if parsed == nil || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.ClientID) == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
