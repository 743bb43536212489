package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issue returns a signed token carrying the user's identity.
func (t *TokenIssuer) Issue(u *domain.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and returns the principal it carries. Expired,
// forged, and otherwise unparseable tokens all collapse to ErrUnauthorized so
// callers leak nothing about why verification failed.
func (t *TokenIssuer) Verify(token string) (Principal, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", tok.Method.Alg())
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Principal{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	return Principal{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}
