// Package auth verifies access tokens issued by the external identity
// provider and turns them into domain users.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoSecret     = errors.New("JWT secret not configured")
)

// Claims is the provider's access token payload.
type Claims struct {
	Email        string       `json:"email"`
	UserMetadata userMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

type userMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return &Verifier{}
	}
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether a signing secret is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

// Verify checks an HS256 token and returns the user it names.
func (v *Verifier) Verify(token string) (*domain.User, error) {
	if !v.Enabled() {
		return nil, ErrNoSecret
	}
	if token == "" {
		return nil, ErrMissingToken
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || parsed == nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &domain.User{
		ID:        claims.Subject,
		Email:     claims.Email,
		FullName:  claims.UserMetadata.FullName,
		AvatarURL: claims.UserMetadata.AvatarURL,
	}, nil
}

// Issue signs a token for u. The provider issues real tokens; this exists for
// local development and tests.
func (v *Verifier) Issue(u domain.User, ttl time.Duration) (string, error) {
	if !v.Enabled() {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := Claims{
		Email:        u.Email,
		UserMetadata: userMetadata{FullName: u.FullName, AvatarURL: u.AvatarURL},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
