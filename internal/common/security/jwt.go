package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager issues and verifies HS256 bearer tokens. It is constructed
// once at startup from configuration and injected wherever tokens are
// needed, instead of living as package-level state.
type TokenManager struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
	}
}

// JWTAuth exposes the underlying keyset for jwtauth.Verifier middleware.
func (m *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return m.auth
}

// TTL returns the lifetime applied to issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// GenerateToken signs a token whose subject is the given username. Expiry is
// issuance time plus the configured TTL; expiry is also the only
// invalidation mechanism, tokens are never stored or revoked.
func (m *TokenManager) GenerateToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	_, tokenString, err := m.auth.Encode(claims)
	return tokenString, err
}

// VerifyToken checks signature and expiry (no leeway) and returns the
// subject claim. Missing subject is a verification failure.
func (m *TokenManager) VerifyToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(m.auth, tokenString)
	if err != nil {
		return "", err
	}
	subject := token.Subject()
	if subject == "" {
		return "", errors.New("sub claim is missing")
	}
	return subject, nil
}

// SubjectFromClaims extracts the subject from a verified claims map, as put
// in the request context by jwtauth.Verifier.
func SubjectFromClaims(claims jwt.MapClaims) (string, error) {
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return subject, nil
}
