/**
 * @description
 * Signed, time-limited auth tokens. The TokenManager issues HS256 JWTs
 * embedding the identity id, username, and role, and verifies inbound
 * tokens, distinguishing an expired token from one that fails signature or
 * shape checks. There is no refresh or revocation; expiry is the only
 * termination event.
 */

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/swiftremit/payments-service/internal/domain"
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens, and claim
	// shapes the manager did not issue.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for structurally valid tokens past expiry.
	ErrExpiredToken = errors.New("token expired")
)

// TokenManager issues and verifies signed identity tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and
// token lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue produces a signed token for the given claims, expiring ttl from now.
func (t *TokenManager) Issue(identityID uuid.UUID, username string, role domain.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      t.issuer,
		"sub":      identityID.String(),
		"username": username,
		"role":     string(role),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token string and returns its claims.
func (t *TokenManager) Verify(tokenString string) (*domain.Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	claims := jwt.MapClaims{}

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	identityID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &domain.Claims{
		IdentityID: identityID,
		Username:   username,
		Role:       domain.Role(role),
	}, nil
}
