package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inkpost/blog-api/internal/core/domain"
)

// Claims is the payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

// JWTIssuer issues and verifies HS256 session tokens with a process-wide
// secret. Rotating the secret invalidates every outstanding token.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer returns an issuer signing with secret. A ttl of zero issues
// tokens without an expiry claim.
func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for userID.
func (j *JWTIssuer) Issue(userID int64) (string, error) {
	now := j.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if j.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature (and expiry, when present) and returns the
// embedded user id.
func (j *JWTIssuer) Verify(token string) (int64, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return 0, domain.ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return 0, fmt.Errorf("%w: missing user id", domain.ErrInvalidToken)
	}
	return claims.UserID, nil
}
