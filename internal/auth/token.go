package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// Claims is the JWT payload. Subject carries the user id.
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	BranchID *int64 `json:"branch_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds TokenIssuer instance.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token for the identity.
func (t *TokenIssuer) Issue(identity shared.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    identity.Email,
		Role:     identity.Role,
		BranchID: identity.BranchID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.UserID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token. Every failure mode surfaces as the
// same Unauthorized error so callers cannot distinguish a bad signature from
// an expired token.
func (t *TokenIssuer) Verify(raw string) (shared.Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return shared.Identity{}, fmt.Errorf("%w: invalid or expired token", shared.ErrUnauthorized)
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return shared.Identity{}, fmt.Errorf("%w: invalid or expired token", shared.ErrUnauthorized)
	}
	return shared.Identity{
		UserID:   userID,
		Email:    claims.Email,
		Role:     claims.Role,
		BranchID: claims.BranchID,
	}, nil
}
