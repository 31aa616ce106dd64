package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"server/internal/domain"
)

const (
	tokenIssuer   = "fundraiser-api"
	tokenAudience = "fundraiser-clients"
	tokenTTL      = 24 * time.Hour
)

// ErrInvalidToken is returned for tokens that fail signature, shape, or time
// validation.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated principal a verified token proves.
type Identity struct {
	UserID string
	Role   domain.UserRole
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenManager signs and verifies HS256 bearer tokens carrying a user id and
// role with a fixed one-day expiry.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager creates a TokenManager from the shared signing secret.
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	return &TokenManager{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for the given user.
func (m *TokenManager) Issue(userID string, role domain.UserRole) (string, error) {
	now := m.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Role: string(role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a bearer token and returns the identity it carries.
func (m *TokenManager) Verify(tokenString string) (*Identity, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &Identity{UserID: claims.Subject, Role: domain.UserRole(claims.Role)}, nil
}
