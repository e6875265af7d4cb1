package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"icoffee-admin/internal/rbac"
	"icoffee-admin/internal/session"
)

// Claims are the validated contents of an access token.
type Claims struct {
	UserID    int64        `json:"user_id"`
	Email     string       `json:"email"`
	Role      rbac.Role    `json:"role"`
	SubRole   rbac.SubRole `json:"sub_role"`
	ExpiresAt int64        `json:"expires_at"`
}

// TokenManager issues and verifies signed JWTs for admin sessions.
type TokenManager struct {
	secret     []byte
	issuer     string
	ttl        time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer,
// and token lifetimes.
func NewTokenManager(secret, issuer string, ttl, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		ttl:        ttl,
		refreshTTL: refreshTTL,
	}
}

// Generate issues a signed access token for the given identity.
func (t *TokenManager) Generate(user session.UserIdentity) (string, error) {
	return t.sign(user, "access", t.ttl)
}

// GenerateRefresh issues a signed refresh token for the given identity.
func (t *TokenManager) GenerateRefresh(user session.UserIdentity) (string, error) {
	return t.sign(user, "refresh", t.refreshTTL)
}

func (t *TokenManager) sign(user session.UserIdentity, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      t.issuer,
		"sub":      fmt.Sprintf("%d", user.ID),
		"user_id":  user.ID,
		"email":    user.Email,
		"role":     string(user.Role),
		"sub_role": string(user.SubRole),
		"use":      use,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the token's signature and expiry claim. Implements
// session.TokenVerifier.
func (t *TokenManager) Verify(token string) error {
	_, err := t.ParseClaims(token)
	return err
}

// ParseClaims validates the token and extracts its claims.
func (t *TokenManager) ParseClaims(token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if len(t.secret) == 0 {
			return nil, errors.New("JWT secret key not configured")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v", err)
	}

	if !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("missing user_id claim")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, errors.New("missing role claim")
	}

	// Check expiration
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Now().Unix() > int64(exp) {
		return nil, errors.New("token has expired")
	}

	email, _ := claims["email"].(string)
	subRole, _ := claims["sub_role"].(string)

	return &Claims{
		UserID:    int64(userID),
		Email:     email,
		Role:      rbac.Role(role),
		SubRole:   rbac.SubRole(subRole),
		ExpiresAt: int64(exp),
	}, nil
}
