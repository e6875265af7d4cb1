package auth

import (
	"testing"
	"time"

	"icoffee-admin/internal/rbac"
	"icoffee-admin/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(ttl time.Duration) *TokenManager {
	return NewTokenManager("test-secret-key", "icoffee-admin", ttl, 24*time.Hour)
}

func TestGenerateAndParseClaims(t *testing.T) {
	manager := newTestManager(time.Hour)
	user := session.UserIdentity{
		ID:      42,
		Name:    "Ngozi Ibe",
		Email:   "ngozi@i-coffee.ng",
		Role:    rbac.RoleAdmin,
		SubRole: rbac.SubRoleHR,
	}

	token, err := manager.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ngozi@i-coffee.ng", claims.Email)
	assert.Equal(t, rbac.RoleAdmin, claims.Role)
	assert.Equal(t, rbac.SubRoleHR, claims.SubRole)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix())

	assert.NoError(t, manager.Verify(token))
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := newTestManager(-time.Minute)

	token, err := manager.Generate(session.UserIdentity{ID: 1, Role: rbac.RoleAdmin})
	require.NoError(t, err)

	assert.Error(t, manager.Verify(token))
	_, err = manager.ParseClaims(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	manager := newTestManager(time.Hour)
	other := NewTokenManager("a-different-secret", "icoffee-admin", time.Hour, 24*time.Hour)

	token, err := manager.Generate(session.UserIdentity{ID: 1, Role: rbac.RoleAdmin})
	require.NoError(t, err)

	assert.Error(t, other.Verify(token))
}

func TestGarbageTokenRejected(t *testing.T) {
	manager := newTestManager(time.Hour)

	assert.Error(t, manager.Verify(""))
	assert.Error(t, manager.Verify("not.a.jwt"))
}
