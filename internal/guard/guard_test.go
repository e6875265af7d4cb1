package guard

import (
	"errors"
	"testing"
	"time"

	"icoffee-admin/internal/rbac"
	"icoffee-admin/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLoginPath = "/login"

type stubVerifier struct {
	err error
}

func (v stubVerifier) Verify(token string) error {
	return v.err
}

func adminIdentity(subRole rbac.SubRole) session.UserIdentity {
	return session.UserIdentity{
		ID:      1,
		Name:    "Chika Eze",
		Email:   "chika@i-coffee.ng",
		Role:    rbac.RoleAdmin,
		SubRole: subRole,
	}
}

func TestEvaluateAuthorized(t *testing.T) {
	store := session.NewStore(nil)
	store.SetAuthData("tok", "ref", adminIdentity(rbac.SubRoleAccountant))

	g := New(store, Requirement{AllowedSubRoles: []rbac.SubRole{
		rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant,
	}}, testLoginPath)
	assert.Equal(t, StateChecking, g.State())

	decision := g.Evaluate("tok")
	assert.Equal(t, StateAuthorized, decision.State)
	require.NotNil(t, decision.User)
	assert.Equal(t, rbac.SubRoleAccountant, decision.User.SubRole)
	assert.Equal(t, StateAuthorized, g.State())
}

func TestEvaluateWrongSubRoleDeniesInPlace(t *testing.T) {
	store := session.NewStore(nil)
	store.SetAuthData("tok", "ref", adminIdentity(rbac.SubRoleWarehouse))

	// Pricing configuration admits IT, DIRECTOR and ACCOUNTANT only.
	g := New(store, Requirement{AllowedSubRoles: []rbac.SubRole{
		rbac.SubRoleIT, rbac.SubRoleDirector, rbac.SubRoleAccountant,
	}}, testLoginPath)

	decision := g.Evaluate("tok")
	assert.Equal(t, StateDeniedWrongSubRole, decision.State)
	assert.Equal(t, rbac.SubRoleWarehouse, decision.CurrentSubRole)
	assert.Empty(t, decision.RedirectTo, "wrong subrole is a denial panel, not a redirect")

	// The session stays intact; the user navigates away themselves.
	assert.True(t, store.IsTokenValid("tok"))
}

func TestEmptyRequirementAdmitsAnyAdmin(t *testing.T) {
	store := session.NewStore(nil)
	g := New(store, Requirement{}, testLoginPath)

	for _, subRole := range rbac.AdminSubRoles() {
		token := "tok-" + string(subRole)
		store.SetAuthData(token, "", adminIdentity(subRole))

		decision := g.Evaluate(token)
		assert.Equal(t, StateAuthorized, decision.State, "subrole %s", subRole)
	}
}

func TestEvaluateNoSessionRedirects(t *testing.T) {
	store := session.NewStore(nil)
	g := New(store, Requirement{}, testLoginPath)

	decision := g.Evaluate("absent")
	assert.Equal(t, StateDeniedNoSession, decision.State)
	assert.Equal(t, testLoginPath, decision.RedirectTo)
	assert.Nil(t, decision.User)
}

func TestEvaluateNonAdminDenied(t *testing.T) {
	store := session.NewStore(nil)
	store.SetAuthData("tok", "ref", session.UserIdentity{
		ID: 2, Email: "customer@example.com", Role: rbac.RoleUser, SubRole: rbac.SubRoleBTC,
	})

	g := New(store, Requirement{}, testLoginPath)
	decision := g.Evaluate("tok")

	assert.Equal(t, StateDeniedNoSession, decision.State)
	assert.Equal(t, testLoginPath, decision.RedirectTo)
}

func TestExpiredTokenClearsStaleSession(t *testing.T) {
	store := session.NewStore(stubVerifier{err: errors.New("token has expired")})
	store.SetAuthData("tok", "ref", adminIdentity(rbac.SubRoleIT))

	g := New(store, Requirement{}, testLoginPath)
	decision := g.Evaluate("tok")

	assert.Equal(t, StateDeniedNoSession, decision.State)
	assert.Equal(t, testLoginPath, decision.RedirectTo)

	// Stale session data is gone as a side effect of the denial.
	assert.Nil(t, store.GetCurrentUser("tok"))
	assert.Equal(t, 0, store.Count())
}

func TestExternalClearForcesTransition(t *testing.T) {
	store := session.NewStore(nil)
	store.SetAuthData("tok", "ref", adminIdentity(rbac.SubRoleSales))

	g := New(store, Requirement{}, testLoginPath)
	defer g.Close()

	decision := g.Mount("tok")
	require.Equal(t, StateAuthorized, decision.State)

	// A logout issued elsewhere clears the session out from under the
	// mounted guard.
	store.ClearAuthData("tok")

	select {
	case forced := <-g.Transitions():
		assert.Equal(t, StateDeniedNoSession, forced.State)
		assert.Equal(t, testLoginPath, forced.RedirectTo)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for forced transition")
	}

	assert.Equal(t, StateDeniedNoSession, g.State())
}

func TestClearingOtherSessionLeavesGuardMounted(t *testing.T) {
	store := session.NewStore(nil)
	store.SetAuthData("tok-a", "", adminIdentity(rbac.SubRoleSales))
	store.SetAuthData("tok-b", "", adminIdentity(rbac.SubRoleHR))

	g := New(store, Requirement{}, testLoginPath)
	defer g.Close()

	require.Equal(t, StateAuthorized, g.Mount("tok-a").State)

	store.ClearAuthData("tok-b")

	select {
	case forced := <-g.Transitions():
		t.Fatalf("unexpected transition: %+v", forced)
	case <-time.After(100 * time.Millisecond):
	}
	assert.Equal(t, StateAuthorized, g.State())
}

func TestCloseIsIdempotent(t *testing.T) {
	store := session.NewStore(nil)
	store.SetAuthData("tok", "", adminIdentity(rbac.SubRoleIT))

	g := New(store, Requirement{}, testLoginPath)
	require.Equal(t, StateAuthorized, g.Mount("tok").State)

	g.Close()
	g.Close()
}
