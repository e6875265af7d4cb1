package session

import (
	"errors"
	"testing"
	"time"

	"icoffee-admin/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	err error
}

func (v stubVerifier) Verify(token string) error {
	return v.err
}

func testIdentity() UserIdentity {
	return UserIdentity{
		ID:      7,
		Name:    "Ada Obi",
		Email:   "ada@i-coffee.ng",
		Role:    rbac.RoleAdmin,
		SubRole: rbac.SubRoleSales,
	}
}

func TestSetAuthDataRoundTrip(t *testing.T) {
	store := NewStore(nil)
	user := testIdentity()

	store.SetAuthData("tok-1", "ref-1", user)

	got := store.GetCurrentUser("tok-1")
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
	assert.True(t, store.IsTokenValid("tok-1"))
	assert.Equal(t, 1, store.Count())
}

func TestGetCurrentUserFailsSoft(t *testing.T) {
	store := NewStore(nil)

	assert.Nil(t, store.GetCurrentUser(""))
	assert.Nil(t, store.GetCurrentUser("never-stored"))
	assert.False(t, store.IsTokenValid(""))
	assert.False(t, store.IsTokenValid("never-stored"))
}

func TestVerifierRejectsStoredToken(t *testing.T) {
	store := NewStore(stubVerifier{err: errors.New("token has expired")})
	store.SetAuthData("tok-1", "ref-1", testIdentity())

	// Stored but failing verification counts as invalid.
	assert.False(t, store.IsTokenValid("tok-1"))
}

func TestClearAuthDataIsIdempotent(t *testing.T) {
	store := NewStore(nil)
	store.SetAuthData("tok-1", "ref-1", testIdentity())

	store.ClearAuthData("tok-1")
	assert.Nil(t, store.GetCurrentUser("tok-1"))
	assert.Equal(t, 0, store.Count())

	// Second clear is a no-op, not an error.
	store.ClearAuthData("tok-1")
	assert.Equal(t, 0, store.Count())

	_, ok := store.FindByRefresh("ref-1")
	assert.False(t, ok)
}

func TestFindByRefresh(t *testing.T) {
	store := NewStore(nil)
	user := testIdentity()
	store.SetAuthData("tok-1", "ref-1", user)

	sess, ok := store.FindByRefresh("ref-1")
	require.True(t, ok)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, user, sess.User)

	_, ok = store.FindByRefresh("unknown")
	assert.False(t, ok)
}

func TestSubscribeReceivesEvents(t *testing.T) {
	store := NewStore(nil)
	id, events := store.Subscribe()
	defer store.Unsubscribe(id)

	user := testIdentity()
	store.SetAuthData("tok-1", "ref-1", user)
	store.ClearAuthData("tok-1")

	set := receiveEvent(t, events)
	assert.Equal(t, EventSet, set.Type)
	assert.Equal(t, "tok-1", set.Token)
	assert.Equal(t, user, set.User)

	cleared := receiveEvent(t, events)
	assert.Equal(t, EventCleared, cleared.Type)
	assert.Equal(t, "tok-1", cleared.Token)
}

func TestClearingAbsentSessionPublishesNothing(t *testing.T) {
	store := NewStore(nil)
	id, events := store.Subscribe()
	defer store.Unsubscribe(id)

	store.ClearAuthData("never-stored")

	select {
	case event := <-events:
		t.Fatalf("unexpected event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	store := NewStore(nil)
	id, events := store.Subscribe()

	store.Unsubscribe(id)

	_, open := <-events
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	store.SetAuthData("tok-1", "ref-1", testIdentity())
}

func receiveEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for session event")
		return Event{}
	}
}
