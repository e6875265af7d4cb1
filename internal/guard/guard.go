package guard

import (
	"sync"

	"icoffee-admin/internal/rbac"
	"icoffee-admin/internal/session"
)

// State is the authorization outcome for a guarded view.
type State string

const (
	StateChecking           State = "CHECKING"
	StateAuthorized         State = "AUTHORIZED"
	StateDeniedNoSession    State = "DENIED_NO_SESSION"
	StateDeniedWrongSubRole State = "DENIED_WRONG_SUBROLE"
)

// Requirement is the capability request a route declares. An empty
// AllowedSubRoles list admits any authenticated admin.
type Requirement struct {
	AllowedSubRoles []rbac.SubRole
}

// Allows reports whether the subrole satisfies the requirement.
func (r Requirement) Allows(subRole rbac.SubRole) bool {
	if len(r.AllowedSubRoles) == 0 {
		return true
	}
	for _, allowed := range r.AllowedSubRoles {
		if subRole == allowed {
			return true
		}
	}
	return false
}

// Decision is the result of evaluating a guard.
type Decision struct {
	State          State
	User           *session.UserIdentity
	CurrentSubRole rbac.SubRole // set for DENIED_WRONG_SUBROLE denial panels
	RedirectTo     string       // set for DENIED_NO_SESSION
}

// Guard mediates access to a protected view. Authorization is
// deterministic: it is re-evaluated only on an explicit Evaluate call
// or a session store event, never polled.
type Guard struct {
	store       *session.Store
	requirement Requirement
	loginPath   string

	mu    sync.Mutex
	state State
	token string

	subID       int
	subscribed  bool
	transitions chan Decision
	done        chan struct{}
}

// New creates a guard in the CHECKING state.
func New(store *session.Store, requirement Requirement, loginPath string) *Guard {
	return &Guard{
		store:       store,
		requirement: requirement,
		loginPath:   loginPath,
		state:       StateChecking,
		transitions: make(chan Decision, 1),
		done:        make(chan struct{}),
	}
}

// State returns the guard's current state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Evaluate reads the session store synchronously and resolves the
// guard's state for the given token.
//
// An invalid token, missing user, or non-admin role denies with no
// session: any stale session data is cleared and the caller is pointed
// at the login path. A valid admin session with a subrole outside the
// requirement denies in place, carrying the caller's current subrole
// for the denial panel. Permission and session failures are resolved
// entirely here and never reach the guarded view.
func (g *Guard) Evaluate(token string) Decision {
	user := g.store.GetCurrentUser(token)

	if !g.store.IsTokenValid(token) || user == nil || user.Role != rbac.RoleAdmin {
		// Clear stale session data before redirecting to login.
		g.store.ClearAuthData(token)
		return g.transition(token, Decision{
			State:      StateDeniedNoSession,
			RedirectTo: g.loginPath,
		})
	}

	if !g.requirement.Allows(user.SubRole) {
		return g.transition(token, Decision{
			State:          StateDeniedWrongSubRole,
			User:           user,
			CurrentSubRole: user.SubRole,
		})
	}

	return g.transition(token, Decision{
		State: StateAuthorized,
		User:  user,
	})
}

// Mount evaluates the token and, if authorized, subscribes to session
// store events so an external logout forces the guard out of the
// AUTHORIZED state. Callers owning a mounted guard must Close it.
func (g *Guard) Mount(token string) Decision {
	decision := g.Evaluate(token)
	if decision.State != StateAuthorized {
		return decision
	}

	g.mu.Lock()
	if !g.subscribed {
		id, events := g.store.Subscribe()
		g.subID = id
		g.subscribed = true
		go g.watch(events)
	}
	g.mu.Unlock()

	return decision
}

// Transitions delivers forced state changes caused by session store
// events, such as a logout issued from another client.
func (g *Guard) Transitions() <-chan Decision {
	return g.transitions
}

// Close releases the guard's store subscription.
func (g *Guard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.subscribed {
		g.store.Unsubscribe(g.subID)
		g.subscribed = false
	}
	select {
	case <-g.done:
	default:
		close(g.done)
	}
}

func (g *Guard) watch(events <-chan session.Event) {
	for {
		select {
		case <-g.done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type != session.EventCleared {
				continue
			}

			g.mu.Lock()
			match := event.Token == g.token && g.state == StateAuthorized
			if match {
				g.state = StateDeniedNoSession
			}
			g.mu.Unlock()

			if match {
				decision := Decision{
					State:      StateDeniedNoSession,
					RedirectTo: g.loginPath,
				}
				select {
				case g.transitions <- decision:
				default:
				}
			}
		}
	}
}

func (g *Guard) transition(token string, decision Decision) Decision {
	g.mu.Lock()
	g.token = token
	g.state = decision.State
	g.mu.Unlock()
	return decision
}
