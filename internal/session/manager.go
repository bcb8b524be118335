// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/storage"
)

// Persisted snapshot keys. Only the Manager writes these.
const (
	tokenKey = "token"
	userKey  = "user"
)

// =============================================================================
// PHASES AND EVENTS
// =============================================================================

// Phase is the lifecycle state of the session.
type Phase int

const (
	// PhaseRestoring is the startup state: an optimistic local load followed
	// by one authoritative verification call.
	PhaseRestoring Phase = iota
	// PhaseAuthenticated means the server has confirmed the token.
	PhaseAuthenticated
	// PhaseUnauthenticated means no valid session exists.
	PhaseUnauthenticated
	// PhaseAuthenticating is the transient state while a login is in flight.
	// It only affects the login form; protected views gate on Loading.
	PhaseAuthenticating
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRestoring:
		return "restoring"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticating:
		return "authenticating"
	default:
		return "unknown"
	}
}

// Event is a navigation-worthy session outcome published to the event sink.
type Event int

const (
	// EventLoggedIn fires after a successful login; the app should move to
	// the authenticated landing view.
	EventLoggedIn Event = iota
	// EventLoggedOut fires after logout, including the implicit logout
	// triggered by a 401 on any API call; the app should return to login.
	EventLoggedOut
)

// ErrSuperseded is returned when a login resolves after an intervening
// logout. The result is discarded; logout wins.
var ErrSuperseded = errors.New("login superseded by logout")

// ErrLoginInFlight is returned when a login is attempted while another is
// still running. The UI disables the submit control, so hitting this
// indicates a wiring bug rather than a user action.
var ErrLoginInFlight = errors.New("login already in flight")

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// AuthAPI is the slice of the backend client the Manager needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, model.User, error)
	Register(ctx context.Context, reg model.Registration) (string, error)
	Me(ctx context.Context) (model.User, error)
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is the read-only view exposed to collaborators.
type Snapshot struct {
	// Identity is the current member profile, nil when unauthenticated.
	// During restoration it may hold the optimistic cached copy.
	Identity *model.User
	// Token is the bearer credential, empty when unauthenticated.
	Token string
	// Loading is true only while restoring. Protected views gate on this,
	// not on the authenticating flag.
	Loading bool
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager is the single source of truth for "who is logged in".
type Manager struct {
	api    AuthAPI
	kv     storage.KV
	notify func(Event)

	mu    sync.Mutex
	phase Phase
	user  *model.User
	token string

	// generation increments on every logout. Async continuations capture it
	// at start and apply their result only if it still matches, so a stale
	// login or verification can never resurrect a cleared session.
	generation uint64
}

// NewManager creates the session manager. notify may be nil.
func NewManager(api AuthAPI, kv storage.KV, notify func(Event)) *Manager {
	if notify == nil {
		notify = func(Event) {}
	}
	return &Manager{
		api:    api,
		kv:     kv,
		notify: notify,
		phase:  PhaseRestoring,
	}
}

// =============================================================================
// READ ACCESSORS
// =============================================================================

// Snapshot returns the current read-only view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Identity: cloneUser(m.user),
		Token:    m.token,
		Loading:  m.phase == PhaseRestoring,
	}
}

// Identity returns the current profile, nil when unauthenticated.
func (m *Manager) Identity() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneUser(m.user)
}

// Token returns the current bearer token, empty when unauthenticated.
// Suitable as the API client's token source.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Loading reports whether startup restoration is still in progress.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == PhaseRestoring
}

// Phase returns the current lifecycle phase.
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Restore runs the startup sequence: load the persisted snapshot
// optimistically, then verify the token with one authoritative call. The
// phase leaves Restoring only after verification resolves. Verification
// failure is silent; it is indistinguishable from never having logged in.
// Restore is never retried automatically.
func (m *Manager) Restore(ctx context.Context) Phase {
	m.mu.Lock()
	if m.phase != PhaseRestoring {
		phase := m.phase
		m.mu.Unlock()
		return phase
	}

	token, ok := m.kv.Get(tokenKey)
	if !ok || token == "" {
		m.clearLocked()
		m.phase = PhaseUnauthenticated
		m.mu.Unlock()
		return PhaseUnauthenticated
	}

	// Optimistic load: dependent UI may render this provisional identity
	// while the verification call is in flight. A malformed cached profile
	// is ignored, never fatal.
	m.token = token
	if raw, ok := m.kv.Get(userKey); ok {
		var cached model.User
		if err := json.Unmarshal([]byte(raw), &cached); err != nil {
			log.Printf("session: ignoring malformed cached identity: %v", err)
		} else {
			m.user = &cached
		}
	}
	gen := m.generation
	m.mu.Unlock()

	verified, err := m.api.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		// Logged out while verifying; that outcome stands.
		return m.phase
	}

	if err != nil {
		m.clearLocked()
		m.phase = PhaseUnauthenticated
		return PhaseUnauthenticated
	}

	m.user = &verified
	m.token = token
	m.persistLocked()
	m.phase = PhaseAuthenticated
	return PhaseAuthenticated
}

// Login exchanges credentials for a session. On success the identity and
// token are set, the snapshot persisted, and EventLoggedIn published. On
// failure nothing but the transient phase changes and the error is returned
// for the login form to display.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.mu.Lock()
	if m.phase == PhaseAuthenticating {
		m.mu.Unlock()
		return ErrLoginInFlight
	}
	prev := m.phase
	m.phase = PhaseAuthenticating
	gen := m.generation
	m.mu.Unlock()

	token, user, err := m.api.Login(ctx, username, password)

	m.mu.Lock()
	if gen != m.generation {
		// Logout won while we were in flight; do not resurrect.
		m.mu.Unlock()
		return ErrSuperseded
	}

	if err != nil {
		m.phase = prev
		m.mu.Unlock()
		return err
	}

	m.user = &user
	m.token = token
	m.persistLocked()
	m.phase = PhaseAuthenticated
	m.mu.Unlock()

	m.notify(EventLoggedIn)
	return nil
}

// Register creates an account. It never touches session state; new accounts
// start unverified and log in explicitly. Returns the backend's message.
func (m *Manager) Register(ctx context.Context, reg model.Registration) (string, error) {
	return m.api.Register(ctx, reg)
}

// Logout unconditionally clears the session and the persisted snapshot and
// publishes EventLoggedOut. It is local-only, always succeeds, and is
// idempotent. Calling it with a login in flight wins over that login.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.generation++
	m.clearLocked()
	m.phase = PhaseUnauthenticated
	m.mu.Unlock()

	m.notify(EventLoggedOut)
}

// UpdateUser merges a partial profile update into the current identity and
// rewrites the persisted snapshot. No-op when unauthenticated; the phase
// never changes.
func (m *Manager) UpdateUser(patch model.UserPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return
	}
	merged := patch.Apply(*m.user)
	m.user = &merged
	m.persistLocked()
}

// =============================================================================
// PERSISTENCE HELPERS
// =============================================================================

// persistLocked writes the token and identity as a pair. Persistence
// failures are logged, not surfaced; the in-memory session stays valid and
// the next startup simply restores less.
func (m *Manager) persistLocked() {
	data, err := json.Marshal(m.user)
	if err != nil {
		log.Printf("session: failed to serialize identity: %v", err)
		return
	}
	if err := m.kv.Set(tokenKey, m.token); err != nil {
		log.Printf("session: failed to persist token: %v", err)
		return
	}
	if err := m.kv.Set(userKey, string(data)); err != nil {
		log.Printf("session: failed to persist identity: %v", err)
	}
}

// clearLocked drops the in-memory identity/token and both persisted keys.
func (m *Manager) clearLocked() {
	m.user = nil
	m.token = ""
	if err := m.kv.Delete(tokenKey); err != nil {
		log.Printf("session: failed to clear token: %v", err)
	}
	if err := m.kv.Delete(userKey); err != nil {
		log.Printf("session: failed to clear identity: %v", err)
	}
}

func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
