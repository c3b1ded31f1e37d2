package session

import (
	"encoding/json"
	"log"
	"sync"

	"acaciacamp/internal/models"
	"acaciacamp/internal/services"
)

// Storage keys for the persisted session.
const (
	tokenKey = "auth_token"
	userKey  = "user"
)

// State of the session. There are exactly two resolved states; the loading
// flag on Session marks an in-flight operation or unfinished restore.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

// Session is a read-only view of the current authentication state. Copies
// are handed out by the Manager; mutating one has no effect.
type Session struct {
	state   State
	loading bool
	user    *models.User // snapshot, password blanked
	token   string
}

func (s Session) State() State { return s.state }

// Loading reports whether the session is still being resolved. While true,
// the guard neither grants nor denies.
func (s Session) Loading() bool { return s.loading }

func (s Session) Authenticated() bool { return s.state == Authenticated }

// User returns the authenticated user snapshot, or nil.
func (s Session) User() *models.User { return s.user }

func (s Session) Token() string { return s.token }

// Authenticator is the part of AuthService the manager depends on.
type Authenticator interface {
	Login(email, password string) (*services.AuthResult, error)
	Register(name, email, password string) (*services.AuthResult, error)
	GetUser(id string) (*models.User, error)
}

// Manager owns the current session. It is created in the loading state and
// stays there until Restore resolves whatever the store holds; after that
// it moves between Unauthenticated and Authenticated via Login, Register
// and Logout.
type Manager struct {
	auth  Authenticator
	store Store

	mu   sync.Mutex
	sess Session
}

// NewManager creates a Manager in the loading state. Call Restore to
// resolve it.
func NewManager(auth Authenticator, store Store) *Manager {
	return &Manager{
		auth:  auth,
		store: store,
		sess:  Session{state: Unauthenticated, loading: true},
	}
}

// Current returns a copy of the current session.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// Restore resolves a previously persisted session. Token and snapshot must
// both be present; the snapshot is not trusted verbatim but revalidated
// against the credential store, and a user that no longer exists or is no
// longer active clears the stale entries. The session always leaves the
// loading state, whatever the outcome.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.sess.loading = false }()

	token, haveToken := m.store.Get(tokenKey)
	rawUser, haveUser := m.store.Get(userKey)
	if !haveToken || !haveUser {
		m.clearLocked()
		return
	}

	var cached models.User
	if err := json.Unmarshal([]byte(rawUser), &cached); err != nil {
		log.Printf("Discarding unreadable session snapshot: %v", err)
		m.clearLocked()
		return
	}

	user, err := m.auth.GetUser(cached.ID)
	if err != nil {
		log.Printf("Discarding stale session for user %s: %v", cached.ID, err)
		m.clearLocked()
		return
	}
	if user.Status != models.StatusActive {
		m.clearLocked()
		return
	}

	m.sess = Session{state: Authenticated, loading: true, user: user, token: token}
}

// Login authenticates and establishes a session. On failure the session is
// left Unauthenticated and the loading flag is reset so the UI can
// re-prompt.
func (m *Manager) Login(email, password string) (*services.AuthResult, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	result, err := m.auth.Login(email, password)
	if err != nil {
		return nil, err
	}
	m.establish(result)
	return result, nil
}

// Register creates an account and establishes a session.
func (m *Manager) Register(name, email, password string) (*services.AuthResult, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	result, err := m.auth.Register(name, email, password)
	if err != nil {
		return nil, err
	}
	m.establish(result)
	return result, nil
}

// Logout clears the session and any persisted entries. Calling it while
// already Unauthenticated is a no-op.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
	m.sess.loading = false
}

func (m *Manager) establish(result *services.AuthResult) {
	snapshot, err := json.Marshal(result.User)
	if err != nil {
		// Cannot happen for a plain user struct, but a session without a
		// persisted snapshot would not survive a restart.
		log.Printf("Failed to serialize user snapshot: %v", err)
	} else {
		if err := m.store.Set(tokenKey, result.Token); err != nil {
			log.Printf("Failed to persist session token: %v", err)
		}
		if err := m.store.Set(userKey, string(snapshot)); err != nil {
			log.Printf("Failed to persist user snapshot: %v", err)
		}
	}

	user := result.User
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = Session{state: Authenticated, loading: m.sess.loading, user: &user, token: result.Token}
}

func (m *Manager) clearLocked() {
	if err := m.store.Delete(tokenKey); err != nil {
		log.Printf("Failed to clear session token: %v", err)
	}
	if err := m.store.Delete(userKey); err != nil {
		log.Printf("Failed to clear user snapshot: %v", err)
	}
	m.sess = Session{state: Unauthenticated, loading: m.sess.loading}
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess.loading = v
}
