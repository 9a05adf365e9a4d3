package handler

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/foresightmx/foresight/internal/state"
)

const sessionContextKey = "session"

// sessionIdleTTL is how long a session survives without a request before it
// is lazily dropped from the table.
const sessionIdleTTL = 24 * time.Hour

// Session ties an opaque bearer token to one signed-in user's working state.
// The mutex serializes every access to that state: mutations claim it
// without blocking and refuse when a save is already in flight, the
// server-side version of disabling the submit button until the previous
// action resolves; view handlers claim it blocking, since they too write the
// month cursor and filter.
type Session struct {
	Token       string
	AccessToken string
	State       *state.AppState

	mu sync.Mutex
}

// TryAcquire claims the state slot for a mutation. It never blocks; a false
// return means another mutation is still being persisted.
func (s *Session) TryAcquire() bool { return s.mu.TryLock() }

// Acquire claims the state slot for a view, waiting out any in-flight save.
func (s *Session) Acquire() { s.mu.Lock() }

// Release frees the state slot.
func (s *Session) Release() { s.mu.Unlock() }

// SessionManager is the in-memory session table. Entries idle longer than
// sessionIdleTTL are evicted lazily: on lookup, and swept whenever a new
// session is created.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	lastSeen map[string]time.Time
	ttl      time.Duration

	now func() time.Time
}

// NewSessionManager creates an empty session table.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		lastSeen: make(map[string]time.Time),
		ttl:      sessionIdleTTL,
		now:      time.Now,
	}
}

// Create registers a new session around a freshly resolved state and sweeps
// out sessions that idled past the TTL.
func (m *SessionManager) Create(st *state.AppState, accessToken string) *Session {
	sess := &Session{
		Token:       uuid.NewString(),
		AccessToken: accessToken,
		State:       st,
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for token, seen := range m.lastSeen {
		if now.Sub(seen) > m.ttl {
			delete(m.sessions, token)
			delete(m.lastSeen, token)
		}
	}
	m.sessions[sess.Token] = sess
	m.lastSeen[sess.Token] = now
	return sess
}

// Get looks a session up by token, refreshing its idle clock. An expired
// session is dropped and reported as absent.
func (m *SessionManager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	now := m.now()
	if now.Sub(m.lastSeen[token]) > m.ttl {
		delete(m.sessions, token)
		delete(m.lastSeen, token)
		return nil, false
	}
	m.lastSeen[token] = now
	return sess, true
}

// Drop removes a session on sign-out.
func (m *SessionManager) Drop(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	delete(m.lastSeen, token)
	m.mu.Unlock()
}

// Middleware authenticates requests with "Authorization: Bearer <token>" and
// stores the session in the request context.
func (m *SessionManager) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return NewUnauthorizedError(c, "Missing session token")
		}
		sess, ok := m.Get(token)
		if !ok {
			return NewUnauthorizedError(c, "Session expired, sign in again")
		}
		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

// CurrentSession returns the session stored by Middleware.
func CurrentSession(c echo.Context) *Session {
	sess, _ := c.Get(sessionContextKey).(*Session)
	return sess
}

// sessionOr401 is the common prologue of every authenticated handler.
func sessionOr401(c echo.Context) (*Session, error) {
	sess := CurrentSession(c)
	if sess == nil {
		return nil, NewUnauthorizedError(c, "Sign in required")
	}
	return sess, nil
}
