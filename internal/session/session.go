// Package session implements the Session Manager: it binds a transport
// connection (or an HTTP session id) to a project root, repository, and
// branch via the init-memory-bank call, and rejects any other call made
// before that binding exists.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
)

// contextKey is an unexported type for context keys in this package.
type contextKey struct{}

// idKey is the context key carrying the session id a transport resolved for
// the current request, so tool handlers never need the transport's own
// plumbing (headers, connection state) to find it.
var idKey = contextKey{}

// WithID returns a context carrying the given session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// IDFrom extracts the session id from the context, or "" if none is set.
func IDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(idKey).(string); ok {
		return v
	}
	return ""
}

// Session holds the defaults established by init-memory-bank. Individual
// calls may override Repository/Branch in their arguments; ProjectRoot is
// fixed for the session's lifetime.
type Session struct {
	ID          string
	ProjectRoot string
	Repository  string
	Branch      string
}

// Scope returns the session's default (repository, branch) pair.
func (s *Session) Scope() model.Scope {
	return model.Scope{Repository: s.Repository, Branch: s.Branch}
}

// Manager tracks sessions by id. The duplex transport uses a single
// well-known id (there is exactly one session per process connection); the
// HTTP/SSE transport mints one id per initialize call.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session table.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// NewID generates a fresh uuid session identifier. The HTTP/SSE transport
// in internal/mcp mints its own ids and does not call it.
func NewID() string {
	return uuid.NewString()
}

// Bind establishes or updates the session for id, recording projectRoot,
// repository, and branch as its defaults. Called by the init-memory-bank
// handler; safe to call again on the same id to rebind to a new root.
func (m *Manager) Bind(id, projectRoot, repository, branch string) *Session {
	if branch == "" {
		branch = "main"
	}
	sess := &Session{ID: id, ProjectRoot: projectRoot, Repository: repository, Branch: branch}
	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()
	return sess
}

// Get returns the session bound to id, or nil if none exists.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Require returns the session bound to id, or a SessionUnbound error if the
// transport has not yet called init-memory-bank on this connection.
func (m *Manager) Require(id string) (*Session, error) {
	sess := m.Get(id)
	if sess == nil {
		return nil, memerr.New(memerr.SessionUnbound, "call init-memory-bank before any other tool on this session")
	}
	return sess, nil
}

// Release drops the session for id, called on transport disconnect or
// explicit termination (HTTP DELETE).
func (m *Manager) Release(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// DefaultDuplexSessionID is the fixed session id used by the stdio duplex
// transport, which has exactly one session per process connection and so
// needs no generated identifier.
const DefaultDuplexSessionID = "stdio"
