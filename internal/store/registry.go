package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/memorybank/memorybank/internal/memerr"
)

// Config holds the connection settings the Registry uses to open a Client
// for each project root. The concrete engine is a Neo4j-compatible
// Bolt endpoint; projectRoot selects the logical database name within it
// rather than a separate TCP endpoint, since the driver model is one
// connection pool talking to many databases.
type Config struct {
	URI        string
	Username   string
	Password   string
	DBFilename string // e.g. "memory-bank.kuzu" — also the on-disk directory marker
}

// pendingInit tracks an in-flight initialization for one project root so
// concurrent callers wait on a single attempt instead of racing.
type pendingInit struct {
	done   chan struct{}
	client *Client
	err    error
}

// Registry maps each client project root to a lazily-created, cached
// Client, guaranteeing at-most-once initialization per root under
// concurrent demand (spec §4.2).
type Registry struct {
	cfg Config

	mu      sync.Mutex
	ready   map[string]*Client
	pending map[string]*pendingInit
}

// NewRegistry creates an empty registry bound to cfg.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:     cfg,
		ready:   make(map[string]*Client),
		pending: make(map[string]*pendingInit),
	}
}

// GetClient returns the Client for projectRoot, initializing one if this is
// the first call for that root. Concurrent callers for the same root
// observe exactly one initialization and all receive its outcome.
func (r *Registry) GetClient(ctx context.Context, projectRoot string) (*Client, error) {
	r.mu.Lock()
	if c, ok := r.ready[projectRoot]; ok {
		r.mu.Unlock()
		return c, nil
	}
	if p, ok := r.pending[projectRoot]; ok {
		r.mu.Unlock()
		return r.awaitPending(ctx, p)
	}

	p := &pendingInit{done: make(chan struct{})}
	r.pending[projectRoot] = p
	r.mu.Unlock()

	client, err := r.initialize(ctx, projectRoot)

	r.mu.Lock()
	delete(r.pending, projectRoot)
	if err == nil {
		r.ready[projectRoot] = client
	}
	r.mu.Unlock()

	p.client, p.err = client, err
	close(p.done)

	return client, err
}

// awaitPending waits for an in-flight initialization to finish, or for ctx
// to be cancelled first — the caller's cancellation does not cancel the
// initialization itself, only this caller's wait on it.
func (r *Registry) awaitPending(ctx context.Context, p *pendingInit) (*Client, error) {
	select {
	case <-p.done:
		return p.client, p.err
	case <-ctx.Done():
		return nil, memerr.Wrap(memerr.Cancelled, ctx.Err(), "waiting for database initialization")
	}
}

// initialize opens a new handle at {projectRoot}/{dbFilename}, creates the
// directory if absent, and runs the Schema Installer.
func (r *Registry) initialize(ctx context.Context, projectRoot string) (*Client, error) {
	dbDir := filepath.Join(projectRoot, r.cfg.DBFilename)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, memerr.Wrap(memerr.IoErr, err, fmt.Sprintf("creating database directory %s", dbDir))
	}

	database := databaseNameFor(projectRoot)
	client, err := newClient(ctx, r.cfg.URI, r.cfg.Username, r.cfg.Password, database)
	if err != nil {
		return nil, err
	}

	if err := InstallSchema(ctx, client); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}

	return client, nil
}

// Shutdown closes every cached client. Callers hold no stale references
// afterwards; a subsequent GetClient re-initializes from scratch.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	clients := make([]*Client, 0, len(r.ready))
	for root, c := range r.ready {
		clients = append(clients, c)
		delete(r.ready, root)
	}
	r.mu.Unlock()

	var firstErr error
	for _, c := range clients {
		if err := c.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// databaseNameFor derives a stable, engine-legal database name from a
// project root path. Neo4j database names are limited to alphanumerics,
// dots, and dashes, so the path is hashed rather than embedded verbatim.
func databaseNameFor(projectRoot string) string {
	return "mb" + hashHex(projectRoot)[:16]
}
