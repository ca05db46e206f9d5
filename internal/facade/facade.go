// Package facade implements the Service Façade: the single entry point a
// transport (stdio or HTTP) calls into for every tool invocation. It
// resolves the session's bound project root to a Store Client via the
// Client Registry, builds the gateway/ops dependency bundle for that
// client, and hands the caller a ready-to-use *ops.Deps plus the resolved
// Scope — so tool handlers never touch the registry or gateways directly.
package facade

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/ops"
	"github.com/memorybank/memorybank/internal/progress"
	"github.com/memorybank/memorybank/internal/session"
	"github.com/memorybank/memorybank/internal/store"
)

// Service bundles the Client Registry and Session Manager a transport holds
// for the lifetime of the process.
type Service struct {
	Registry *store.Registry
	Sessions *session.Manager
}

// New creates a Service bound to cfg's connection settings.
func New(cfg store.Config) *Service {
	return &Service{
		Registry: store.NewRegistry(cfg),
		Sessions: session.NewManager(),
	}
}

// InitMemoryBank binds sessionID to (projectRoot, repository, branch),
// eagerly resolving and schema-installing its Store Client so the first
// real tool call never pays initialization latency, and returns the bound
// Session.
func (s *Service) InitMemoryBank(ctx context.Context, sessionID, projectRoot, repository, branch string) (*session.Session, error) {
	if projectRoot == "" {
		return nil, memerr.New(memerr.InvalidArgument, "projectRoot is required")
	}
	if repository == "" {
		return nil, memerr.New(memerr.InvalidArgument, "repository is required")
	}
	if _, err := s.Registry.GetClient(ctx, projectRoot); err != nil {
		return nil, err
	}
	return s.Sessions.Bind(sessionID, projectRoot, repository, branch), nil
}

// Resolve returns the ops.Deps and Scope for a bound session, wiring its
// Store Client's gateways together and attaching sink as the progress
// destination for any long-running operation this call performs.
func (s *Service) Resolve(ctx context.Context, sessionID string, sink progress.Sink) (*ops.Deps, model.Scope, error) {
	sess, err := s.Sessions.Require(sessionID)
	if err != nil {
		return nil, model.Scope{}, err
	}
	client, err := s.Registry.GetClient(ctx, sess.ProjectRoot)
	if err != nil {
		return nil, model.Scope{}, err
	}
	return depsFor(client, sink), sess.Scope(), nil
}

// depsFor builds the gateway bundle for a single Store Client.
func depsFor(client *store.Client, sink progress.Sink) *ops.Deps {
	return ops.NewDeps(client, sink)
}

// Shutdown releases every Store Client the registry has opened.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.Registry.Shutdown(ctx)
}
