// Package memorybank implements the tool handlers the MCP registry
// dispatches tool calls to. Each handler parses its arguments, resolves the
// calling session's Deps and Scope through the Service Façade, and
// delegates to the matching Operations Layer function.
package memorybank

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/ops"
	"github.com/memorybank/memorybank/internal/progress"
	"github.com/memorybank/memorybank/internal/session"
)

// scopeArgs is embedded by the arguments of any tool whose operation runs
// against a (repository, branch) pair. Individual calls may override the
// session's bound defaults per spec §4.8.
type scopeArgs struct {
	Repository string `json:"repository,omitempty"`
	Branch     string `json:"branch,omitempty"`
}

// resolve looks up the calling session's Deps and default Scope via the
// façade, then applies any non-empty overrides from args.
func resolve(ctx context.Context, svc *facade.Service, args scopeArgs) (*ops.Deps, model.Scope, error) {
	deps, scope, err := svc.Resolve(ctx, session.IDFrom(ctx), progress.FromContext(ctx))
	if err != nil {
		return nil, model.Scope{}, err
	}
	if args.Repository != "" {
		scope.Repository = args.Repository
	}
	if args.Branch != "" {
		scope.Branch = args.Branch
	}
	return deps, scope, nil
}

// errResult converts a kernel error into an MCP tool error response rather
// than a Go error, so the dispatcher's generic wrapper never shadows the
// operation's own message.
func errResult(err error) (*mcp.ToolsCallResult, error) {
	return mcp.ErrorResult(err.Error()), nil
}

// badParams reports a JSON-unmarshal failure as a tool error.
func badParams(err error) (*mcp.ToolsCallResult, error) {
	return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
}

func unmarshal(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, v)
}
