package memorybank

import (
	"context"
	"encoding/json"

	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/session"
)

// InitMemoryBank binds the calling session to a project root, repository,
// and branch, per spec §4.7/§4.8. It must be the first tool called on any
// session; every other handler in this package fails with SessionUnbound
// until it has run.
type InitMemoryBank struct {
	svc *facade.Service
}

func NewInitMemoryBank(svc *facade.Service) *InitMemoryBank {
	return &InitMemoryBank{svc: svc}
}

func (t *InitMemoryBank) Name() string { return "init-memory-bank" }

func (t *InitMemoryBank) Description() string {
	return "Bind this session to a project root, repository, and branch. Must be called before any other tool."
}

func (t *InitMemoryBank) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "projectRoot": {"type": "string", "description": "Filesystem path identifying the project's database"},
    "repository": {"type": "string", "description": "Logical repository name"},
    "branch": {"type": "string", "description": "Branch name, defaults to 'main'"}
  },
  "required": ["projectRoot", "repository"]
}`)
}

type initMemoryBankParams struct {
	ProjectRoot string `json:"projectRoot"`
	Repository  string `json:"repository"`
	Branch      string `json:"branch,omitempty"`
}

func (t *InitMemoryBank) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p initMemoryBankParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}

	sessionID := session.IDFrom(ctx)
	if sessionID == "" {
		sessionID = session.DefaultDuplexSessionID
	}

	sess, err := t.svc.InitMemoryBank(ctx, sessionID, p.ProjectRoot, p.Repository, p.Branch)
	if err != nil {
		return errResult(err)
	}

	return mcp.JSONResult(map[string]any{
		"sessionId":  sess.ID,
		"repository": sess.Repository,
		"branch":     sess.Branch,
		"message":    "memory bank initialized",
	})
}
