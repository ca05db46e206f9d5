package memorybank

import (
	"context"
	"encoding/json"

	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/ops"
)

// --- bulkDeleteByType ---

type BulkDeleteByType struct {
	svc *facade.Service
}

func NewBulkDeleteByType(svc *facade.Service) *BulkDeleteByType { return &BulkDeleteByType{svc: svc} }

func (t *BulkDeleteByType) Name() string { return "bulkDeleteByType" }
func (t *BulkDeleteByType) Description() string {
	return "Delete every entity of the given type within a (repository, branch). dryRun reports the candidate set without deleting; force bypasses the >10-entity confirmation threshold."
}
func (t *BulkDeleteByType) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "entityType": {"type": "string", "enum": ["component", "decision", "rule", "file", "metadata", "context"]},
    "dryRun": {"type": "boolean", "default": false},
    "force": {"type": "boolean", "default": false}
  },
  "required": ["entityType"]
}`)
}

type bulkDeleteByTypeParams struct {
	scopeArgs
	EntityType string `json:"entityType"`
	DryRun     bool   `json:"dryRun,omitempty"`
	Force      bool   `json:"force,omitempty"`
}

func (t *BulkDeleteByType) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p bulkDeleteByTypeParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.BulkDeleteByType(ctx, deps, scope, p.EntityType, p.DryRun, p.Force)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- bulkDeleteByTag ---

type BulkDeleteByTag struct {
	svc *facade.Service
}

func NewBulkDeleteByTag(svc *facade.Service) *BulkDeleteByTag { return &BulkDeleteByTag{svc: svc} }

func (t *BulkDeleteByTag) Name() string { return "bulkDeleteByTag" }
func (t *BulkDeleteByTag) Description() string {
	return "Delete every entity tagged with the given tag id, across all repositories/branches. The Tag node itself is left intact."
}
func (t *BulkDeleteByTag) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "tagId": {"type": "string"},
    "dryRun": {"type": "boolean", "default": false},
    "force": {"type": "boolean", "default": false}
  },
  "required": ["tagId"]
}`)
}

type bulkDeleteByTagParams struct {
	TagID  string `json:"tagId"`
	DryRun bool   `json:"dryRun,omitempty"`
	Force  bool   `json:"force,omitempty"`
}

func (t *BulkDeleteByTag) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p bulkDeleteByTagParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	result, err := ops.BulkDeleteByTag(ctx, deps, p.TagID, p.DryRun, p.Force)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- bulkDeleteByBranch ---

type BulkDeleteByBranch struct {
	svc *facade.Service
}

func NewBulkDeleteByBranch(svc *facade.Service) *BulkDeleteByBranch {
	return &BulkDeleteByBranch{svc: svc}
}

func (t *BulkDeleteByBranch) Name() string { return "bulkDeleteByBranch" }
func (t *BulkDeleteByBranch) Description() string {
	return "Delete every entity and the Repository node for a (repository, branch)."
}
func (t *BulkDeleteByBranch) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "dryRun": {"type": "boolean", "default": false},
    "force": {"type": "boolean", "default": false}
  },
  "required": ["repository", "branch"]
}`)
}

type bulkDeleteByBranchParams struct {
	scopeArgs
	DryRun bool `json:"dryRun,omitempty"`
	Force  bool `json:"force,omitempty"`
}

func (t *BulkDeleteByBranch) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p bulkDeleteByBranchParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.BulkDeleteByBranch(ctx, deps, scope, p.DryRun, p.Force)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- bulkDeleteByRepository ---

type BulkDeleteByRepository struct {
	svc *facade.Service
}

func NewBulkDeleteByRepository(svc *facade.Service) *BulkDeleteByRepository {
	return &BulkDeleteByRepository{svc: svc}
}

func (t *BulkDeleteByRepository) Name() string { return "bulkDeleteByRepository" }
func (t *BulkDeleteByRepository) Description() string {
	return "Delete every entity and Repository node across all branches of the named repository. Tag nodes are never matched."
}
func (t *BulkDeleteByRepository) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "dryRun": {"type": "boolean", "default": false},
    "force": {"type": "boolean", "default": false}
  },
  "required": ["repository"]
}`)
}

type bulkDeleteByRepositoryParams struct {
	Repository string `json:"repository"`
	DryRun     bool   `json:"dryRun,omitempty"`
	Force      bool   `json:"force,omitempty"`
}

func (t *BulkDeleteByRepository) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p bulkDeleteByRepositoryParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	result, err := ops.BulkDeleteByRepository(ctx, deps, p.Repository, p.DryRun, p.Force)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}
