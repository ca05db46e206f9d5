package memorybank

import (
	"context"
	"encoding/json"

	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/ops"
)

// --- associate_file_with_component ---

type AssociateFileWithComponent struct {
	svc *facade.Service
}

func NewAssociateFileWithComponent(svc *facade.Service) *AssociateFileWithComponent {
	return &AssociateFileWithComponent{svc: svc}
}

func (t *AssociateFileWithComponent) Name() string { return "associate_file_with_component" }
func (t *AssociateFileWithComponent) Description() string {
	return "Link a File to a Component via CONTAINS_FILE. Returns success=false, not an error, when either endpoint is missing."
}
func (t *AssociateFileWithComponent) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "componentId": {"type": "string"},
    "fileId": {"type": "string"}
  },
  "required": ["componentId", "fileId"]
}`)
}

type associateFileWithComponentParams struct {
	scopeArgs
	ComponentID string `json:"componentId"`
	FileID      string `json:"fileId"`
}

func (t *AssociateFileWithComponent) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p associateFileWithComponentParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.AssociateFileWithComponent(ctx, deps, scope, p.ComponentID, p.FileID)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- tag_item ---

type TagItem struct {
	svc *facade.Service
}

func NewTagItem(svc *facade.Service) *TagItem { return &TagItem{svc: svc} }

func (t *TagItem) Name() string { return "tag_item" }
func (t *TagItem) Description() string {
	return "Attach an existing Tag to an entity by its graph_unique_id. Returns success=false, not an error, if either the entity or the tag id is not found. Idempotent."
}
func (t *TagItem) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "entityGid": {"type": "string"},
    "tagId": {"type": "string"}
  },
  "required": ["entityGid", "tagId"]
}`)
}

type tagItemParams struct {
	EntityGID string `json:"entityGid"`
	TagID     string `json:"tagId"`
}

func (t *TagItem) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p tagItemParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	result, err := ops.TagItem(ctx, deps, p.EntityGID, p.TagID)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- untag_item ---

type UntagItem struct {
	svc *facade.Service
}

func NewUntagItem(svc *facade.Service) *UntagItem { return &UntagItem{svc: svc} }

func (t *UntagItem) Name() string        { return "untag_item" }
func (t *UntagItem) Description() string { return "Remove a Tag association from an entity, leaving the Tag node intact." }
func (t *UntagItem) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "entityGid": {"type": "string"},
    "tagId": {"type": "string"}
  },
  "required": ["entityGid", "tagId"]
}`)
}

type untagItemParams struct {
	EntityGID string `json:"entityGid"`
	TagID     string `json:"tagId"`
}

func (t *UntagItem) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p untagItemParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	result, err := ops.UntagItem(ctx, deps, p.EntityGID, p.TagID)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}
