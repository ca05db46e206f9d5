package memorybank

import (
	"context"
	"encoding/json"

	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/ops"
)

// --- labels ---

type Labels struct {
	svc *facade.Service
}

func NewLabels(svc *facade.Service) *Labels { return &Labels{svc: svc} }

func (t *Labels) Name() string        { return "labels" }
func (t *Labels) Description() string { return "List every node label present in the database." }
func (t *Labels) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *Labels) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	result, err := ops.Labels(ctx, deps)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- count ---

type Count struct {
	svc *facade.Service
}

func NewCount(svc *facade.Service) *Count { return &Count{svc: svc} }

func (t *Count) Name() string { return "count" }
func (t *Count) Description() string {
	return "Count nodes carrying the given label, or every node if label is omitted."
}
func (t *Count) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "label": {"type": "string"}
  }
}`)
}

type countParams struct {
	Label string `json:"label,omitempty"`
}

func (t *Count) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p countParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	total, err := ops.Count(ctx, deps, p.Label)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(map[string]any{"label": p.Label, "count": total})
}

// --- properties ---

type Properties struct {
	svc *facade.Service
}

func NewProperties(svc *facade.Service) *Properties { return &Properties{svc: svc} }

func (t *Properties) Name() string { return "properties" }
func (t *Properties) Description() string {
	return "List the distinct property keys observed on nodes carrying the given label."
}
func (t *Properties) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "label": {"type": "string"}
  },
  "required": ["label"]
}`)
}

type propertiesParams struct {
	Label string `json:"label"`
}

func (t *Properties) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p propertiesParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	result, err := ops.Properties(ctx, deps, p.Label)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- indexes ---

type Indexes struct {
	svc *facade.Service
}

func NewIndexes(svc *facade.Service) *Indexes { return &Indexes{svc: svc} }

func (t *Indexes) Name() string        { return "indexes" }
func (t *Indexes) Description() string { return "List every index the schema installer created." }
func (t *Indexes) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *Indexes) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	result, err := ops.Indexes(ctx, deps)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}
