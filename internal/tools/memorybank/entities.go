package memorybank

import (
	"context"
	"encoding/json"
	"time"

	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/ops"
)

// --- component ---

type Component struct {
	svc *facade.Service
}

func NewComponent(svc *facade.Service) *Component { return &Component{svc: svc} }

func (t *Component) Name() string        { return "component" }
func (t *Component) Description() string { return "Create or update a Component node." }
func (t *Component) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "id": {"type": "string", "description": "Logical id, must start with 'comp-'"},
    "name": {"type": "string"},
    "kind": {"type": "string"},
    "status": {"type": "string", "enum": ["active", "deprecated", "planned"]},
    "dependsOn": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["id", "name"]
}`)
}

type componentParams struct {
	scopeArgs
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Kind      string   `json:"kind,omitempty"`
	Status    string   `json:"status,omitempty"`
	DependsOn []string `json:"dependsOn,omitempty"`
}

func (t *Component) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p componentParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.UpsertComponent(ctx, deps, ops.UpsertComponentArgs{
		Scope: scope, ID: p.ID, Name: p.Name, Kind: p.Kind, Status: p.Status, DependsOn: p.DependsOn,
	})
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- decision ---

type Decision struct {
	svc *facade.Service
}

func NewDecision(svc *facade.Service) *Decision { return &Decision{svc: svc} }

func (t *Decision) Name() string { return "decision" }
func (t *Decision) Description() string {
	return "Create or update a Decision node, enforcing its proposed/approved/implemented/failed state machine."
}
func (t *Decision) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "id": {"type": "string", "description": "Logical id, must start with 'dec-'"},
    "name": {"type": "string"},
    "date": {"type": "string", "format": "date-time"},
    "context": {"type": "string"},
    "status": {"type": "string", "enum": ["proposed", "approved", "implemented", "failed"]},
    "componentId": {"type": "string", "description": "Optional Component id to link this decision to"}
  },
  "required": ["id", "name"]
}`)
}

type decisionParams struct {
	scopeArgs
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date,omitempty"`
	Context     string `json:"context,omitempty"`
	Status      string `json:"status,omitempty"`
	ComponentID string `json:"componentId,omitempty"`
}

func (t *Decision) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p decisionParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	date, err := parseOptionalDate(p.Date)
	if err != nil {
		return badParams(err)
	}
	result, err := ops.UpsertDecision(ctx, deps, ops.UpsertDecisionArgs{
		Scope: scope, ID: p.ID, Name: p.Name, Date: date, Context: p.Context, Status: p.Status, ComponentID: p.ComponentID,
	})
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- rule ---

type Rule struct {
	svc *facade.Service
}

func NewRule(svc *facade.Service) *Rule { return &Rule{svc: svc} }

func (t *Rule) Name() string        { return "rule" }
func (t *Rule) Description() string { return "Create or update a Rule node." }
func (t *Rule) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "id": {"type": "string", "description": "Logical id, must start with 'rule-'"},
    "name": {"type": "string"},
    "created": {"type": "string", "format": "date-time"},
    "content": {"type": "string"},
    "triggers": {"type": "array", "items": {"type": "string"}},
    "status": {"type": "string", "enum": ["active", "deprecated"]}
  },
  "required": ["id", "name", "content"]
}`)
}

type ruleParams struct {
	scopeArgs
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Created  string   `json:"created,omitempty"`
	Content  string   `json:"content"`
	Triggers []string `json:"triggers,omitempty"`
	Status   string   `json:"status,omitempty"`
}

func (t *Rule) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p ruleParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	created, err := parseOptionalDate(p.Created)
	if err != nil {
		return badParams(err)
	}
	result, err := ops.UpsertRule(ctx, deps, ops.UpsertRuleArgs{
		Scope: scope, ID: p.ID, Name: p.Name, Created: created, Content: p.Content, Triggers: p.Triggers, Status: p.Status,
	})
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- metadata ---

type Metadata struct {
	svc *facade.Service
}

func NewMetadata(svc *facade.Service) *Metadata { return &Metadata{svc: svc} }

func (t *Metadata) Name() string        { return "metadata" }
func (t *Metadata) Description() string { return "Create or update a Metadata node holding a free-form JSON blob." }
func (t *Metadata) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "id": {"type": "string"},
    "name": {"type": "string"},
    "content": {"type": "string", "description": "JSON-encoded content"}
  },
  "required": ["id"]
}`)
}

type metadataParams struct {
	scopeArgs
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
}

func (t *Metadata) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p metadataParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.UpsertMetadata(ctx, deps, ops.UpsertMetadataArgs{
		Scope: scope, ID: p.ID, Name: p.Name, Content: p.Content,
	})
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- file ---

type File struct {
	svc *facade.Service
}

func NewFile(svc *facade.Service) *File { return &File{svc: svc} }

func (t *File) Name() string        { return "file" }
func (t *File) Description() string { return "Create or update a File node." }
func (t *File) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "id": {"type": "string", "description": "Logical id, must start with 'file-'"},
    "name": {"type": "string"},
    "path": {"type": "string"},
    "language": {"type": "string"}
  },
  "required": ["id", "path"]
}`)
}

type fileParams struct {
	scopeArgs
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
}

func (t *File) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p fileParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.UpsertFile(ctx, deps, ops.UpsertFileArgs{
		Scope: scope, ID: p.ID, Name: p.Name, Path: p.Path, Language: p.Language,
	})
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- context ---

type Context struct {
	svc *facade.Service
}

func NewContext(svc *facade.Service) *Context { return &Context{svc: svc} }

func (t *Context) Name() string        { return "context" }
func (t *Context) Description() string { return "Record a Context observation, optionally tied to an issue." }
func (t *Context) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "id": {"type": "string", "description": "Logical id, must start with 'ctx-'"},
    "agent": {"type": "string"},
    "summary": {"type": "string"},
    "observation": {"type": "string"},
    "date": {"type": "string", "format": "date-time"},
    "issue": {"type": "string"}
  },
  "required": ["id", "summary", "observation"]
}`)
}

type contextParams struct {
	scopeArgs
	ID          string `json:"id"`
	Agent       string `json:"agent,omitempty"`
	Summary     string `json:"summary"`
	Observation string `json:"observation"`
	Date        string `json:"date,omitempty"`
	Issue       string `json:"issue,omitempty"`
}

func (t *Context) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p contextParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	date, err := parseOptionalDate(p.Date)
	if err != nil {
		return badParams(err)
	}
	result, err := ops.UpsertContext(ctx, deps, ops.UpsertContextArgs{
		Scope: scope, ID: p.ID, Agent: p.Agent, Summary: p.Summary, Observation: p.Observation, Date: date, Issue: p.Issue,
	})
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- tag ---

type Tag struct {
	svc *facade.Service
}

func NewTag(svc *facade.Service) *Tag { return &Tag{svc: svc} }

func (t *Tag) Name() string        { return "tag" }
func (t *Tag) Description() string { return "Create or update a global Tag node (not scoped to a branch)." }
func (t *Tag) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "id": {"type": "string", "description": "Logical id, must start with 'tag-'"},
    "name": {"type": "string"},
    "color": {"type": "string"},
    "description": {"type": "string"}
  },
  "required": ["id", "name"]
}`)
}

type tagParams struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

func (t *Tag) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p tagParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	result, err := ops.UpsertTag(ctx, deps, ops.UpsertTagArgs{
		ID: p.ID, Name: p.Name, Color: p.Color, Description: p.Description,
	})
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- get-component ---

type GetComponent struct {
	svc *facade.Service
}

func NewGetComponent(svc *facade.Service) *GetComponent { return &GetComponent{svc: svc} }

func (t *GetComponent) Name() string        { return "get-component" }
func (t *GetComponent) Description() string { return "Fetch a Component by id." }
func (t *GetComponent) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "id": {"type": "string"}
  },
  "required": ["id"]
}`)
}

type getComponentParams struct {
	scopeArgs
	ID string `json:"id"`
}

func (t *GetComponent) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p getComponentParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.GetComponent(ctx, deps, scope, p.ID)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// parseOptionalDate parses an RFC3339 timestamp, returning the zero time
// (letting the operation default it to "now") when s is empty.
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
