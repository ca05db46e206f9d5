package memorybank

import (
	"context"
	"encoding/json"

	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/ops"
)

// --- get_component_dependencies ---

type GetComponentDependencies struct {
	svc *facade.Service
}

func NewGetComponentDependencies(svc *facade.Service) *GetComponentDependencies {
	return &GetComponentDependencies{svc: svc}
}

func (t *GetComponentDependencies) Name() string { return "get_component_dependencies" }
func (t *GetComponentDependencies) Description() string {
	return "BFS over DEPENDS_ON up to depth hops from a Component, deduplicated, ties broken by ascending id."
}
func (t *GetComponentDependencies) InputSchema() json.RawMessage {
	return depthQuerySchema("id")
}

func (t *GetComponentDependencies) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p depthQueryParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	depth := p.depthOrDefault()
	result, err := ops.GetComponentDependencies(ctx, deps, scope, p.ID, depth)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- get_component_dependents ---

type GetComponentDependents struct {
	svc *facade.Service
}

func NewGetComponentDependents(svc *facade.Service) *GetComponentDependents {
	return &GetComponentDependents{svc: svc}
}

func (t *GetComponentDependents) Name() string { return "get_component_dependents" }
func (t *GetComponentDependents) Description() string {
	return "Inverse traversal of get_component_dependencies: every Component that transitively depends on the given one."
}
func (t *GetComponentDependents) InputSchema() json.RawMessage {
	return depthQuerySchema("id")
}

func (t *GetComponentDependents) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p depthQueryParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	depth := p.depthOrDefault()
	result, err := ops.GetComponentDependents(ctx, deps, scope, p.ID, depth)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

type depthQueryParams struct {
	scopeArgs
	ID    string `json:"id"`
	Depth int    `json:"depth,omitempty"`
}

func (p depthQueryParams) depthOrDefault() int {
	if p.Depth <= 0 {
		return 1
	}
	return p.Depth
}

func depthQuerySchema(idField string) json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "` + idField + `": {"type": "string"},
    "depth": {"type": "integer", "minimum": 1, "default": 1}
  },
  "required": ["` + idField + `"]
}`)
}

// --- get_governing_items_for_component ---

type GetGoverningItemsForComponent struct {
	svc *facade.Service
}

func NewGetGoverningItemsForComponent(svc *facade.Service) *GetGoverningItemsForComponent {
	return &GetGoverningItemsForComponent{svc: svc}
}

func (t *GetGoverningItemsForComponent) Name() string { return "get_governing_items_for_component" }
func (t *GetGoverningItemsForComponent) Description() string {
	return "Return the decisions, rules, and context history governing a Component in its (repository, branch)."
}
func (t *GetGoverningItemsForComponent) InputSchema() json.RawMessage {
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

type getGoverningItemsParams struct {
	scopeArgs
	ID string `json:"id"`
}

func (t *GetGoverningItemsForComponent) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p getGoverningItemsParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.GetGoverningItemsForComponent(ctx, deps, scope, p.ID)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- get_item_contextual_history ---

type GetItemContextualHistory struct {
	svc *facade.Service
}

func NewGetItemContextualHistory(svc *facade.Service) *GetItemContextualHistory {
	return &GetItemContextualHistory{svc: svc}
}

func (t *GetItemContextualHistory) Name() string { return "get_item_contextual_history" }
func (t *GetItemContextualHistory) Description() string {
	return "Context nodes linked to an item, ordered by date descending."
}
func (t *GetItemContextualHistory) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "id": {"type": "string"},
    "type": {"type": "string", "description": "Entity kind the id belongs to, informational only"}
  },
  "required": ["id"]
}`)
}

type getItemContextualHistoryParams struct {
	scopeArgs
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
}

func (t *GetItemContextualHistory) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p getItemContextualHistoryParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.GetItemContextualHistory(ctx, deps, scope, p.ID)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- get_related_items ---

type GetRelatedItems struct {
	svc *facade.Service
}

func NewGetRelatedItems(svc *facade.Service) *GetRelatedItems { return &GetRelatedItems{svc: svc} }

func (t *GetRelatedItems) Name() string { return "get_related_items" }
func (t *GetRelatedItems) Description() string {
	return "Breadth-limited neighborhood of an entity, optionally filtered to specific relationship types."
}
func (t *GetRelatedItems) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "id": {"type": "string", "description": "graph_unique_id of the entity"},
    "relationships": {"type": "array", "items": {"type": "string"}},
    "depth": {"type": "integer", "minimum": 0, "default": 1}
  },
  "required": ["id"]
}`)
}

type getRelatedItemsParams struct {
	ID            string   `json:"id"`
	Relationships []string `json:"relationships,omitempty"`
	Depth         *int     `json:"depth,omitempty"`
}

func (t *GetRelatedItems) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p getRelatedItemsParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, _, err := resolve(ctx, t.svc, scopeArgs{})
	if err != nil {
		return errResult(err)
	}
	depth := 1
	if p.Depth != nil {
		depth = *p.Depth
	}
	result, err := ops.GetRelatedItems(ctx, deps, p.ID, p.Relationships, depth)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- shortest_path ---

type ShortestPath struct {
	svc *facade.Service
}

func NewShortestPath(svc *facade.Service) *ShortestPath { return &ShortestPath{svc: svc} }

func (t *ShortestPath) Name() string { return "shortest_path" }
func (t *ShortestPath) Description() string {
	return "Shortest undirected path between two nodes in the same (repository, branch)."
}
func (t *ShortestPath) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "startGid": {"type": "string"},
    "endGid": {"type": "string"}
  },
  "required": ["startGid", "endGid"]
}`)
}

type shortestPathParams struct {
	scopeArgs
	StartGID string `json:"startGid"`
	EndGID   string `json:"endGid"`
}

func (t *ShortestPath) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p shortestPathParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.ShortestPath(ctx, deps, scope, p.StartGID, p.EndGID)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- get_decisions_by_date_range ---

type GetDecisionsByDateRange struct {
	svc *facade.Service
}

func NewGetDecisionsByDateRange(svc *facade.Service) *GetDecisionsByDateRange {
	return &GetDecisionsByDateRange{svc: svc}
}

func (t *GetDecisionsByDateRange) Name() string { return "get_decisions_by_date_range" }
func (t *GetDecisionsByDateRange) Description() string {
	return "Decisions whose date falls within [start, end] inclusive, calendar-day precision."
}
func (t *GetDecisionsByDateRange) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"},
    "start": {"type": "string", "description": "YYYY-MM-DD"},
    "end": {"type": "string", "description": "YYYY-MM-DD"}
  },
  "required": ["start", "end"]
}`)
}

type getDecisionsByDateRangeParams struct {
	scopeArgs
	Start string `json:"start"`
	End   string `json:"end"`
}

func (t *GetDecisionsByDateRange) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p getDecisionsByDateRangeParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.GetDecisionsByDateRange(ctx, deps, scope, p.Start, p.End)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}
