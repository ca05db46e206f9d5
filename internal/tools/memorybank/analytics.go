package memorybank

import (
	"context"
	"encoding/json"

	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/ops"
)

type analyticsParams struct {
	scopeArgs
}

func analyticsSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repository": {"type": "string"},
    "branch": {"type": "string"}
  }
}`)
}

// --- pagerank ---

type PageRank struct {
	svc *facade.Service
}

func NewPageRank(svc *facade.Service) *PageRank { return &PageRank{svc: svc} }

func (t *PageRank) Name() string { return "pagerank" }
func (t *PageRank) Description() string {
	return "PageRank over the Component/DEPENDS_ON projection of a (repository, branch), damping 0.85, eps 1e-6, max 100 rounds. Streams a completion progress event."
}
func (t *PageRank) InputSchema() json.RawMessage { return analyticsSchema() }

func (t *PageRank) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p analyticsParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.PageRank(ctx, deps, scope)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- louvain_community_detection ---

type LouvainCommunityDetection struct {
	svc *facade.Service
}

func NewLouvainCommunityDetection(svc *facade.Service) *LouvainCommunityDetection {
	return &LouvainCommunityDetection{svc: svc}
}

func (t *LouvainCommunityDetection) Name() string { return "louvain_community_detection" }
func (t *LouvainCommunityDetection) Description() string {
	return "Single-level Louvain modularity maximisation over the Component/DEPENDS_ON projection; reports the communities without a modularity score."
}
func (t *LouvainCommunityDetection) InputSchema() json.RawMessage { return analyticsSchema() }

func (t *LouvainCommunityDetection) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p analyticsParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.LouvainCommunityDetection(ctx, deps, scope)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- k_core_decomposition ---

type KCoreDecomposition struct {
	svc *facade.Service
}

func NewKCoreDecomposition(svc *facade.Service) *KCoreDecomposition {
	return &KCoreDecomposition{svc: svc}
}

func (t *KCoreDecomposition) Name() string { return "k_core_decomposition" }
func (t *KCoreDecomposition) Description() string {
	return "Classical peeling decomposition; returns every Component's coreness."
}
func (t *KCoreDecomposition) InputSchema() json.RawMessage { return analyticsSchema() }

func (t *KCoreDecomposition) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p analyticsParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.KCoreDecomposition(ctx, deps, scope)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- strongly_connected_components ---

type StronglyConnectedComponents struct {
	svc *facade.Service
}

func NewStronglyConnectedComponents(svc *facade.Service) *StronglyConnectedComponents {
	return &StronglyConnectedComponents{svc: svc}
}

func (t *StronglyConnectedComponents) Name() string { return "strongly_connected_components" }
func (t *StronglyConnectedComponents) Description() string {
	return "Tarjan's algorithm over the Component/DEPENDS_ON projection; reports components with >= 2 nodes."
}
func (t *StronglyConnectedComponents) InputSchema() json.RawMessage { return analyticsSchema() }

func (t *StronglyConnectedComponents) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p analyticsParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.StronglyConnectedComponents(ctx, deps, scope)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}

// --- weakly_connected_components ---

type WeaklyConnectedComponents struct {
	svc *facade.Service
}

func NewWeaklyConnectedComponents(svc *facade.Service) *WeaklyConnectedComponents {
	return &WeaklyConnectedComponents{svc: svc}
}

func (t *WeaklyConnectedComponents) Name() string { return "weakly_connected_components" }
func (t *WeaklyConnectedComponents) Description() string {
	return "Union-find over the undirected Component/DEPENDS_ON projection; reports components with >= 2 nodes."
}
func (t *WeaklyConnectedComponents) InputSchema() json.RawMessage { return analyticsSchema() }

func (t *WeaklyConnectedComponents) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p analyticsParams
	if err := unmarshal(params, &p); err != nil {
		return badParams(err)
	}
	deps, scope, err := resolve(ctx, t.svc, p.scopeArgs)
	if err != nil {
		return errResult(err)
	}
	result, err := ops.WeaklyConnectedComponents(ctx, deps, scope)
	if err != nil {
		return errResult(err)
	}
	return mcp.JSONResult(result)
}
