package ops

import (
	"context"

	"github.com/memorybank/memorybank/internal/algorithms"
	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/progress"
	"github.com/memorybank/memorybank/internal/store"
)

// componentSubgraph loads the Component nodes and DEPENDS_ON edges within a
// (repository, branch) scope, the projection every analytic operation in
// this file runs against.
func componentSubgraph(ctx context.Context, d *Deps, scope model.Scope) (*algorithms.Graph, error) {
	nodeRows, err := d.Client.Execute(ctx, `
		MATCH (c:Component {repository: $repository, branch: $branch})
		RETURN c.graph_unique_id AS graph_unique_id
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "loading component nodes")
	}

	edgeRows, err := d.Client.Execute(ctx, `
		MATCH (a:Component {repository: $repository, branch: $branch})-[:DEPENDS_ON]->(b:Component {repository: $repository, branch: $branch})
		RETURN a.graph_unique_id AS source, b.graph_unique_id AS target
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "loading depends_on edges")
	}

	nodes := make([]string, 0, len(nodeRows))
	for _, rec := range nodeRows {
		nodes = append(nodes, store.ScalarString(rec["graph_unique_id"]))
	}
	edges := make([]algorithms.Edge, 0, len(edgeRows))
	for _, rec := range edgeRows {
		edges = append(edges, algorithms.Edge{
			Source: store.ScalarString(rec["source"]),
			Target: store.ScalarString(rec["target"]),
		})
	}

	return algorithms.NewGraph(nodes, edges), nil
}

// PageRank computes PageRank over the Component/DEPENDS_ON projection of
// scope, emitting a final progress event once the power iteration
// converges.
func PageRank(ctx context.Context, d *Deps, scope model.Scope) (*AnalyticsResult, error) {
	g, err := componentSubgraph(ctx, d, scope)
	if err != nil {
		return nil, err
	}

	ranks, err := algorithms.PageRank(ctx, g)
	if err != nil {
		return nil, memerr.Wrap(memerr.Cancelled, err, "pagerank cancelled")
	}
	d.Progress.Notify(ctx, progress.Event{Status: "completed", IsFinal: true, Data: ranks})
	return &AnalyticsResult{Algorithm: "pagerank", Data: ranks}, nil
}

// LouvainCommunityDetection partitions the Component/DEPENDS_ON projection
// of scope into communities and reports them. The partition's modularity
// score is not included in the result.
func LouvainCommunityDetection(ctx context.Context, d *Deps, scope model.Scope) (*AnalyticsResult, error) {
	g, err := componentSubgraph(ctx, d, scope)
	if err != nil {
		return nil, err
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	communities := algorithms.LouvainCommunities(g)
	d.Progress.Notify(ctx, progress.Event{Status: "completed", IsFinal: true})
	return &AnalyticsResult{Algorithm: "louvain_community_detection", Data: communities}, nil
}

// KCoreDecomposition computes the coreness of every Component in scope.
func KCoreDecomposition(ctx context.Context, d *Deps, scope model.Scope) (*AnalyticsResult, error) {
	g, err := componentSubgraph(ctx, d, scope)
	if err != nil {
		return nil, err
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	core := algorithms.KCoreDecomposition(g)
	return &AnalyticsResult{Algorithm: "k_core_decomposition", Data: core}, nil
}

// StronglyConnectedComponents reports the directed strongly-connected
// components of scope's Component/DEPENDS_ON projection with >= 2 nodes.
func StronglyConnectedComponents(ctx context.Context, d *Deps, scope model.Scope) (*AnalyticsResult, error) {
	g, err := componentSubgraph(ctx, d, scope)
	if err != nil {
		return nil, err
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	all := algorithms.StronglyConnectedComponents(g)
	filtered := filterComponentsByMinSize(all, 2)
	return &AnalyticsResult{Algorithm: "strongly_connected_components", Data: filtered}, nil
}

// WeaklyConnectedComponents reports the undirected connected components of
// scope's Component/DEPENDS_ON projection with >= 2 nodes.
func WeaklyConnectedComponents(ctx context.Context, d *Deps, scope model.Scope) (*AnalyticsResult, error) {
	g, err := componentSubgraph(ctx, d, scope)
	if err != nil {
		return nil, err
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	all := algorithms.WeaklyConnectedComponents(g)
	filtered := filterComponentsByMinSize(all, 2)
	return &AnalyticsResult{Algorithm: "weakly_connected_components", Data: filtered}, nil
}

func filterComponentsByMinSize(components [][]string, min int) [][]string {
	out := make([][]string, 0, len(components))
	for _, c := range components {
		if len(c) >= min {
			out = append(out, c)
		}
	}
	return out
}

// checkCancelled returns a Cancelled error if ctx has been cancelled. The
// analytics above call it once, after loading the subgraph and before
// running the algorithm, so a cancelled call returns no result payload.
func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return memerr.Wrap(memerr.Cancelled, ctx.Err(), "analytics cancelled")
	default:
		return nil
	}
}
