package ops

import (
	"context"
	"fmt"
	"sort"

	"github.com/memorybank/memorybank/internal/algorithms"
	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// GetComponentDependencies performs a breadth-first traversal over
// DEPENDS_ON up to depth hops, deduplicating by graph_unique_id and
// breaking ties by ascending logical id. depth must be >= 1.
func GetComponentDependencies(ctx context.Context, d *Deps, scope model.Scope, componentID string, depth int) (*ListResult, error) {
	return componentReachability(ctx, d, scope, componentID, depth, "DEPENDS_ON", "c", "dep")
}

// GetComponentDependents performs the inverse traversal: every Component
// that (transitively) depends on componentID.
func GetComponentDependents(ctx context.Context, d *Deps, scope model.Scope, componentID string, depth int) (*ListResult, error) {
	return componentReachability(ctx, d, scope, componentID, depth, "DEPENDS_ON", "dep", "c")
}

// componentReachability runs a bounded variable-length traversal of relType
// starting from componentID, in the direction (sourceVar)-[relType]->(target)
// when fromVar="c" or the reverse when fromVar="dep". depth is embedded
// directly as a literal integer (never user-supplied Cypher text) since
// Neo4j requires variable-length bounds to be literals rather than query
// parameters.
func componentReachability(ctx context.Context, d *Deps, scope model.Scope, componentID string, depth int, relType, fromVar, _ string) (*ListResult, error) {
	if depth < 1 {
		return nil, memerr.New(memerr.InvalidArgument, "depth must be >= 1")
	}
	gid := scope.GraphUniqueID(componentID)

	var query string
	if fromVar == "c" {
		query = fmt.Sprintf(`
			MATCH (c:Component {graph_unique_id: $gid})
			MATCH (c)-[:%s*1..%d]->(target:Component)
			RETURN DISTINCT target.graph_unique_id AS graph_unique_id, target.id AS id, target.repository AS repository,
			       target.branch AS branch, target.name AS name, target.kind AS kind, target.status AS status,
			       target.depends_on AS depends_on, target.created_at AS created_at, target.updated_at AS updated_at
		`, relType, depth)
	} else {
		query = fmt.Sprintf(`
			MATCH (c:Component {graph_unique_id: $gid})
			MATCH (target:Component)-[:%s*1..%d]->(c)
			RETURN DISTINCT target.graph_unique_id AS graph_unique_id, target.id AS id, target.repository AS repository,
			       target.branch AS branch, target.name AS name, target.kind AS kind, target.status AS status,
			       target.depends_on AS depends_on, target.created_at AS created_at, target.updated_at AS updated_at
		`, relType, depth)
	}

	rows, err := d.Client.Execute(ctx, query, map[string]any{"gid": gid})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "traversing component graph")
	}

	items := componentsFromStoreRows(rows)
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return &ListResult{Items: items, Count: len(items)}, nil
}

func componentsFromStoreRows(rows []store.Record) []*model.Component {
	out := make([]*model.Component, 0, len(rows))
	for _, rec := range rows {
		out = append(out, &model.Component{
			GraphUniqueID: store.ScalarString(rec["graph_unique_id"]),
			ID:            store.ScalarString(rec["id"]),
			Repository:    store.ScalarString(rec["repository"]),
			Branch:        store.ScalarString(rec["branch"]),
			Name:          store.ScalarString(rec["name"]),
			Kind:          store.ScalarString(rec["kind"]),
			Status:        store.ScalarString(rec["status"]),
			DependsOn:     asStringSlice(rec, "depends_on"),
			CreatedAt:     asTime(rec, "created_at"),
			UpdatedAt:     asTime(rec, "updated_at"),
		})
	}
	return out
}

// GetGoverningItemsForComponent returns the decisions, rules, and context
// history governing componentID within its scope.
func GetGoverningItemsForComponent(ctx context.Context, d *Deps, scope model.Scope, componentID string) (*GoverningItems, error) {
	componentGID := scope.GraphUniqueID(componentID)

	decisions, err := d.Decision.FindGoverning(ctx, componentGID)
	if err != nil {
		return nil, err
	}
	rules, err := d.Rule.FindActive(ctx, scope)
	if err != nil {
		return nil, err
	}
	history, err := d.Context.FindLinkedTo(ctx, componentGID)
	if err != nil {
		return nil, err
	}

	return &GoverningItems{Decisions: decisions, Rules: rules, ContextHistory: history}, nil
}

// GetItemContextualHistory returns the Context nodes linked to the entity
// with the given scoped id, ordered by date descending.
func GetItemContextualHistory(ctx context.Context, d *Deps, scope model.Scope, itemID string) (*ListResult, error) {
	gid := scope.GraphUniqueID(itemID)
	history, err := d.Context.FindLinkedTo(ctx, gid)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: history, Count: len(history)}, nil
}

// GetRelatedItems returns the breadth-limited neighborhood of an entity,
// filtered to the given relationship types (empty means any), up to depth
// hops, ignoring edge direction.
func GetRelatedItems(ctx context.Context, d *Deps, entityGID string, relTypes []string, depth int) (*ListResult, error) {
	if depth < 0 {
		return nil, memerr.New(memerr.InvalidArgument, "depth must be >= 0")
	}
	if depth == 0 {
		return &ListResult{Items: []string{entityGID}, Count: 1}, nil
	}

	relFilter := ""
	if len(relTypes) > 0 {
		relFilter = ":" + joinRelTypes(relTypes, "|")
	}

	query := fmt.Sprintf(`
		MATCH (x {graph_unique_id: $gid})
		MATCH (x)-[%s*1..%d]-(related)
		WHERE related.graph_unique_id IS NOT NULL
		RETURN DISTINCT related.graph_unique_id AS graph_unique_id
		ORDER BY graph_unique_id ASC
	`, relFilter, depth)

	rows, err := d.Client.Execute(ctx, query, map[string]any{"gid": entityGID})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding related items")
	}
	ids := make([]string, 0, len(rows))
	for _, rec := range rows {
		ids = append(ids, store.ScalarString(rec["graph_unique_id"]))
	}
	return &ListResult{Items: ids, Count: len(ids)}, nil
}

func joinRelTypes(relTypes []string, sep string) string {
	out := relTypes[0]
	for _, r := range relTypes[1:] {
		out += sep + r
	}
	return out
}

// ShortestPath finds the shortest undirected path between two nodes in the
// same (repository, branch), loading the local subgraph and delegating to
// the Dijkstra implementation in internal/algorithms. Every edge carries
// unit weight and is followed in both directions; when several shortest
// paths exist, which one is returned is not defined.
func ShortestPath(ctx context.Context, d *Deps, scope model.Scope, startGID, endGID string) (*ListResult, error) {
	if err := requireSameDatabase(scope, startGID, endGID); err != nil {
		return nil, err
	}

	rows, err := d.Client.Execute(ctx, `
		MATCH (a {repository: $repository, branch: $branch})-[r]-(b {repository: $repository, branch: $branch})
		RETURN a.graph_unique_id AS source, b.graph_unique_id AS target
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "loading scope subgraph for shortest path")
	}

	nodes := map[string]bool{startGID: true, endGID: true}
	edges := make([]algorithms.Edge, 0, len(rows))
	for _, rec := range rows {
		src := store.ScalarString(rec["source"])
		tgt := store.ScalarString(rec["target"])
		nodes[src] = true
		nodes[tgt] = true
		edges = append(edges, algorithms.Edge{Source: src, Target: tgt, Weight: 1})
		edges = append(edges, algorithms.Edge{Source: tgt, Target: src, Weight: 1})
	}
	nodeList := make([]string, 0, len(nodes))
	for n := range nodes {
		nodeList = append(nodeList, n)
	}

	g := algorithms.NewGraph(nodeList, edges)
	path, _, ok := algorithms.ShortestPath(g, startGID, endGID)
	if !ok {
		return &ListResult{Items: []string{}, Count: 0}, nil
	}
	return &ListResult{Items: path, Count: len(path)}, nil
}

func requireSameDatabase(scope model.Scope, gids ...string) error {
	prefix := scope.Repository + ":" + scope.Branch + ":"
	for _, gid := range gids {
		if len(gid) < len(prefix) || gid[:len(prefix)] != prefix {
			return memerr.Newf(memerr.Conflict, "%q is not within scope %s/%s", gid, scope.Repository, scope.Branch)
		}
	}
	return nil
}

// GetDecisionsByDateRange returns Decisions whose date falls within
// [start, end] inclusive, calendar-day precision.
func GetDecisionsByDateRange(ctx context.Context, d *Deps, scope model.Scope, start, end string) (*ListResult, error) {
	decisions, err := d.Decision.FindByDateRange(ctx, scope, start, end)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: decisions, Count: len(decisions)}, nil
}
