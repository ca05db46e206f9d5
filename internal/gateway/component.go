package gateway

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// ComponentGateway provides CRUD and scan access to Component nodes.
type ComponentGateway struct {
	client store.Querier
}

func NewComponentGateway(client store.Querier) *ComponentGateway {
	return &ComponentGateway{client: client}
}

// Upsert creates or updates a Component, advancing updated_at and leaving
// created_at stable across repeated calls (spec invariant 6). It links the
// node to its Repository via PART_OF_REPO and, for each logical id in
// DependsOn that already exists as a Component in the same scope,
// materializes a DEPENDS_ON edge (invariant 5); dangling entries are kept
// on the node but produce no edge.
func (g *ComponentGateway) Upsert(ctx context.Context, scope model.Scope, c *model.Component) (*model.Component, error) {
	gid := scope.GraphUniqueID(c.ID)
	repoID := model.RepositoryNodeID(scope.Repository, scope.Branch)
	now := timeParam(nowFn())

	query := `
		MERGE (c:Component {graph_unique_id: $gid})
		ON CREATE SET c.id = $id, c.repository = $repository, c.branch = $branch, c.created_at = $now
		SET c.name = $name, c.kind = $kind, c.status = $status, c.depends_on = $depends_on, c.updated_at = $now
		WITH c
		MATCH (r:Repository {id: $repoId})
		MERGE (r)-[:PART_OF_REPO]->(c)
		RETURN c.graph_unique_id AS graph_unique_id, c.id AS id, c.repository AS repository, c.branch AS branch,
		       c.name AS name, c.kind AS kind, c.status AS status, c.depends_on AS depends_on,
		       c.created_at AS created_at, c.updated_at AS updated_at
	`
	rows, err := g.client.Execute(ctx, query, map[string]any{
		"gid": gid, "id": c.ID, "repository": scope.Repository, "branch": scope.Branch,
		"name": c.Name, "kind": c.Kind, "status": c.Status, "depends_on": c.DependsOn,
		"repoId": repoID, "now": now,
	})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "upserting component")
	}
	if len(rows) == 0 {
		return nil, memerr.New(memerr.NotFound, "repository not found for component upsert")
	}

	if err := g.resolveDependencies(ctx, scope, c.ID, c.DependsOn); err != nil {
		return nil, err
	}
	if err := g.resolveDependents(ctx, scope, gid, c.ID); err != nil {
		return nil, err
	}

	return componentFromRecord(rows[0]), nil
}

// resolveDependencies materializes DEPENDS_ON edges for every logical
// dependency id that already exists as a Component in the same scope.
// Listings whose target does not yet exist are left dangling.
func (g *ComponentGateway) resolveDependencies(ctx context.Context, scope model.Scope, id string, depends []string) error {
	if len(depends) == 0 {
		return nil
	}
	srcGID := scope.GraphUniqueID(id)
	depGIDs := make([]string, len(depends))
	for i, d := range depends {
		depGIDs[i] = scope.GraphUniqueID(d)
	}
	_, err := g.client.Execute(ctx, `
		MATCH (a:Component {graph_unique_id: $srcGid})
		UNWIND $depGids AS depGid
		MATCH (b:Component {graph_unique_id: depGid})
		MERGE (a)-[:DEPENDS_ON]->(b)
	`, map[string]any{"srcGid": srcGID, "depGids": depGIDs})
	if err != nil {
		return memerr.Wrap(memerr.EngineErr, err, "materializing component dependencies")
	}
	return nil
}

// resolveDependents scans the rest of the scope for components whose
// depends_on listing already names this one's logical id, and materializes
// the DEPENDS_ON edge on their side. This is the other half of invariant 5's
// "retry resolution on the next upsert of either side": resolveDependencies
// handles the case where the dependency already existed when the dependent
// was upserted; this handles the case where the dependency is the one being
// upserted now and an earlier dependent is still holding a dangling listing.
func (g *ComponentGateway) resolveDependents(ctx context.Context, scope model.Scope, gid, id string) error {
	_, err := g.client.Execute(ctx, `
		MATCH (b:Component {graph_unique_id: $gid})
		MATCH (a:Component {repository: $repository, branch: $branch})
		WHERE a.graph_unique_id <> $gid AND $id IN a.depends_on
		MERGE (a)-[:DEPENDS_ON]->(b)
	`, map[string]any{"gid": gid, "id": id, "repository": scope.Repository, "branch": scope.Branch})
	if err != nil {
		return memerr.Wrap(memerr.EngineErr, err, "materializing dependent components")
	}
	return nil
}

// FindByGraphID looks up a Component by its graph_unique_id.
func (g *ComponentGateway) FindByGraphID(ctx context.Context, gid string) (*model.Component, error) {
	rows, err := g.client.Execute(ctx, componentSelect+` WHERE c.graph_unique_id = $gid`, map[string]any{"gid": gid})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding component")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return componentFromRecord(rows[0]), nil
}

// FindByID looks up a Component by (scope, logical id).
func (g *ComponentGateway) FindByID(ctx context.Context, scope model.Scope, id string) (*model.Component, error) {
	return g.FindByGraphID(ctx, scope.GraphUniqueID(id))
}

// ScanScope returns every Component in (repository, branch), ordered by
// logical id ascending.
func (g *ComponentGateway) ScanScope(ctx context.Context, scope model.Scope) ([]*model.Component, error) {
	rows, err := g.client.Execute(ctx, componentSelect+`
		WHERE c.repository = $repository AND c.branch = $branch
		ORDER BY c.id ASC
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "scanning components")
	}
	return componentsFromRecords(rows), nil
}

// FindActive returns every Component with status = "active" in scope.
func (g *ComponentGateway) FindActive(ctx context.Context, scope model.Scope) ([]*model.Component, error) {
	rows, err := g.client.Execute(ctx, componentSelect+`
		WHERE c.repository = $repository AND c.branch = $branch AND c.status = 'active'
		ORDER BY c.id ASC
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding active components")
	}
	return componentsFromRecords(rows), nil
}

// Delete detach-deletes the Component with the given graph_unique_id,
// cascading its incident edges. Returns false if no such node existed.
func (g *ComponentGateway) Delete(ctx context.Context, gid string) (bool, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (c:Component {graph_unique_id: $gid})
		WITH c, 1 AS found
		DETACH DELETE c
		RETURN found
	`, map[string]any{"gid": gid})
	if err != nil {
		return false, memerr.Wrap(memerr.EngineErr, err, "deleting component")
	}
	return len(rows) > 0, nil
}

const componentSelect = `
	MATCH (c:Component)
	RETURN c.graph_unique_id AS graph_unique_id, c.id AS id, c.repository AS repository, c.branch AS branch,
	       c.name AS name, c.kind AS kind, c.status AS status, c.depends_on AS depends_on,
	       c.created_at AS created_at, c.updated_at AS updated_at
`

func componentFromRecord(rec store.Record) *model.Component {
	return &model.Component{
		GraphUniqueID: asString(rec, "graph_unique_id"),
		ID:            asString(rec, "id"),
		Repository:    asString(rec, "repository"),
		Branch:        asString(rec, "branch"),
		Name:          asString(rec, "name"),
		Kind:          asString(rec, "kind"),
		Status:        asString(rec, "status"),
		DependsOn:     asStringSlice(rec, "depends_on"),
		CreatedAt:     asTime(rec, "created_at"),
		UpdatedAt:     asTime(rec, "updated_at"),
	}
}

func componentsFromRecords(rows []store.Record) []*model.Component {
	out := make([]*model.Component, 0, len(rows))
	for _, row := range rows {
		out = append(out, componentFromRecord(row))
	}
	return out
}
