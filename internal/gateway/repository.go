package gateway

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// RepositoryGateway provides CRUD access to Repository nodes, keyed by
// "{name}:{branch}" rather than a graph_unique_id triple.
type RepositoryGateway struct {
	client store.Querier
}

func NewRepositoryGateway(client store.Querier) *RepositoryGateway {
	return &RepositoryGateway{client: client}
}

// Ensure upserts a Repository node for (name, branch), creating it on first
// use of a (repository, branch) pair and leaving created_at stable on
// subsequent calls.
func (g *RepositoryGateway) Ensure(ctx context.Context, name, branch string) (*model.Repository, error) {
	id := model.RepositoryNodeID(name, branch)
	query := `
		MERGE (r:Repository {id: $id})
		ON CREATE SET r.name = $name, r.branch = $branch, r.created_at = $now, r.updated_at = $now
		ON MATCH SET r.updated_at = $now
		RETURN r.id AS id, r.name AS name, r.branch AS branch, r.created_at AS created_at, r.updated_at AS updated_at
	`
	rows, err := g.client.Execute(ctx, query, map[string]any{
		"id": id, "name": name, "branch": branch, "now": timeParam(nowFn()),
	})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "upserting repository")
	}
	if len(rows) == 0 {
		return nil, memerr.New(memerr.Internal, "repository upsert returned no row")
	}
	return repositoryFromRecord(rows[0]), nil
}

// FindByID looks up a Repository node by its "{name}:{branch}" id.
func (g *RepositoryGateway) FindByID(ctx context.Context, name, branch string) (*model.Repository, error) {
	id := model.RepositoryNodeID(name, branch)
	rows, err := g.client.Execute(ctx, `
		MATCH (r:Repository {id: $id})
		RETURN r.id AS id, r.name AS name, r.branch AS branch, r.created_at AS created_at, r.updated_at AS updated_at
	`, map[string]any{"id": id})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding repository")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return repositoryFromRecord(rows[0]), nil
}

// ListBranches returns every branch name recorded for a logical repository.
func (g *RepositoryGateway) ListBranches(ctx context.Context, name string) ([]string, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (r:Repository {name: $name})
		RETURN r.branch AS branch
		ORDER BY r.branch
	`, map[string]any{"name": name})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "listing branches")
	}
	branches := make([]string, 0, len(rows))
	for _, row := range rows {
		branches = append(branches, asString(row, "branch"))
	}
	return branches, nil
}

func repositoryFromRecord(rec store.Record) *model.Repository {
	return &model.Repository{
		ID:        asString(rec, "id"),
		Name:      asString(rec, "name"),
		Branch:    asString(rec, "branch"),
		CreatedAt: asTime(rec, "created_at"),
		UpdatedAt: asTime(rec, "updated_at"),
	}
}

// nowFn is overridable in tests; production code always uses time.Now.
var nowFn = defaultNow
