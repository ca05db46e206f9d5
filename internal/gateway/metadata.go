package gateway

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// MetadataGateway provides CRUD access to Metadata nodes.
type MetadataGateway struct {
	client store.Querier
}

func NewMetadataGateway(client store.Querier) *MetadataGateway {
	return &MetadataGateway{client: client}
}

func (g *MetadataGateway) Upsert(ctx context.Context, scope model.Scope, m *model.Metadata) (*model.Metadata, error) {
	gid := scope.GraphUniqueID(m.ID)
	repoID := model.RepositoryNodeID(scope.Repository, scope.Branch)
	now := timeParam(nowFn())

	rows, err := g.client.Execute(ctx, `
		MERGE (m:Metadata {graph_unique_id: $gid})
		ON CREATE SET m.id = $id, m.repository = $repository, m.branch = $branch, m.created_at = $now
		SET m.name = $name, m.content = $content, m.updated_at = $now
		WITH m
		MATCH (r:Repository {id: $repoId})
		MERGE (r)-[:PART_OF_REPO]->(m)
		RETURN m.graph_unique_id AS graph_unique_id, m.id AS id, m.repository AS repository, m.branch AS branch,
		       m.name AS name, m.content AS content, m.created_at AS created_at, m.updated_at AS updated_at
	`, map[string]any{
		"gid": gid, "id": m.ID, "repository": scope.Repository, "branch": scope.Branch,
		"name": m.Name, "content": m.Content, "repoId": repoID, "now": now,
	})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "upserting metadata")
	}
	if len(rows) == 0 {
		return nil, memerr.New(memerr.NotFound, "repository not found for metadata upsert")
	}
	return metadataFromRecord(rows[0]), nil
}

func (g *MetadataGateway) FindByGraphID(ctx context.Context, gid string) (*model.Metadata, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (m:Metadata {graph_unique_id: $gid})
		RETURN m.graph_unique_id AS graph_unique_id, m.id AS id, m.repository AS repository, m.branch AS branch,
		       m.name AS name, m.content AS content, m.created_at AS created_at, m.updated_at AS updated_at
	`, map[string]any{"gid": gid})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding metadata")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return metadataFromRecord(rows[0]), nil
}

func (g *MetadataGateway) FindByID(ctx context.Context, scope model.Scope, id string) (*model.Metadata, error) {
	return g.FindByGraphID(ctx, scope.GraphUniqueID(id))
}

func (g *MetadataGateway) Delete(ctx context.Context, gid string) (bool, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (m:Metadata {graph_unique_id: $gid})
		WITH m, 1 AS found
		DETACH DELETE m
		RETURN found
	`, map[string]any{"gid": gid})
	if err != nil {
		return false, memerr.Wrap(memerr.EngineErr, err, "deleting metadata")
	}
	return len(rows) > 0, nil
}

func metadataFromRecord(rec store.Record) *model.Metadata {
	return &model.Metadata{
		GraphUniqueID: asString(rec, "graph_unique_id"),
		ID:            asString(rec, "id"),
		Repository:    asString(rec, "repository"),
		Branch:        asString(rec, "branch"),
		Name:          asString(rec, "name"),
		Content:       asString(rec, "content"),
		CreatedAt:     asTime(rec, "created_at"),
		UpdatedAt:     asTime(rec, "updated_at"),
	}
}
