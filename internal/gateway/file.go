package gateway

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// FileGateway provides CRUD access to File nodes and their CONTAINS_FILE
// association to Component nodes.
type FileGateway struct {
	client store.Querier
}

func NewFileGateway(client store.Querier) *FileGateway {
	return &FileGateway{client: client}
}

func (g *FileGateway) Upsert(ctx context.Context, scope model.Scope, f *model.File) (*model.File, error) {
	gid := scope.GraphUniqueID(f.ID)
	repoID := model.RepositoryNodeID(scope.Repository, scope.Branch)
	now := timeParam(nowFn())

	rows, err := g.client.Execute(ctx, `
		MERGE (x:File {graph_unique_id: $gid})
		ON CREATE SET x.id = $id, x.repository = $repository, x.branch = $branch, x.created_at = $now
		SET x.name = $name, x.path = $path, x.language = $language, x.metrics = $metrics,
		    x.content_hash = $content_hash, x.mime_type = $mime_type, x.size_bytes = $size_bytes,
		    x.updated_at = $now
		WITH x
		MATCH (r:Repository {id: $repoId})
		MERGE (r)-[:PART_OF_REPO]->(x)
		RETURN x.graph_unique_id AS graph_unique_id, x.id AS id, x.repository AS repository, x.branch AS branch,
		       x.name AS name, x.path AS path, x.language AS language, x.metrics AS metrics,
		       x.content_hash AS content_hash, x.mime_type AS mime_type, x.size_bytes AS size_bytes,
		       x.created_at AS created_at, x.updated_at AS updated_at
	`, map[string]any{
		"gid": gid, "id": f.ID, "repository": scope.Repository, "branch": scope.Branch,
		"name": f.Name, "path": f.Path, "language": f.Language, "metrics": f.Metrics,
		"content_hash": f.ContentHash, "mime_type": f.MimeType, "size_bytes": f.SizeBytes,
		"repoId": repoID, "now": now,
	})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "upserting file")
	}
	if len(rows) == 0 {
		return nil, memerr.New(memerr.NotFound, "repository not found for file upsert")
	}
	return fileFromRecord(rows[0]), nil
}

func (g *FileGateway) FindByGraphID(ctx context.Context, gid string) (*model.File, error) {
	rows, err := g.client.Execute(ctx, fileSelect+` WHERE x.graph_unique_id = $gid`, map[string]any{"gid": gid})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding file")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return fileFromRecord(rows[0]), nil
}

func (g *FileGateway) FindByID(ctx context.Context, scope model.Scope, id string) (*model.File, error) {
	return g.FindByGraphID(ctx, scope.GraphUniqueID(id))
}

// FindByPath looks up a File by its scoped path, used to resolve
// associate_file_with_component calls that reference a path rather than an
// id.
func (g *FileGateway) FindByPath(ctx context.Context, scope model.Scope, path string) (*model.File, error) {
	rows, err := g.client.Execute(ctx, fileSelect+`
		WHERE x.repository = $repository AND x.branch = $branch AND x.path = $path
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch, "path": path})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding file by path")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return fileFromRecord(rows[0]), nil
}

// ContainedIn returns the Components that CONTAINS_FILE the file with the
// given graph_unique_id.
func (g *FileGateway) ContainedIn(ctx context.Context, fileGID string) ([]*model.Component, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (c:Component)-[:CONTAINS_FILE]->(x:File {graph_unique_id: $gid})
		RETURN c.graph_unique_id AS graph_unique_id, c.id AS id, c.repository AS repository, c.branch AS branch,
		       c.name AS name, c.kind AS kind, c.status AS status, c.depends_on AS depends_on,
		       c.created_at AS created_at, c.updated_at AS updated_at
		ORDER BY c.id ASC
	`, map[string]any{"gid": fileGID})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding components containing file")
	}
	return componentsFromRecords(rows), nil
}

// AssociateWithComponent MERGEs a CONTAINS_FILE edge from a Component to a
// File, both addressed by graph_unique_id.
func (g *FileGateway) AssociateWithComponent(ctx context.Context, componentGID, fileGID string) error {
	rows, err := g.client.Execute(ctx, `
		MATCH (c:Component {graph_unique_id: $cgid}), (x:File {graph_unique_id: $fgid})
		MERGE (c)-[:CONTAINS_FILE]->(x)
		RETURN 1 AS linked
	`, map[string]any{"cgid": componentGID, "fgid": fileGID})
	if err != nil {
		return memerr.Wrap(memerr.EngineErr, err, "associating file with component")
	}
	if len(rows) == 0 {
		return memerr.New(memerr.NotFound, "component or file not found for association")
	}
	return nil
}

func (g *FileGateway) Delete(ctx context.Context, gid string) (bool, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (x:File {graph_unique_id: $gid})
		WITH x, 1 AS found
		DETACH DELETE x
		RETURN found
	`, map[string]any{"gid": gid})
	if err != nil {
		return false, memerr.Wrap(memerr.EngineErr, err, "deleting file")
	}
	return len(rows) > 0, nil
}

const fileSelect = `
	MATCH (x:File)
	RETURN x.graph_unique_id AS graph_unique_id, x.id AS id, x.repository AS repository, x.branch AS branch,
	       x.name AS name, x.path AS path, x.language AS language, x.metrics AS metrics,
	       x.content_hash AS content_hash, x.mime_type AS mime_type, x.size_bytes AS size_bytes,
	       x.created_at AS created_at, x.updated_at AS updated_at
`

func fileFromRecord(rec store.Record) *model.File {
	return &model.File{
		GraphUniqueID: asString(rec, "graph_unique_id"),
		ID:            asString(rec, "id"),
		Repository:    asString(rec, "repository"),
		Branch:        asString(rec, "branch"),
		Name:          asString(rec, "name"),
		Path:          asString(rec, "path"),
		Language:      asString(rec, "language"),
		Metrics:       asString(rec, "metrics"),
		ContentHash:   asString(rec, "content_hash"),
		MimeType:      asString(rec, "mime_type"),
		SizeBytes:     asInt64(rec, "size_bytes"),
		CreatedAt:     asTime(rec, "created_at"),
		UpdatedAt:     asTime(rec, "updated_at"),
	}
}

func filesFromRecords(rows []store.Record) []*model.File {
	out := make([]*model.File, 0, len(rows))
	for _, row := range rows {
		out = append(out, fileFromRecord(row))
	}
	return out
}
