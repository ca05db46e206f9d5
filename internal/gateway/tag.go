package gateway

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// TagGateway provides access to Tag nodes, which are not scoped to a
// repository/branch: a Tag's identity is its id (spec.md §3's composite-key
// table keys Tag on `id`, same as every other label), and the same Tag node
// may be IS_TAGGED_WITH'd from entities in any repository or branch sharing
// the same project-root database.
type TagGateway struct {
	client store.Querier
}

func NewTagGateway(client store.Querier) *TagGateway {
	return &TagGateway{client: client}
}

// Ensure MERGEs a Tag node for the given id, creating it (with name and
// optional color/description) on first use.
func (g *TagGateway) Ensure(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	now := timeParam(nowFn())
	rows, err := g.client.Execute(ctx, `
		MERGE (t:Tag {id: $id})
		ON CREATE SET t.created_at = $now
		SET t.name = $name, t.color = $color, t.description = $description
		RETURN t.id AS id, t.name AS name, t.color AS color, t.description AS description, t.created_at AS created_at
	`, map[string]any{
		"id": t.ID, "name": t.Name, "color": t.Color, "description": t.Description, "now": now,
	})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "ensuring tag")
	}
	if len(rows) == 0 {
		return nil, memerr.New(memerr.Internal, "tag merge returned no rows")
	}
	return tagFromRecord(rows[0]), nil
}

// AttachTo MATCHes the entity with the given graph_unique_id and the Tag
// with the given id, then MERGEs an IS_TAGGED_WITH edge between them.
// Neither endpoint is created here: per spec.md §4.6, associations MATCH
// both endpoints and only the edge is MERGEd, so tagging an id that was
// never upserted fails the same way tagging a nonexistent entity does. The
// entity side is matched by graph_unique_id across any label, since Tag
// attachment applies uniformly to Component, Decision, Rule, Context, File,
// and Metadata nodes.
func (g *TagGateway) AttachTo(ctx context.Context, entityGID, tagID string) error {
	rows, err := g.client.Execute(ctx, `
		MATCH (x {graph_unique_id: $gid})
		MATCH (t:Tag {id: $tagId})
		MERGE (x)-[:IS_TAGGED_WITH]->(t)
		RETURN 1 AS linked
	`, map[string]any{"gid": entityGID, "tagId": tagID})
	if err != nil {
		return memerr.Wrap(memerr.EngineErr, err, "tagging item")
	}
	if len(rows) == 0 {
		return memerr.New(memerr.NotFound, "entity or tag not found for tagging")
	}
	return nil
}

// DetachFrom removes the IS_TAGGED_WITH edge between an entity and a tag
// id, leaving the Tag node itself intact for reuse by other entities.
func (g *TagGateway) DetachFrom(ctx context.Context, entityGID, tagID string) (bool, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (x {graph_unique_id: $gid})-[r:IS_TAGGED_WITH]->(t:Tag {id: $tagId})
		WITH r, 1 AS found
		DELETE r
		RETURN found
	`, map[string]any{"gid": entityGID, "tagId": tagID})
	if err != nil {
		return false, memerr.Wrap(memerr.EngineErr, err, "untagging item")
	}
	return len(rows) > 0, nil
}

// FindTaggedGraphIDs returns the graph_unique_id of every entity bearing
// the given tag id, across all labels.
func (g *TagGateway) FindTaggedGraphIDs(ctx context.Context, tagID string) ([]string, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (x)-[:IS_TAGGED_WITH]->(t:Tag {id: $tagId})
		RETURN x.graph_unique_id AS graph_unique_id
	`, map[string]any{"tagId": tagID})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding tagged entities")
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, asString(row, "graph_unique_id"))
	}
	return out, nil
}

// TagsFor returns the tag names attached to the entity with the given
// graph_unique_id.
func (g *TagGateway) TagsFor(ctx context.Context, entityGID string) ([]string, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (x {graph_unique_id: $gid})-[:IS_TAGGED_WITH]->(t:Tag)
		RETURN t.name AS name
		ORDER BY t.name ASC
	`, map[string]any{"gid": entityGID})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding tags for entity")
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, asString(row, "name"))
	}
	return out, nil
}

// Delete removes the Tag node itself along with every IS_TAGGED_WITH edge
// incident on it. No operation or tool calls it; bulk delete by tag leaves
// the Tag node in place.
func (g *TagGateway) Delete(ctx context.Context, tagID string) (bool, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (t:Tag {id: $tagId})
		WITH t, 1 AS found
		DETACH DELETE t
		RETURN found
	`, map[string]any{"tagId": tagID})
	if err != nil {
		return false, memerr.Wrap(memerr.EngineErr, err, "deleting tag")
	}
	return len(rows) > 0, nil
}

func tagFromRecord(rec store.Record) *model.Tag {
	return &model.Tag{
		ID:          asString(rec, "id"),
		Name:        asString(rec, "name"),
		Color:       asString(rec, "color"),
		Description: asString(rec, "description"),
		CreatedAt:   asTime(rec, "created_at"),
	}
}
