package gateway

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// ContextGateway provides CRUD and date-ordered scan access to Context
// nodes.
type ContextGateway struct {
	client store.Querier
}

func NewContextGateway(client store.Querier) *ContextGateway {
	return &ContextGateway{client: client}
}

func (g *ContextGateway) Upsert(ctx context.Context, scope model.Scope, c *model.Context) (*model.Context, error) {
	gid := scope.GraphUniqueID(c.ID)
	repoID := model.RepositoryNodeID(scope.Repository, scope.Branch)
	now := timeParam(nowFn())

	rows, err := g.client.Execute(ctx, `
		MERGE (x:Context {graph_unique_id: $gid})
		ON CREATE SET x.id = $id, x.repository = $repository, x.branch = $branch, x.created_at = $now
		SET x.agent = $agent, x.summary = $summary, x.observation = $observation,
		    x.date = $date, x.issue = $issue, x.updated_at = $now
		WITH x
		MATCH (r:Repository {id: $repoId})
		MERGE (r)-[:PART_OF_REPO]->(x)
		RETURN x.graph_unique_id AS graph_unique_id, x.id AS id, x.repository AS repository, x.branch AS branch,
		       x.agent AS agent, x.summary AS summary, x.observation AS observation, x.date AS date,
		       x.issue AS issue, x.created_at AS created_at, x.updated_at AS updated_at
	`, map[string]any{
		"gid": gid, "id": c.ID, "repository": scope.Repository, "branch": scope.Branch,
		"agent": c.Agent, "summary": c.Summary, "observation": c.Observation,
		"date": timeParam(c.Date), "issue": c.Issue, "repoId": repoID, "now": now,
	})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "upserting context")
	}
	if len(rows) == 0 {
		return nil, memerr.New(memerr.NotFound, "repository not found for context upsert")
	}
	return contextFromRecord(rows[0]), nil
}

func (g *ContextGateway) FindByGraphID(ctx context.Context, gid string) (*model.Context, error) {
	rows, err := g.client.Execute(ctx, contextSelect+` WHERE x.graph_unique_id = $gid`, map[string]any{"gid": gid})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding context")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return contextFromRecord(rows[0]), nil
}

// FindLinkedTo returns Context nodes linked via CONTEXT_OF to the entity
// with the given graph_unique_id, ordered by date descending (most recent
// first), per spec's get_item_contextual_history.
func (g *ContextGateway) FindLinkedTo(ctx context.Context, targetGID string) ([]*model.Context, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (x:Context)-[:CONTEXT_OF]->(target {graph_unique_id: $gid})
		RETURN x.graph_unique_id AS graph_unique_id, x.id AS id, x.repository AS repository, x.branch AS branch,
		       x.agent AS agent, x.summary AS summary, x.observation AS observation, x.date AS date,
		       x.issue AS issue, x.created_at AS created_at, x.updated_at AS updated_at
		ORDER BY x.date DESC
	`, map[string]any{"gid": targetGID})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding contextual history")
	}
	return contextsFromRecords(rows), nil
}

// FindByDateRange returns Context nodes in scope whose date falls within
// [start, end] inclusive (calendar-day precision, per spec).
func (g *ContextGateway) FindByDateRange(ctx context.Context, scope model.Scope, start, end string) ([]*model.Context, error) {
	rows, err := g.client.Execute(ctx, contextSelect+`
		WHERE x.repository = $repository AND x.branch = $branch
		  AND date(x.date) >= date($start) AND date(x.date) <= date($end)
		ORDER BY x.date DESC
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch, "start": start, "end": end})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding contexts by date range")
	}
	return contextsFromRecords(rows), nil
}

func (g *ContextGateway) Delete(ctx context.Context, gid string) (bool, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (x:Context {graph_unique_id: $gid})
		WITH x, 1 AS found
		DETACH DELETE x
		RETURN found
	`, map[string]any{"gid": gid})
	if err != nil {
		return false, memerr.Wrap(memerr.EngineErr, err, "deleting context")
	}
	return len(rows) > 0, nil
}

const contextSelect = `
	MATCH (x:Context)
	RETURN x.graph_unique_id AS graph_unique_id, x.id AS id, x.repository AS repository, x.branch AS branch,
	       x.agent AS agent, x.summary AS summary, x.observation AS observation, x.date AS date,
	       x.issue AS issue, x.created_at AS created_at, x.updated_at AS updated_at
`

func contextFromRecord(rec store.Record) *model.Context {
	return &model.Context{
		GraphUniqueID: asString(rec, "graph_unique_id"),
		ID:            asString(rec, "id"),
		Repository:    asString(rec, "repository"),
		Branch:        asString(rec, "branch"),
		Agent:         asString(rec, "agent"),
		Summary:       asString(rec, "summary"),
		Observation:   asString(rec, "observation"),
		Date:          asTime(rec, "date"),
		Issue:         asString(rec, "issue"),
		CreatedAt:     asTime(rec, "created_at"),
		UpdatedAt:     asTime(rec, "updated_at"),
	}
}

func contextsFromRecords(rows []store.Record) []*model.Context {
	out := make([]*model.Context, 0, len(rows))
	for _, row := range rows {
		out = append(out, contextFromRecord(row))
	}
	return out
}
