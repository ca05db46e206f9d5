package gateway

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// DecisionGateway provides CRUD and scan access to Decision nodes.
type DecisionGateway struct {
	client store.Querier
}

func NewDecisionGateway(client store.Querier) *DecisionGateway {
	return &DecisionGateway{client: client}
}

func (g *DecisionGateway) Upsert(ctx context.Context, scope model.Scope, d *model.Decision) (*model.Decision, error) {
	gid := scope.GraphUniqueID(d.ID)
	repoID := model.RepositoryNodeID(scope.Repository, scope.Branch)
	now := timeParam(nowFn())

	rows, err := g.client.Execute(ctx, `
		MERGE (d:Decision {graph_unique_id: $gid})
		ON CREATE SET d.id = $id, d.repository = $repository, d.branch = $branch, d.created_at = $now
		SET d.name = $name, d.date = $date, d.context = $context, d.status = $status, d.updated_at = $now
		WITH d
		MATCH (r:Repository {id: $repoId})
		MERGE (r)-[:PART_OF_REPO]->(d)
		RETURN d.graph_unique_id AS graph_unique_id, d.id AS id, d.repository AS repository, d.branch AS branch,
		       d.name AS name, d.date AS date, d.context AS context, d.status AS status,
		       d.created_at AS created_at, d.updated_at AS updated_at
	`, map[string]any{
		"gid": gid, "id": d.ID, "repository": scope.Repository, "branch": scope.Branch,
		"name": d.Name, "date": timeParam(d.Date), "context": d.Context, "status": d.Status,
		"repoId": repoID, "now": now,
	})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "upserting decision")
	}
	if len(rows) == 0 {
		return nil, memerr.New(memerr.NotFound, "repository not found for decision upsert")
	}
	return decisionFromRecord(rows[0]), nil
}

func (g *DecisionGateway) FindByGraphID(ctx context.Context, gid string) (*model.Decision, error) {
	rows, err := g.client.Execute(ctx, decisionSelect+` WHERE d.graph_unique_id = $gid`, map[string]any{"gid": gid})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding decision")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return decisionFromRecord(rows[0]), nil
}

func (g *DecisionGateway) FindByID(ctx context.Context, scope model.Scope, id string) (*model.Decision, error) {
	return g.FindByGraphID(ctx, scope.GraphUniqueID(id))
}

// FindGoverning returns the Decisions that govern a Component via
// DECISION_ON, in scope.
func (g *DecisionGateway) FindGoverning(ctx context.Context, componentGID string) ([]*model.Decision, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (d:Decision)-[:DECISION_ON]->(c {graph_unique_id: $gid})
		RETURN d.graph_unique_id AS graph_unique_id, d.id AS id, d.repository AS repository, d.branch AS branch,
		       d.name AS name, d.date AS date, d.context AS context, d.status AS status,
		       d.created_at AS created_at, d.updated_at AS updated_at
		ORDER BY d.date DESC
	`, map[string]any{"gid": componentGID})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding governing decisions")
	}
	return decisionsFromRecords(rows), nil
}

// FindByDateRange returns Decisions in scope with date in [start, end]
// inclusive, calendar-day precision.
func (g *DecisionGateway) FindByDateRange(ctx context.Context, scope model.Scope, start, end string) ([]*model.Decision, error) {
	rows, err := g.client.Execute(ctx, decisionSelect+`
		WHERE d.repository = $repository AND d.branch = $branch
		  AND date(d.date) >= date($start) AND date(d.date) <= date($end)
		ORDER BY d.date ASC
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch, "start": start, "end": end})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding decisions by date range")
	}
	return decisionsFromRecords(rows), nil
}

// LinkToComponent MERGEs a DECISION_ON edge from a Decision to a Component
// in the same scope.
func (g *DecisionGateway) LinkToComponent(ctx context.Context, decisionGID, componentGID string) error {
	_, err := g.client.Execute(ctx, `
		MATCH (d:Decision {graph_unique_id: $dgid}), (c:Component {graph_unique_id: $cgid})
		MERGE (d)-[:DECISION_ON]->(c)
	`, map[string]any{"dgid": decisionGID, "cgid": componentGID})
	if err != nil {
		return memerr.Wrap(memerr.EngineErr, err, "linking decision to component")
	}
	return nil
}

func (g *DecisionGateway) Delete(ctx context.Context, gid string) (bool, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (d:Decision {graph_unique_id: $gid})
		WITH d, 1 AS found
		DETACH DELETE d
		RETURN found
	`, map[string]any{"gid": gid})
	if err != nil {
		return false, memerr.Wrap(memerr.EngineErr, err, "deleting decision")
	}
	return len(rows) > 0, nil
}

const decisionSelect = `
	MATCH (d:Decision)
	RETURN d.graph_unique_id AS graph_unique_id, d.id AS id, d.repository AS repository, d.branch AS branch,
	       d.name AS name, d.date AS date, d.context AS context, d.status AS status,
	       d.created_at AS created_at, d.updated_at AS updated_at
`

func decisionFromRecord(rec store.Record) *model.Decision {
	return &model.Decision{
		GraphUniqueID: asString(rec, "graph_unique_id"),
		ID:            asString(rec, "id"),
		Repository:    asString(rec, "repository"),
		Branch:        asString(rec, "branch"),
		Name:          asString(rec, "name"),
		Date:          asTime(rec, "date"),
		Context:       asString(rec, "context"),
		Status:        asString(rec, "status"),
		CreatedAt:     asTime(rec, "created_at"),
		UpdatedAt:     asTime(rec, "updated_at"),
	}
}

func decisionsFromRecords(rows []store.Record) []*model.Decision {
	out := make([]*model.Decision, 0, len(rows))
	for _, row := range rows {
		out = append(out, decisionFromRecord(row))
	}
	return out
}
