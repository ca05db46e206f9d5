package gateway

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// RuleGateway provides CRUD and scan access to Rule nodes.
type RuleGateway struct {
	client store.Querier
}

func NewRuleGateway(client store.Querier) *RuleGateway {
	return &RuleGateway{client: client}
}

func (g *RuleGateway) Upsert(ctx context.Context, scope model.Scope, r *model.Rule) (*model.Rule, error) {
	gid := scope.GraphUniqueID(r.ID)
	repoID := model.RepositoryNodeID(scope.Repository, scope.Branch)
	now := timeParam(nowFn())

	rows, err := g.client.Execute(ctx, `
		MERGE (x:Rule {graph_unique_id: $gid})
		ON CREATE SET x.id = $id, x.repository = $repository, x.branch = $branch, x.created_at = $now, x.created = $created
		SET x.name = $name, x.content = $content, x.triggers = $triggers, x.status = $status, x.updated_at = $now
		WITH x
		MATCH (r:Repository {id: $repoId})
		MERGE (r)-[:PART_OF_REPO]->(x)
		RETURN x.graph_unique_id AS graph_unique_id, x.id AS id, x.repository AS repository, x.branch AS branch,
		       x.name AS name, x.created AS created, x.content AS content, x.triggers AS triggers, x.status AS status,
		       x.created_at AS created_at, x.updated_at AS updated_at
	`, map[string]any{
		"gid": gid, "id": r.ID, "repository": scope.Repository, "branch": scope.Branch,
		"name": r.Name, "created": timeParam(r.Created), "content": r.Content,
		"triggers": r.Triggers, "status": r.Status, "repoId": repoID, "now": now,
	})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "upserting rule")
	}
	if len(rows) == 0 {
		return nil, memerr.New(memerr.NotFound, "repository not found for rule upsert")
	}
	return ruleFromRecord(rows[0]), nil
}

func (g *RuleGateway) FindByGraphID(ctx context.Context, gid string) (*model.Rule, error) {
	rows, err := g.client.Execute(ctx, ruleSelect+` WHERE x.graph_unique_id = $gid`, map[string]any{"gid": gid})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding rule")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return ruleFromRecord(rows[0]), nil
}

func (g *RuleGateway) FindByID(ctx context.Context, scope model.Scope, id string) (*model.Rule, error) {
	return g.FindByGraphID(ctx, scope.GraphUniqueID(id))
}

// FindActive returns every active Rule in scope.
func (g *RuleGateway) FindActive(ctx context.Context, scope model.Scope) ([]*model.Rule, error) {
	rows, err := g.client.Execute(ctx, ruleSelect+`
		WHERE x.repository = $repository AND x.branch = $branch AND x.status = 'active'
		ORDER BY x.id ASC
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "finding active rules")
	}
	return rulesFromRecords(rows), nil
}

func (g *RuleGateway) Delete(ctx context.Context, gid string) (bool, error) {
	rows, err := g.client.Execute(ctx, `
		MATCH (x:Rule {graph_unique_id: $gid})
		WITH x, 1 AS found
		DETACH DELETE x
		RETURN found
	`, map[string]any{"gid": gid})
	if err != nil {
		return false, memerr.Wrap(memerr.EngineErr, err, "deleting rule")
	}
	return len(rows) > 0, nil
}

const ruleSelect = `
	MATCH (x:Rule)
	RETURN x.graph_unique_id AS graph_unique_id, x.id AS id, x.repository AS repository, x.branch AS branch,
	       x.name AS name, x.created AS created, x.content AS content, x.triggers AS triggers, x.status AS status,
	       x.created_at AS created_at, x.updated_at AS updated_at
`

func ruleFromRecord(rec store.Record) *model.Rule {
	return &model.Rule{
		GraphUniqueID: asString(rec, "graph_unique_id"),
		ID:            asString(rec, "id"),
		Repository:    asString(rec, "repository"),
		Branch:        asString(rec, "branch"),
		Name:          asString(rec, "name"),
		Created:       asTime(rec, "created"),
		Content:       asString(rec, "content"),
		Triggers:      asStringSlice(rec, "triggers"),
		Status:        asString(rec, "status"),
		CreatedAt:     asTime(rec, "created_at"),
		UpdatedAt:     asTime(rec, "updated_at"),
	}
}

func rulesFromRecords(rows []store.Record) []*model.Rule {
	out := make([]*model.Rule, 0, len(rows))
	for _, row := range rows {
		out = append(out, ruleFromRecord(row))
	}
	return out
}
