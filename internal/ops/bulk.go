package ops

import (
	"context"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
	"github.com/memorybank/memorybank/internal/validate"
)

// entityTypeLabel maps a bulk-delete-by-type argument to its node label.
// Tag is excluded: it is never targeted by a scoped bulk delete, only by
// the explicit tag-delete operation.
func entityTypeLabel(entityType string) (string, error) {
	switch entityType {
	case "component":
		return model.LabelComponent, nil
	case "decision":
		return model.LabelDecision, nil
	case "rule":
		return model.LabelRule, nil
	case "file":
		return model.LabelFile, nil
	case "metadata":
		return model.LabelMetadata, nil
	case "context":
		return model.LabelContext, nil
	default:
		return "", memerr.Newf(memerr.InvalidArgument, "unknown entity type %q for bulk delete", entityType)
	}
}

// BulkDeleteByType matches every node of entityType within scope and either
// reports the candidate set (dryRun) or detach-deletes it, subject to the
// confirmation threshold.
func BulkDeleteByType(ctx context.Context, d *Deps, scope model.Scope, entityType string, dryRun, force bool) (*BulkResult, error) {
	if err := validate.RequireScope(scope); err != nil {
		return nil, err
	}
	label, err := entityTypeLabel(entityType)
	if err != nil {
		return nil, err
	}
	rows, err := d.Client.Execute(ctx, `
		MATCH (n:`+label+` {repository: $repository, branch: $branch})
		RETURN n.graph_unique_id AS graph_unique_id
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "matching bulk delete candidates")
	}
	ids := graphIDsFromRows(rows)

	if dryRun {
		return &BulkResult{DryRun: true, Count: len(ids), Entities: ids}, nil
	}
	if err := validate.BulkDeleteCount(len(ids), force); err != nil {
		return nil, err
	}

	if _, err := d.Client.Execute(ctx, `
		MATCH (n:`+label+` {repository: $repository, branch: $branch})
		DETACH DELETE n
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch}); err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "deleting matched nodes")
	}
	return &BulkResult{DryRun: false, Count: len(ids), Entities: ids}, nil
}

// BulkDeleteByTag matches every entity bearing tagID, across all
// repositories and branches sharing this database, and either reports or
// detach-deletes the matched entities. The Tag node itself is left intact
// since only the explicit tag-delete operation removes it.
func BulkDeleteByTag(ctx context.Context, d *Deps, tagID string, dryRun, force bool) (*BulkResult, error) {
	if err := validate.ID(tagID, model.PrefixTag, "tag"); err != nil {
		return nil, err
	}
	ids, err := d.Tag.FindTaggedGraphIDs(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if dryRun {
		return &BulkResult{DryRun: true, Count: len(ids), Entities: ids}, nil
	}
	if err := validate.BulkDeleteCount(len(ids), force); err != nil {
		return nil, err
	}

	if _, err := d.Client.Execute(ctx, `
		MATCH (n)-[:IS_TAGGED_WITH]->(:Tag {id: $tagId})
		DETACH DELETE n
	`, map[string]any{"tagId": tagID}); err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "deleting tagged entities")
	}
	return &BulkResult{DryRun: false, Count: len(ids), Entities: ids}, nil
}

// BulkDeleteByBranch matches every scoped entity and the Repository node for
// (repository, branch), and either reports or detach-deletes the set.
func BulkDeleteByBranch(ctx context.Context, d *Deps, scope model.Scope, dryRun, force bool) (*BulkResult, error) {
	if err := validate.RequireScope(scope); err != nil {
		return nil, err
	}
	rows, err := d.Client.Execute(ctx, `
		MATCH (n)
		WHERE (n.repository = $repository OR (n:Repository AND n.name = $repository)) AND n.branch = $branch
		RETURN coalesce(n.graph_unique_id, n.id) AS graph_unique_id
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "matching branch for bulk delete")
	}
	ids := graphIDsFromRows(rows)

	if dryRun {
		return &BulkResult{DryRun: true, Count: len(ids), Entities: ids}, nil
	}
	if err := validate.BulkDeleteCount(len(ids), force); err != nil {
		return nil, err
	}

	if _, err := d.Client.Execute(ctx, `
		MATCH (n)
		WHERE (n.repository = $repository OR (n:Repository AND n.name = $repository)) AND n.branch = $branch
		DETACH DELETE n
	`, map[string]any{"repository": scope.Repository, "branch": scope.Branch}); err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "deleting branch")
	}
	return &BulkResult{DryRun: false, Count: len(ids), Entities: ids}, nil
}

// BulkDeleteByRepository matches every entity and Repository node across
// every branch of the named repository, and either reports or
// detach-deletes the set. Tag nodes are never matched here even if left
// unreferenced afterward.
func BulkDeleteByRepository(ctx context.Context, d *Deps, repository string, dryRun, force bool) (*BulkResult, error) {
	if err := validate.NonEmpty("repository", repository); err != nil {
		return nil, err
	}
	rows, err := d.Client.Execute(ctx, `
		MATCH (n)
		WHERE (n.repository = $repository OR (n:Repository AND n.name = $repository)) AND NOT n:Tag
		RETURN coalesce(n.graph_unique_id, n.id) AS graph_unique_id
	`, map[string]any{"repository": repository})
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "matching repository for bulk delete")
	}
	ids := graphIDsFromRows(rows)

	if dryRun {
		return &BulkResult{DryRun: true, Count: len(ids), Entities: ids}, nil
	}
	if err := validate.BulkDeleteCount(len(ids), force); err != nil {
		return nil, err
	}

	if _, err := d.Client.Execute(ctx, `
		MATCH (n)
		WHERE (n.repository = $repository OR (n:Repository AND n.name = $repository)) AND NOT n:Tag
		DETACH DELETE n
	`, map[string]any{"repository": repository}); err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "deleting repository")
	}
	return &BulkResult{DryRun: false, Count: len(ids), Entities: ids}, nil
}

func graphIDsFromRows(rows []store.Record) []string {
	ids := make([]string, 0, len(rows))
	for _, rec := range rows {
		ids = append(ids, store.ScalarString(rec["graph_unique_id"]))
	}
	return ids
}
