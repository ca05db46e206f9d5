package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
)

// keyAttribute is the primary-key property indexed for each label. Tag and
// Repository key on `id`; every other scoped label keys on `graph_unique_id`.
var keyAttribute = map[string]string{
	model.LabelRepository: "id",
	model.LabelMetadata:   "graph_unique_id",
	model.LabelContext:    "graph_unique_id",
	model.LabelComponent:  "graph_unique_id",
	model.LabelDecision:   "graph_unique_id",
	model.LabelRule:       "graph_unique_id",
	model.LabelFile:       "graph_unique_id",
	model.LabelTag:        "id",
}

// InstallSchema creates every node label's primary-key uniqueness
// constraint (which also installs the backing index) if it does not
// already exist. It is idempotent: running it against an already-migrated
// database is a no-op. Relationship types require no separate DDL in a
// schema-optional property graph — they come into existence the first time
// an edge of that type is created.
func InstallSchema(ctx context.Context, c *Client) error {
	_, err := c.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, label := range model.AllLabels {
			key := keyAttribute[label]
			constraintName := fmt.Sprintf("%s_%s_key", label, key)
			query := fmt.Sprintf(
				"CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
				constraintName, label, key,
			)
			if _, err := tx.Run(ctx, query, nil); err != nil {
				return nil, fmt.Errorf("installing constraint for %s: %w", label, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return memerr.Wrap(memerr.EngineErr, err, "installing schema")
	}
	return nil
}
