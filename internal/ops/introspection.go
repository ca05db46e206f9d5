package ops

import (
	"context"
	"sort"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
)

// Labels returns every node label present in the database, which for an
// initialized Store Client is exactly model.AllLabels but is read live from
// the engine's catalog rather than assumed, so a partially-installed schema
// is still reported accurately.
func Labels(ctx context.Context, d *Deps) (*ListResult, error) {
	rows, err := d.Client.Execute(ctx, `CALL db.labels() YIELD label RETURN label`, nil)
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "listing labels")
	}
	labels := make([]string, 0, len(rows))
	for _, rec := range rows {
		labels = append(labels, store.ScalarString(rec["label"]))
	}
	sort.Strings(labels)
	return &ListResult{Items: labels, Count: len(labels)}, nil
}

// Count returns the number of nodes carrying the given label. An empty
// label counts every node in the database.
func Count(ctx context.Context, d *Deps, label string) (int64, error) {
	query := `MATCH (n) RETURN count(n) AS total`
	if label != "" {
		query = `MATCH (n:` + label + `) RETURN count(n) AS total`
	}
	rows, err := d.Client.Execute(ctx, query, nil)
	if err != nil {
		return 0, memerr.Wrap(memerr.EngineErr, err, "counting nodes")
	}
	if len(rows) == 0 {
		return 0, nil
	}
	switch v := rows[0]["total"].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, nil
	}
}

// Properties returns the distinct property keys observed on nodes carrying
// the given label, across the whole database (not scoped to one
// repository/branch, since the schema is shared).
func Properties(ctx context.Context, d *Deps, label string) (*ListResult, error) {
	if err := validateKnownLabel(label); err != nil {
		return nil, err
	}
	rows, err := d.Client.Execute(ctx, `
		MATCH (n:`+label+`)
		UNWIND keys(n) AS key
		RETURN DISTINCT key
		ORDER BY key ASC
	`, nil)
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "listing properties")
	}
	keys := make([]string, 0, len(rows))
	for _, rec := range rows {
		keys = append(keys, store.ScalarString(rec["key"]))
	}
	return &ListResult{Items: keys, Count: len(keys)}, nil
}

// IndexInfo describes one index or constraint installed by the Schema
// Installer.
type IndexInfo struct {
	Name       string   `json:"name"`
	Labels     []string `json:"labels"`
	Properties []string `json:"properties"`
	Type       string   `json:"type"`
}

// Indexes returns every index the Schema Installer created, read live from
// the engine's catalog.
func Indexes(ctx context.Context, d *Deps) (*ListResult, error) {
	rows, err := d.Client.Execute(ctx, `SHOW INDEXES YIELD name, labelsOrTypes, properties, type RETURN name, labelsOrTypes, properties, type`, nil)
	if err != nil {
		return nil, memerr.Wrap(memerr.EngineErr, err, "listing indexes")
	}
	out := make([]IndexInfo, 0, len(rows))
	for _, rec := range rows {
		out = append(out, IndexInfo{
			Name:       store.ScalarString(rec["name"]),
			Labels:     asStringSlice(rec, "labelsOrTypes"),
			Properties: asStringSlice(rec, "properties"),
			Type:       store.ScalarString(rec["type"]),
		})
	}
	return &ListResult{Items: out, Count: len(out)}, nil
}

func validateKnownLabel(label string) error {
	for _, l := range model.AllLabels {
		if l == label {
			return nil
		}
	}
	return memerr.Newf(memerr.InvalidArgument, "unknown label %q", label)
}
