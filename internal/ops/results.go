// Package ops implements the Operations Layer: stateless functions keyed by
// tool name, covering entity upserts, associations, queries, analytics,
// introspection, and bulk deletes. Every operation takes a *Deps bundling
// the gateways and Store Client for the caller's project root, plus a
// progress.Sink for long-running calls, and returns one of the typed result
// categories below rather than an untyped envelope.
package ops

import (
	"github.com/memorybank/memorybank/internal/model"
)

// EntityResult wraps a single upserted or fetched entity.
type EntityResult struct {
	Entity any `json:"entity"`
}

// ListResult wraps an ordered collection of entities or ids.
type ListResult struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// AssociationResult reports whether an association call created (or found
// already-present) the requested edge.
type AssociationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AnalyticsResult wraps the output of a graph algorithm, keyed by the
// algorithm's own result shape.
type AnalyticsResult struct {
	Algorithm string `json:"algorithm"`
	Data      any    `json:"data"`
}

// BulkResult reports a bulk delete's outcome: whether it was a dry run and
// the entities matched (dry run) or deleted. No bulk operation in this
// package sets Warnings.
type BulkResult struct {
	DryRun   bool     `json:"dryRun"`
	Count    int      `json:"count"`
	Entities []string `json:"entities"`
	Warnings []string `json:"warnings,omitempty"`
}

// GoverningItems bundles the decisions, rules, and context history that
// govern a Component, per get_governing_items_for_component.
type GoverningItems struct {
	Decisions      []*model.Decision `json:"decisions"`
	Rules          []*model.Rule     `json:"rules"`
	ContextHistory []*model.Context  `json:"contextHistory"`
}
