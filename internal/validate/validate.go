// Package validate holds the InvalidArgument/Conflict-producing checks
// shared by the operations layer: ID prefix enforcement, enum membership,
// the Decision state machine, and the bulk-delete confirmation threshold.
package validate

import (
	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
)

// BulkDeleteConfirmThreshold is the entity count above which a bulk delete
// requires force=true.
const BulkDeleteConfirmThreshold = 10

// ID checks that id carries the expected prefix for its entity type (e.g.
// "comp-" for a Component), per the prefix table in the error-handling
// design.
func ID(id, prefix, entityType string) error {
	if id == "" {
		return memerr.Newf(memerr.InvalidArgument, "%s id must not be empty", entityType)
	}
	if len(id) <= len(prefix) || id[:len(prefix)] != prefix {
		return memerr.Newf(memerr.InvalidArgument, "%s id %q must start with %q", entityType, id, prefix)
	}
	return nil
}

// Enum checks that value is one of allowed, returning InvalidArgument
// otherwise.
func Enum(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return memerr.Newf(memerr.InvalidArgument, "%s must be one of %v, got %q", field, allowed, value)
}

// NonEmpty checks that a required string field was supplied.
func NonEmpty(field, value string) error {
	if value == "" {
		return memerr.Newf(memerr.InvalidArgument, "%s is required", field)
	}
	return nil
}

// DecisionTransition checks that moving a Decision from `from` to `to`
// follows the proposed -> approved -> {implemented | failed} state
// machine.
func DecisionTransition(from, to string) error {
	if from == to {
		return nil
	}
	allowed, ok := model.AllowedDecisionTransitions[from]
	if !ok {
		return memerr.Newf(memerr.Conflict, "unknown decision status %q", from)
	}
	for _, a := range allowed {
		if a == to {
			return nil
		}
	}
	return memerr.Newf(memerr.Conflict, "cannot transition decision from %q to %q", from, to)
}

// SameScope checks that two entities' (repository, branch) pairs agree,
// rejecting the cross-branch/cross-repository edges invariant 3 forbids.
func SameScope(a, b model.Scope) error {
	if a.Repository != b.Repository || a.Branch != b.Branch {
		return memerr.Newf(memerr.Conflict, "cross-scope edge rejected: %s/%s vs %s/%s", a.Repository, a.Branch, b.Repository, b.Branch)
	}
	return nil
}

// BulkDeleteCount checks a prospective bulk-delete entity count against the
// confirmation threshold, returning an error unless force was given or the
// count is small enough not to need it.
func BulkDeleteCount(count int, force bool) error {
	if count > BulkDeleteConfirmThreshold && !force {
		return memerr.Newf(memerr.InvalidArgument,
			"bulk delete would affect %d entities, which exceeds the confirmation threshold of %d; pass force=true to proceed",
			count, BulkDeleteConfirmThreshold)
	}
	return nil
}

// RequireScope checks that both repository and branch are non-empty,
// producing a single InvalidArgument naming whichever is missing first.
func RequireScope(scope model.Scope) error {
	if scope.Repository == "" {
		return memerr.New(memerr.InvalidArgument, "repository is required")
	}
	if scope.Branch == "" {
		return memerr.New(memerr.InvalidArgument, "branch is required")
	}
	return nil
}
