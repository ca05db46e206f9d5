package ops

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
	"github.com/memorybank/memorybank/internal/storetest"
)

// genericRow carries every column any single-entity gateway select in this
// package reads, so one fixture can stand in for whichever query a test
// exercises without pinning exact Cypher text.
func genericRow(id, status string, now time.Time) store.Record {
	return store.Record{
		"graph_unique_id": "repo:main:" + id,
		"id":              id,
		"repository":      "repo",
		"branch":          "main",
		"name":            "Example",
		"kind":            "service",
		"status":          status,
		"depends_on":      []any{},
		"context":         "because",
		"date":            now,
		"created_at":      now,
		"updated_at":      now,
	}
}

func TestUpsertComponent_RejectsBadPrefix(t *testing.T) {
	q := new(storetest.MockQuerier)
	d := NewDeps(q, nil)

	_, err := UpsertComponent(context.Background(), d, UpsertComponentArgs{
		Scope: model.Scope{Repository: "repo", Branch: "main"},
		ID:    "auth", Name: "Auth",
	})
	require.Error(t, err)
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
	q.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertComponent_RejectsMissingScope(t *testing.T) {
	q := new(storetest.MockQuerier)
	d := NewDeps(q, nil)

	_, err := UpsertComponent(context.Background(), d, UpsertComponentArgs{
		ID: "comp-auth", Name: "Auth",
	})
	require.Error(t, err)
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
}

func TestUpsertComponent_Success(t *testing.T) {
	q := new(storetest.MockQuerier)
	now := time.Now()
	q.On("Execute", mock.Anything, mock.Anything, mock.Anything).
		Return([]store.Record{genericRow("comp-auth", model.ComponentActive, now)}, nil)

	d := NewDeps(q, nil)
	result, err := UpsertComponent(context.Background(), d, UpsertComponentArgs{
		Scope: model.Scope{Repository: "repo", Branch: "main"},
		ID:    "comp-auth", Name: "Auth", Kind: "service",
	})
	require.NoError(t, err)
	comp, ok := result.Entity.(*model.Component)
	require.True(t, ok)
	assert.Equal(t, "comp-auth", comp.ID)
}

func TestUpsertDecision_RejectsInvalidTransition(t *testing.T) {
	q := new(storetest.MockQuerier)
	now := time.Now()
	// FindByID sees an existing decision already in a terminal state, so the
	// proposed default status can never be reached again.
	q.On("Execute", mock.Anything, mock.Anything, mock.Anything).
		Return([]store.Record{genericRow("dec-x", model.DecisionImplemented, now)}, nil)

	d := NewDeps(q, nil)
	_, err := UpsertDecision(context.Background(), d, UpsertDecisionArgs{
		Scope: model.Scope{Repository: "repo", Branch: "main"},
		ID:    "dec-x", Name: "Use Postgres", Status: model.DecisionProposed,
	})
	require.Error(t, err)
	assert.Equal(t, memerr.Conflict, memerr.KindOf(err))
}

func TestUpsertDecision_AllowsValidTransition(t *testing.T) {
	q := new(storetest.MockQuerier)
	now := time.Now()
	q.On("Execute", mock.Anything, mock.Anything, mock.Anything).
		Return([]store.Record{genericRow("dec-x", model.DecisionApproved, now)}, nil)

	d := NewDeps(q, nil)
	result, err := UpsertDecision(context.Background(), d, UpsertDecisionArgs{
		Scope: model.Scope{Repository: "repo", Branch: "main"},
		ID:    "dec-x", Name: "Use Postgres", Status: model.DecisionImplemented,
	})
	require.NoError(t, err)
	dec, ok := result.Entity.(*model.Decision)
	require.True(t, ok)
	assert.Equal(t, "dec-x", dec.ID)
}
