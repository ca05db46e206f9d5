package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
	"github.com/memorybank/memorybank/internal/storetest"
)

func TestDecisionGateway_FindByID_DelegatesToGraphID(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("d.graph_unique_id = $gid"), mock.MatchedBy(func(p map[string]any) bool {
		return p["gid"] == "repo:main:dec-x"
	})).Return([]store.Record{
		{"graph_unique_id": "repo:main:dec-x", "id": "dec-x", "status": model.DecisionProposed, "date": fixed, "created_at": fixed, "updated_at": fixed},
	}, nil)

	g := NewDecisionGateway(q)
	got, err := g.FindByID(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, "dec-x")

	require.NoError(t, err)
	assert.Equal(t, "dec-x", got.ID)
	assert.Equal(t, model.DecisionProposed, got.Status)
}

func TestDecisionGateway_FindGoverning_OrdersByDateDescending(t *testing.T) {
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("DECISION_ON"), anyParams()).
		Return([]store.Record{
			{"graph_unique_id": "repo:main:dec-2", "id": "dec-2", "date": newer, "created_at": newer, "updated_at": newer},
			{"graph_unique_id": "repo:main:dec-1", "id": "dec-1", "date": older, "created_at": older, "updated_at": older},
		}, nil)

	g := NewDecisionGateway(q)
	got, err := g.FindGoverning(context.Background(), "repo:main:comp-auth")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dec-2", got[0].ID)
}

func TestDecisionGateway_LinkToComponent_WrapsEngineError(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("DECISION_ON"), anyParams()).
		Return([]store.Record(nil), assert.AnError)

	g := NewDecisionGateway(q)
	err := g.LinkToComponent(context.Background(), "repo:main:dec-x", "repo:main:comp-auth")

	require.Error(t, err)
}

func TestDecisionGateway_Delete_Found(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("DETACH DELETE"), anyParams()).
		Return([]store.Record{{"found": 1}}, nil)

	g := NewDecisionGateway(q)
	found, err := g.Delete(context.Background(), "repo:main:dec-x")

	require.NoError(t, err)
	assert.True(t, found)
}
