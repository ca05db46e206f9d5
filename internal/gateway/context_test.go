package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
	"github.com/memorybank/memorybank/internal/storetest"
)

func TestContextGateway_Upsert_Success(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MERGE (x:Context"), anyParams()).
		Return([]store.Record{
			{
				"graph_unique_id": "repo:main:ctx-1", "id": "ctx-1",
				"repository": "repo", "branch": "main", "agent": "claude",
				"summary": "added caching", "observation": "latency dropped", "issue": "",
				"date": fixed, "created_at": fixed, "updated_at": fixed,
			},
		}, nil)

	g := NewContextGateway(q)
	got, err := g.Upsert(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, &model.Context{
		ID: "ctx-1", Agent: "claude", Summary: "added caching", Observation: "latency dropped",
	})

	require.NoError(t, err)
	assert.Equal(t, "ctx-1", got.ID)
	assert.Equal(t, "claude", got.Agent)
	q.AssertExpectations(t)
}

func TestContextGateway_Upsert_RepositoryMissing(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MERGE (x:Context"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewContextGateway(q)
	_, err := g.Upsert(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, &model.Context{ID: "ctx-1"})

	require.Error(t, err)
	assert.Equal(t, memerr.NotFound, memerr.KindOf(err))
}

func TestContextGateway_FindLinkedTo_OrdersByDateDescending(t *testing.T) {
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("CONTEXT_OF"), anyParams()).
		Return([]store.Record{
			{"graph_unique_id": "repo:main:ctx-2", "id": "ctx-2", "date": newer, "created_at": newer, "updated_at": newer},
			{"graph_unique_id": "repo:main:ctx-1", "id": "ctx-1", "date": older, "created_at": older, "updated_at": older},
		}, nil)

	g := NewContextGateway(q)
	got, err := g.FindLinkedTo(context.Background(), "repo:main:comp-auth")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ctx-2", got[0].ID)
}

func TestContextGateway_Delete_NotFound(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("DETACH DELETE"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewContextGateway(q)
	found, err := g.Delete(context.Background(), "repo:main:ctx-missing")

	require.NoError(t, err)
	assert.False(t, found)
}
