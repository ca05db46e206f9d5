package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/store"
	"github.com/memorybank/memorybank/internal/storetest"
)

func TestRepositoryGateway_Ensure_Success(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MERGE (r:Repository"), anyParams()).
		Return([]store.Record{
			{"id": "repo:main", "name": "repo", "branch": "main", "created_at": fixed, "updated_at": fixed},
		}, nil)

	g := NewRepositoryGateway(q)
	got, err := g.Ensure(context.Background(), "repo", "main")

	require.NoError(t, err)
	assert.Equal(t, "repo:main", got.ID)
	assert.Equal(t, "repo", got.Name)
}

func TestRepositoryGateway_Ensure_NoRowIsInternalError(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MERGE (r:Repository"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewRepositoryGateway(q)
	_, err := g.Ensure(context.Background(), "repo", "main")

	require.Error(t, err)
	assert.Equal(t, memerr.Internal, memerr.KindOf(err))
}

func TestRepositoryGateway_FindByID_NotFound(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MATCH (r:Repository"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewRepositoryGateway(q)
	got, err := g.FindByID(context.Background(), "repo", "main")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositoryGateway_ListBranches_Ordered(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("ORDER BY r.branch"), anyParams()).
		Return([]store.Record{
			{"branch": "dev"},
			{"branch": "main"},
		}, nil)

	g := NewRepositoryGateway(q)
	got, err := g.ListBranches(context.Background(), "repo")

	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "main"}, got)
}
