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

func TestFileGateway_FindByPath_Found(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("x.path = $path"), anyParams()).
		Return([]store.Record{
			{
				"graph_unique_id": "repo:main:file-1", "id": "file-1", "path": "internal/store/client.go",
				"size_bytes": int64(2048), "created_at": fixed, "updated_at": fixed,
			},
		}, nil)

	g := NewFileGateway(q)
	got, err := g.FindByPath(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, "internal/store/client.go")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "file-1", got.ID)
	assert.Equal(t, int64(2048), got.SizeBytes)
}

func TestFileGateway_FindByPath_NotFound(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("x.path = $path"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewFileGateway(q)
	got, err := g.FindByPath(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, "missing.go")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileGateway_AssociateWithComponent_NotFound(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("CONTAINS_FILE"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewFileGateway(q)
	err := g.AssociateWithComponent(context.Background(), "repo:main:comp-auth", "repo:main:file-missing")

	require.Error(t, err)
	assert.Equal(t, memerr.NotFound, memerr.KindOf(err))
}

func TestFileGateway_ContainedIn_ReturnsComponents(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("CONTAINS_FILE"), anyParams()).
		Return([]store.Record{
			{
				"graph_unique_id": "repo:main:comp-auth", "id": "comp-auth", "name": "Auth",
				"depends_on": []any{}, "created_at": fixed, "updated_at": fixed,
			},
		}, nil)

	g := NewFileGateway(q)
	got, err := g.ContainedIn(context.Background(), "repo:main:file-1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "comp-auth", got[0].ID)
}
