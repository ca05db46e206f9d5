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

func TestMetadataGateway_Upsert_Success(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MERGE (m:Metadata"), anyParams()).
		Return([]store.Record{
			{
				"graph_unique_id": "repo:main:meta-project-config", "id": "project-config",
				"name": "project-config", "content": `{"version":"1.0"}`,
				"created_at": fixed, "updated_at": fixed,
			},
		}, nil)

	g := NewMetadataGateway(q)
	got, err := g.Upsert(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, &model.Metadata{
		ID: "project-config", Name: "project-config", Content: `{"version":"1.0"}`,
	})

	require.NoError(t, err)
	assert.Equal(t, "project-config", got.ID)
	assert.Equal(t, `{"version":"1.0"}`, got.Content)
}

func TestMetadataGateway_Upsert_RepositoryMissing(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MERGE (m:Metadata"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewMetadataGateway(q)
	_, err := g.Upsert(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, &model.Metadata{ID: "project-config"})

	require.Error(t, err)
	assert.Equal(t, memerr.NotFound, memerr.KindOf(err))
}

func TestMetadataGateway_FindByID_NotFound(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MATCH (m:Metadata"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewMetadataGateway(q)
	got, err := g.FindByID(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, "missing")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMetadataGateway_Delete_Found(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("DETACH DELETE"), anyParams()).
		Return([]store.Record{{"found": 1}}, nil)

	g := NewMetadataGateway(q)
	found, err := g.Delete(context.Background(), "repo:main:meta-project-config")

	require.NoError(t, err)
	assert.True(t, found)
}
