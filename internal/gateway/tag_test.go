package gateway

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

func TestTagGateway_Ensure_Success(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MERGE (t:Tag"), mock.MatchedBy(func(params map[string]any) bool {
		return params["id"] == "tag-security"
	})).
		Return([]store.Record{
			{"id": "tag-security", "name": "security", "color": "red", "description": "security-relevant", "created_at": fixed},
		}, nil)

	g := NewTagGateway(q)
	got, err := g.Ensure(context.Background(), &model.Tag{ID: "tag-security", Name: "security", Color: "red", Description: "security-relevant"})

	require.NoError(t, err)
	assert.Equal(t, "tag-security", got.ID)
	assert.Equal(t, "security", got.Name)
}

func TestTagGateway_AttachTo_EntityOrTagNotFound(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("IS_TAGGED_WITH"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewTagGateway(q)
	err := g.AttachTo(context.Background(), "repo:main:comp-missing", "tag-security")

	require.Error(t, err)
	assert.Equal(t, memerr.NotFound, memerr.KindOf(err))
}

func TestTagGateway_DetachFrom_NotFound(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("DELETE r"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewTagGateway(q)
	found, err := g.DetachFrom(context.Background(), "repo:main:comp-auth", "tag-security")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestTagGateway_TagsFor_OrderedByName(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("ORDER BY t.name ASC"), anyParams()).
		Return([]store.Record{
			{"name": "auth"},
			{"name": "security"},
		}, nil)

	g := NewTagGateway(q)
	got, err := g.TagsFor(context.Background(), "repo:main:comp-auth")

	require.NoError(t, err)
	assert.Equal(t, []string{"auth", "security"}, got)
}

func TestTagGateway_FindTaggedGraphIDs(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("IS_TAGGED_WITH"), anyParams()).
		Return([]store.Record{
			{"graph_unique_id": "repo:main:comp-auth"},
			{"graph_unique_id": "repo:main:comp-billing"},
		}, nil)

	g := NewTagGateway(q)
	got, err := g.FindTaggedGraphIDs(context.Background(), "tag-security")

	require.NoError(t, err)
	assert.Equal(t, []string{"repo:main:comp-auth", "repo:main:comp-billing"}, got)
}
