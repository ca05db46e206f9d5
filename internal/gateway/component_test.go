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

func TestComponentGateway_Upsert_Success(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := nowFn
	nowFn = func() time.Time { return fixed }
	defer func() { nowFn = orig }()

	q := new(storetest.MockQuerier)
	scope := model.Scope{Repository: "repo", Branch: "main"}

	q.On("Execute", context.Background(), stringContains("MERGE (c:Component"), anyParams()).
		Return([]store.Record{
			{
				"graph_unique_id": "repo:main:comp-auth", "id": "comp-auth",
				"repository": "repo", "branch": "main", "name": "Auth",
				"kind": "service", "status": model.ComponentActive,
				"depends_on": []any{}, "created_at": fixed, "updated_at": fixed,
			},
		}, nil)
	q.On("Execute", context.Background(), stringContains("a.depends_on"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewComponentGateway(q)
	got, err := g.Upsert(context.Background(), scope, &model.Component{
		ID: "comp-auth", Name: "Auth", Kind: "service", Status: model.ComponentActive,
	})

	require.NoError(t, err)
	assert.Equal(t, "comp-auth", got.ID)
	assert.Equal(t, "Auth", got.Name)
	q.AssertExpectations(t)
}

func TestComponentGateway_Upsert_RepositoryMissing(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MERGE (c:Component"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewComponentGateway(q)
	_, err := g.Upsert(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, &model.Component{ID: "comp-auth"})

	require.Error(t, err)
	assert.Equal(t, memerr.NotFound, memerr.KindOf(err))
}

func TestComponentGateway_Upsert_ResolvesDanglingDependents(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := nowFn
	nowFn = func() time.Time { return fixed }
	defer func() { nowFn = orig }()

	q := new(storetest.MockQuerier)
	scope := model.Scope{Repository: "repo", Branch: "main"}

	q.On("Execute", context.Background(), stringContains("MERGE (c:Component"), anyParams()).
		Return([]store.Record{
			{
				"graph_unique_id": "repo:main:comp-billing", "id": "comp-billing",
				"repository": "repo", "branch": "main", "name": "Billing",
				"kind": "service", "status": model.ComponentActive,
				"depends_on": []any{}, "created_at": fixed, "updated_at": fixed,
			},
		}, nil)
	q.On("Execute", context.Background(), stringContains("a.depends_on"), mock.MatchedBy(func(params map[string]any) bool {
		return params["gid"] == "repo:main:comp-billing" && params["id"] == "comp-billing"
	})).
		Return([]store.Record{{"linked": 1}}, nil)

	g := NewComponentGateway(q)
	_, err := g.Upsert(context.Background(), scope, &model.Component{
		ID: "comp-billing", Name: "Billing", Kind: "service", Status: model.ComponentActive,
	})

	require.NoError(t, err)
	q.AssertExpectations(t)
}

func TestComponentGateway_FindByGraphID_NotFound(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MATCH (c:Component)"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewComponentGateway(q)
	got, err := g.FindByGraphID(context.Background(), "repo:main:comp-missing")

	require.NoError(t, err)
	assert.Nil(t, got)
}
