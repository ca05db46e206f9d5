package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
	"github.com/memorybank/memorybank/internal/storetest"
)

func TestRuleGateway_Upsert_Success(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("MERGE (x:Rule"), anyParams()).
		Return([]store.Record{
			{
				"graph_unique_id": "repo:main:rule-no-secrets", "id": "rule-no-secrets",
				"name": "No secrets in logs", "content": "never log credential fields",
				"triggers": []any{"logging"}, "status": "active",
				"created": fixed, "created_at": fixed, "updated_at": fixed,
			},
		}, nil)

	g := NewRuleGateway(q)
	got, err := g.Upsert(context.Background(), model.Scope{Repository: "repo", Branch: "main"}, &model.Rule{
		ID: "rule-no-secrets", Name: "No secrets in logs", Content: "never log credential fields",
		Triggers: []string{"logging"}, Status: "active",
	})

	require.NoError(t, err)
	assert.Equal(t, "rule-no-secrets", got.ID)
	assert.Equal(t, []string{"logging"}, got.Triggers)
}

func TestRuleGateway_FindActive_FiltersByStatus(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("x.status = 'active'"), anyParams()).
		Return([]store.Record{
			{
				"graph_unique_id": "repo:main:rule-a", "id": "rule-a", "status": "active",
				"triggers": []any{}, "created": fixed, "created_at": fixed, "updated_at": fixed,
			},
		}, nil)

	g := NewRuleGateway(q)
	got, err := g.FindActive(context.Background(), model.Scope{Repository: "repo", Branch: "main"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rule-a", got[0].ID)
}

func TestRuleGateway_Delete_NotFound(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", context.Background(), stringContains("DETACH DELETE"), anyParams()).
		Return([]store.Record(nil), nil)

	g := NewRuleGateway(q)
	found, err := g.Delete(context.Background(), "repo:main:rule-missing")

	require.NoError(t, err)
	assert.False(t, found)
}
