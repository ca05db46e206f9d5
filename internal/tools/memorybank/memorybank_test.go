package memorybank

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/facade"
	"github.com/memorybank/memorybank/internal/mcp"
	"github.com/memorybank/memorybank/internal/store"
)

// newUnboundService builds a Service with a registry that is never actually
// dialed in these tests: every handler here exercises a path that fails
// before any engine connection is attempted (malformed params, or no bound
// session), so the connection settings are never used for real.
func newUnboundService() *facade.Service {
	return facade.New(store.Config{URI: "bolt://unused:7687", Username: "x", Password: "x", DBFilename: "unused.db"})
}

func TestComponent_BadParams(t *testing.T) {
	tool := NewComponent(newUnboundService())
	result, err := tool.Execute(context.Background(), json.RawMessage(`{"id": 123}`)) // id must be a string
	require.NoError(t, err, "handlers convert errors into the result envelope, not a Go error")
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "invalid parameters")
}

func TestComponent_SessionUnbound(t *testing.T) {
	tool := NewComponent(newUnboundService())
	result, err := tool.Execute(context.Background(), json.RawMessage(`{"id": "comp-auth", "name": "Auth"}`))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "init-memory-bank")
}

func TestInitMemoryBank_MissingProjectRoot(t *testing.T) {
	tool := NewInitMemoryBank(newUnboundService())
	result, err := tool.Execute(context.Background(), json.RawMessage(`{"repository": "repo"}`))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "projectRoot")
}

func TestGetRelatedItems_SessionUnbound(t *testing.T) {
	tool := NewGetRelatedItems(newUnboundService())
	result, err := tool.Execute(context.Background(), json.RawMessage(`{"id": "repo:main:comp-auth", "depth": 0}`))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "init-memory-bank")
}

func TestBulkDeleteByType_BadParams(t *testing.T) {
	tool := NewBulkDeleteByType(newUnboundService())
	result, err := tool.Execute(context.Background(), json.RawMessage(`not json`))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "invalid parameters")
}

// Every registered handler must expose a non-empty name, description, and
// a schema that at least parses as JSON.
func TestAllTools_ExposeWellFormedMetadata(t *testing.T) {
	registry := mcp.NewRegistry()
	Register(registry, newUnboundService())

	defs := registry.List()
	assert.NotEmpty(t, defs)
	for _, def := range defs {
		assert.NotEmpty(t, def.Name)
		assert.NotEmpty(t, def.Description)
		var schema map[string]any
		assert.NoError(t, json.Unmarshal(def.InputSchema, &schema), "schema for %s must be valid JSON", def.Name)
	}
}
