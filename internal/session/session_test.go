package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/memerr"
)

func TestWithID_IDFrom(t *testing.T) {
	ctx := WithID(context.Background(), "sess-1")
	assert.Equal(t, "sess-1", IDFrom(ctx))
	assert.Equal(t, "", IDFrom(context.Background()))
}

func TestManager_BindAndRequire(t *testing.T) {
	m := NewManager()
	_, err := m.Require("missing")
	require.Error(t, err)
	assert.Equal(t, memerr.SessionUnbound, memerr.KindOf(err))

	sess := m.Bind("s1", "/proj", "repo", "")
	assert.Equal(t, "main", sess.Branch, "empty branch defaults to main")

	got, err := m.Require("s1")
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, "repo", got.Scope().Repository)
	assert.Equal(t, "main", got.Scope().Branch)
}

func TestManager_Rebind(t *testing.T) {
	m := NewManager()
	m.Bind("s1", "/proj", "repo", "main")
	rebound := m.Bind("s1", "/proj2", "repo2", "dev")

	got := m.Get("s1")
	assert.Same(t, rebound, got)
	assert.Equal(t, "/proj2", got.ProjectRoot)
	assert.Equal(t, "dev", got.Branch)
}

func TestManager_Release(t *testing.T) {
	m := NewManager()
	m.Bind("s1", "/proj", "repo", "main")
	m.Release("s1")
	assert.Nil(t, m.Get("s1"))
}

func TestNewID_Unique(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}
