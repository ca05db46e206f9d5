package facade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/store"
)

func unbound() *Service {
	return New(store.Config{URI: "bolt://unused:7687", Username: "x", Password: "x", DBFilename: "unused.db"})
}

func TestInitMemoryBank_RequiresProjectRoot(t *testing.T) {
	svc := unbound()
	_, err := svc.InitMemoryBank(context.Background(), "sess-1", "", "repo", "main")
	require.Error(t, err)
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
}

func TestInitMemoryBank_RequiresRepository(t *testing.T) {
	svc := unbound()
	_, err := svc.InitMemoryBank(context.Background(), "sess-1", "/proj", "", "main")
	require.Error(t, err)
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
}

func TestResolve_UnboundSessionFailsBeforeTouchingRegistry(t *testing.T) {
	svc := unbound()
	_, _, err := svc.Resolve(context.Background(), "never-bound", nil)
	require.Error(t, err)
	assert.Equal(t, memerr.SessionUnbound, memerr.KindOf(err))
}

func TestShutdown_NoClientsIsNoop(t *testing.T) {
	svc := unbound()
	assert.NoError(t, svc.Shutdown(context.Background()))
}
