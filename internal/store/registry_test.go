package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/memerr"
)

func TestDatabaseNameFor_DeterministicAndEngineLegal(t *testing.T) {
	name := databaseNameFor("/home/dev/project-a")
	again := databaseNameFor("/home/dev/project-a")
	assert.Equal(t, name, again)
	assert.True(t, len(name) > 2 && name[:2] == "mb")
	for _, r := range name {
		isLegal := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		assert.True(t, isLegal, "database name %q must only contain lowercase alphanumerics", name)
	}
}

// TestRegistry_GetClient_ConcurrentCallsShareOneOutcome exercises the
// at-most-once initialization guarantee (spec §4.2): every concurrent
// caller for the same project root observes the same failure rather than
// each independently dialing a connection. There is no live engine in this
// test environment, so the shared outcome is a connection error, not a
// successful client.
func TestRegistry_GetClient_ConcurrentCallsShareOneOutcome(t *testing.T) {
	registry := NewRegistry(Config{URI: "bolt://127.0.0.1:1", Username: "x", Password: "x", DBFilename: "memory-bank"})
	root := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	const callers = 5
	errs := make([]error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = registry.GetClient(ctx, root)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.Errorf(t, err, "caller %d expected a dial error", i)
		assert.Equal(t, memerr.IoErr, memerr.KindOf(err))
	}
}

func TestRegistry_Shutdown_NoClientsIsNoop(t *testing.T) {
	registry := NewRegistry(Config{URI: "bolt://127.0.0.1:1", Username: "x", Password: "x", DBFilename: "memory-bank"})
	assert.NoError(t, registry.Shutdown(context.Background()))
}
