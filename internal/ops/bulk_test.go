package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
	"github.com/memorybank/memorybank/internal/store"
	"github.com/memorybank/memorybank/internal/storetest"
)

func manyGraphIDRows(n int) []store.Record {
	rows := make([]store.Record, n)
	for i := range rows {
		rows[i] = store.Record{"graph_unique_id": "repo:main:comp-x"}
	}
	return rows
}

func TestBulkDeleteByType_DryRunDoesNotDelete(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(manyGraphIDRows(3), nil).Once()

	d := NewDeps(q, nil)
	result, err := BulkDeleteByType(context.Background(), d, model.Scope{Repository: "repo", Branch: "main"}, "component", true, false)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 3, result.Count)
	q.AssertNumberOfCalls(t, "Execute", 1)
}

func TestBulkDeleteByType_OverThresholdWithoutForceFails(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(manyGraphIDRows(11), nil).Once()

	d := NewDeps(q, nil)
	_, err := BulkDeleteByType(context.Background(), d, model.Scope{Repository: "repo", Branch: "main"}, "component", false, false)
	require.Error(t, err)
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
	q.AssertNumberOfCalls(t, "Execute", 1) // delete statement never runs
}

func TestBulkDeleteByType_ForceBypassesThreshold(t *testing.T) {
	q := new(storetest.MockQuerier)
	q.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(manyGraphIDRows(11), nil)

	d := NewDeps(q, nil)
	result, err := BulkDeleteByType(context.Background(), d, model.Scope{Repository: "repo", Branch: "main"}, "component", false, true)
	require.NoError(t, err)
	assert.False(t, result.DryRun)
	assert.Equal(t, 11, result.Count)
	q.AssertNumberOfCalls(t, "Execute", 2) // match + delete
}

func TestBulkDeleteByType_UnknownEntityType(t *testing.T) {
	q := new(storetest.MockQuerier)
	d := NewDeps(q, nil)
	_, err := BulkDeleteByType(context.Background(), d, model.Scope{Repository: "repo", Branch: "main"}, "bogus", true, false)
	require.Error(t, err)
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
	q.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}

func TestBulkDeleteByRepository_RequiresName(t *testing.T) {
	q := new(storetest.MockQuerier)
	d := NewDeps(q, nil)
	_, err := BulkDeleteByRepository(context.Background(), d, "", true, false)
	require.Error(t, err)
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
}
