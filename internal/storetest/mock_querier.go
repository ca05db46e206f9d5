// Package storetest provides a testify mock satisfying store.Querier, so
// gateway and operation tests exercise query-building and row-mapping
// logic without a live graph engine.
package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/memorybank/memorybank/internal/store"
)

// MockQuerier is a testify mock of store.Querier.
type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) Execute(ctx context.Context, query string, params map[string]any) ([]store.Record, error) {
	args := m.Called(ctx, query, params)
	rows, _ := args.Get(0).([]store.Record)
	return rows, args.Error(1)
}
