package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/memorybank/memorybank/internal/memerr"
	"github.com/memorybank/memorybank/internal/model"
)

func TestID(t *testing.T) {
	assert.NoError(t, ID("comp-auth", "comp-", "component"))
	assert.Error(t, ID("", "comp-", "component"))

	err := ID("dec-x", "comp-", "component")
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
}

func TestEnum(t *testing.T) {
	assert.NoError(t, Enum("status", "active", "active", "deprecated"))
	err := Enum("status", "bogus", "active", "deprecated")
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
}

func TestDecisionTransition(t *testing.T) {
	cases := []struct {
		from, to string
		wantErr  bool
	}{
		{model.DecisionProposed, model.DecisionApproved, false},
		{model.DecisionApproved, model.DecisionImplemented, false},
		{model.DecisionApproved, model.DecisionFailed, false},
		{model.DecisionProposed, model.DecisionImplemented, true},
		{model.DecisionImplemented, model.DecisionProposed, true},
		{model.DecisionApproved, model.DecisionApproved, false},
	}
	for _, c := range cases {
		err := DecisionTransition(c.from, c.to)
		if c.wantErr {
			assert.Errorf(t, err, "%s -> %s should be rejected", c.from, c.to)
		} else {
			assert.NoErrorf(t, err, "%s -> %s should be allowed", c.from, c.to)
		}
	}
}

func TestBulkDeleteCount(t *testing.T) {
	assert.NoError(t, BulkDeleteCount(5, false))
	assert.NoError(t, BulkDeleteCount(11, true))
	err := BulkDeleteCount(11, false)
	assert.Equal(t, memerr.InvalidArgument, memerr.KindOf(err))
}

func TestRequireScope(t *testing.T) {
	assert.NoError(t, RequireScope(model.Scope{Repository: "r", Branch: "b"}))
	assert.Error(t, RequireScope(model.Scope{Branch: "b"}))
	assert.Error(t, RequireScope(model.Scope{Repository: "r"}))
}
