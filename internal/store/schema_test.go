package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/memorybank/memorybank/internal/model"
)

func TestKeyAttribute_CoversEveryLabel(t *testing.T) {
	for _, label := range model.AllLabels {
		key, ok := keyAttribute[label]
		assert.True(t, ok, "label %q has no key attribute mapping", label)
		assert.NotEmpty(t, key)
	}
}

func TestKeyAttribute_RepositoryAndTagKeyOnID(t *testing.T) {
	assert.Equal(t, "id", keyAttribute[model.LabelRepository])
	assert.Equal(t, "id", keyAttribute[model.LabelTag])
}

func TestKeyAttribute_ScopedLabelsKeyOnGraphUniqueID(t *testing.T) {
	for _, label := range []string{model.LabelMetadata, model.LabelContext, model.LabelComponent, model.LabelDecision, model.LabelRule, model.LabelFile} {
		assert.Equal(t, "graph_unique_id", keyAttribute[label])
	}
}
