package gateway

import (
	"strings"

	"github.com/stretchr/testify/mock"
)

// stringContains matches a query argument containing substr, so tests
// don't need to pin the exact Cypher text.
func stringContains(substr string) any {
	return mock.MatchedBy(func(q string) bool { return strings.Contains(q, substr) })
}

// anyParams matches any parameter map.
func anyParams() any {
	return mock.MatchedBy(func(map[string]any) bool { return true })
}
