// Package gateway implements the Repository Gateways: per-entity-type
// accessors that translate domain objects in internal/model to and from
// graph records, via parameterized queries run through a store.Querier.
package gateway

import (
	"time"

	"github.com/memorybank/memorybank/internal/store"
)

// asString reads a string column, tolerating nil.
func asString(rec store.Record, key string) string {
	v, _ := rec[key].(string)
	return v
}

// asTime reads a temporal column. The Neo4j driver surfaces Cypher
// `datetime()` values as time.Time already; dates stored as strings are
// parsed as RFC3339.
func asTime(rec store.Record, key string) time.Time {
	switch v := rec[key].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}

// asStringSlice reads a list-of-strings column.
func asStringSlice(rec store.Record, key string) []string {
	raw, ok := rec[key].([]any)
	if !ok {
		if ss, ok := rec[key].([]string); ok {
			return ss
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// asInt64 reads an integer column.
func asInt64(rec store.Record, key string) int64 {
	switch v := rec[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// timeParam formats a time.Time for use as a Cypher parameter; the driver
// maps time.Time parameters to its native temporal type directly.
func timeParam(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
