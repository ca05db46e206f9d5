package ops

import (
	"time"

	"github.com/memorybank/memorybank/internal/store"
)

func asTime(rec store.Record, key string) time.Time {
	switch v := rec[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

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
