package score

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToEpochMillis converts the timestamp encodings found on rating documents
// to epoch milliseconds. Legacy events carry bson datetimes, raw epoch
// numbers or {seconds, nanoseconds} maps from older clients. Unrecognized
// shapes convert to 0, which keeps them out of every trailing window.
func ToEpochMillis(v interface{}) int64 {
	switch ts := v.(type) {
	case nil:
		return 0
	case time.Time:
		return ts.UnixMilli()
	case *time.Time:
		if ts == nil {
			return 0
		}
		return ts.UnixMilli()
	case primitive.DateTime:
		return int64(ts)
	case primitive.Timestamp:
		return int64(ts.T) * 1000
	case int64:
		return ts
	case int:
		return int64(ts)
	case int32:
		return int64(ts)
	case float64:
		return int64(ts)
	case primitive.M:
		return secondsMapMillis(ts)
	case map[string]interface{}:
		return secondsMapMillis(ts)
	default:
		return 0
	}
}

func secondsMapMillis(m map[string]interface{}) int64 {
	sec, ok := numericField(m, "seconds", "_seconds")
	if !ok {
		return 0
	}
	nanos, _ := numericField(m, "nanoseconds", "_nanoseconds")
	return int64(sec)*1000 + int64(nanos)/1_000_000
}

func numericField(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return asFloat(v)
		}
	}
	return 0, false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
