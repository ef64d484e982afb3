package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToEpochMillis(t *testing.T) {
	ts := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	millis := ts.UnixMilli()

	assert.Equal(t, millis, ToEpochMillis(ts))
	assert.Equal(t, millis, ToEpochMillis(&ts))
	assert.Equal(t, millis, ToEpochMillis(primitive.NewDateTimeFromTime(ts)))
	assert.Equal(t, millis, ToEpochMillis(millis))
	assert.Equal(t, millis, ToEpochMillis(float64(millis)))
	assert.Equal(t, ts.Unix()*1000, ToEpochMillis(primitive.Timestamp{T: uint32(ts.Unix())}))
}

func TestToEpochMillisSecondsMaps(t *testing.T) {
	// firestore-style export shapes
	assert.Equal(t, int64(1_750_000_000_000), ToEpochMillis(map[string]interface{}{
		"seconds":     int64(1_750_000_000),
		"nanoseconds": int64(500_000),
	}))
	assert.Equal(t, int64(1_750_000_000_000), ToEpochMillis(primitive.M{
		"_seconds": int64(1_750_000_000),
	}))
}

func TestToEpochMillisUnrecognized(t *testing.T) {
	assert.Equal(t, int64(0), ToEpochMillis(nil))
	assert.Equal(t, int64(0), ToEpochMillis("2025-06-20"))
	assert.Equal(t, int64(0), ToEpochMillis(map[string]interface{}{"millis": 12}))
	assert.Equal(t, int64(0), ToEpochMillis((*time.Time)(nil)))
}
