package schema

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AggregateHistoryCollection = "aggregate_history"
)

// AggregateHistoryRecord keeps one average-score sample per location per
// civil day, written on every engine pass and read by dashboards.
type AggregateHistoryRecord struct {
	LocationID primitive.ObjectID `bson:"location_id" json:"location_id"`
	Date       string             `bson:"date" json:"date"`
	Average    float64            `bson:"average" json:"average"`
	Timestamp  int64              `bson:"ts" json:"ts"`
}
