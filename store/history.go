package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ManuelFernandezG/manny-map-sub000/schema"
)

type History interface {
	AddDailyAverage(locationID primitive.ObjectID, average float64, ts int64) error
	GetAverageSince(locationID primitive.ObjectID, start, end int64) (float64, error)
}

// AddDailyAverage upserts one average-score record per location per civil
// day. Repeated engine passes on the same day overwrite the same record, so
// the history keeps each day's latest value.
func (m *mongoDB) AddDailyAverage(locationID primitive.ObjectID, average float64, ts int64) error {
	c := m.client.Database(m.database).Collection(schema.AggregateHistoryCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	date := time.Unix(ts, 0).UTC().Format("2006-01-02")
	query := bson.M{"location_id": locationID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"average": average,
			"ts":      ts,
		},
		"$setOnInsert": bson.M{
			"location_id": locationID,
			"date":        date,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := c.UpdateOne(ctx, query, update, opts)
	return err
}

// GetAverageSince averages the daily records of a location between two
// instants. No records in range yields 0, not an error.
func (m *mongoDB) GetAverageSince(locationID primitive.ObjectID, start, end int64) (float64, error) {
	c := m.client.Database(m.database).Collection(schema.AggregateHistoryCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	startDate := time.Unix(start, 0).UTC().Format("2006-01-02")
	endDate := time.Unix(end, 0).UTC().Format("2006-01-02")
	pipeline := mongo.Pipeline{
		AggregationMatch(bson.M{
			"location_id": locationID,
			"date":        bson.M{"$gte": startDate, "$lte": endDate},
		}),
		AggregationGroup("$location_id", bson.D{
			bson.E{Key: "avg", Value: bson.M{"$avg": "$average"}},
		}),
	}

	cursor, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	if !cursor.Next(ctx) {
		return 0, nil
	}

	var result struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.Decode(&result); err != nil {
		return 0, err
	}

	return result.Avg, nil
}
