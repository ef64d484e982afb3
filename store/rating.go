package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ManuelFernandezG/manny-map-sub000/schema"
	"github.com/ManuelFernandezG/manny-map-sub000/score"
)

type Rating interface {
	CheckIn(event schema.RatingEvent) (*schema.RatingEvent, error)
	AttachReview(ratingID primitive.ObjectID, payload schema.RatingPayload) (*schema.RatingEvent, error)
	DeleteRating(ratingID primitive.ObjectID) error
	ListRatingsSince(locationID primitive.ObjectID, sinceMs int64) ([]schema.RatingEvent, error)
	ProcessRatingChange(locationID primitive.ObjectID, before, after *schema.RatingEvent) (*schema.LocationAggregate, error)
}

// CheckIn records an arrival and runs one engine pass for the create delta.
func (m *mongoDB) CheckIn(event schema.RatingEvent) (*schema.RatingEvent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	event.Phase = schema.PhaseCheckin
	event.CheckinAt = time.Now().UTC()
	event.ReviewedAt = nil
	event.RatingPayload = schema.RatingPayload{}

	c := m.client.Database(m.database).Collection(schema.RatingCollection)
	result, err := c.InsertOne(ctx, &event)
	if err != nil {
		return nil, err
	}
	event.ID = result.InsertedID.(primitive.ObjectID)

	if _, err := m.ProcessRatingChange(event.LocationID, nil, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// AttachReview mutates a check-in into a reviewed event in place and runs
// one engine pass with the before/after pair.
func (m *mongoDB) AttachReview(ratingID primitive.ObjectID, payload schema.RatingPayload) (*schema.RatingEvent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	set := bson.M{
		"phase":       schema.PhaseReviewed,
		"reviewed_at": time.Now().UTC(),
	}
	if len(payload.Dimensions) > 0 {
		set["dimensions"] = payload.Dimensions
	}
	if payload.Flat != nil {
		set["flat_rating"] = payload.Flat
	}
	if len(payload.Pairs) > 0 {
		set["pairs"] = payload.Pairs
	}

	c := m.client.Database(m.database).Collection(schema.RatingCollection)

	var before schema.RatingEvent
	err := c.FindOneAndUpdate(ctx,
		bson.M{"_id": ratingID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	var after schema.RatingEvent
	if err := c.FindOne(ctx, bson.M{"_id": ratingID}).Decode(&after); err != nil {
		return nil, err
	}

	if _, err := m.ProcessRatingChange(after.LocationID, &before, &after); err != nil {
		return nil, err
	}

	return &after, nil
}

// DeleteRating removes an event (moderation) and runs one engine pass with
// the before snapshot only.
func (m *mongoDB) DeleteRating(ratingID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.RatingCollection)

	var before schema.RatingEvent
	if err := c.FindOneAndDelete(ctx, bson.M{"_id": ratingID}).Decode(&before); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrRatingNotFound
		}
		return err
	}

	_, err := m.ProcessRatingChange(before.LocationID, &before, nil)
	return err
}

// ListRatingsSince returns a location's rating events whose check-in
// timestamp is inside the window. This is the storage-layer pre-filter that
// bounds the trend scan; the engine re-filters per phase. Legacy documents
// with non-datetime timestamps fall outside the $gte match and out of the
// window, which matches the engine's own zero-coercion of such values.
func (m *mongoDB) ListRatingsSince(locationID primitive.ObjectID, sinceMs int64) ([]schema.RatingEvent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.RatingCollection)

	pipeline := mongo.Pipeline{
		AggregationMatch(bson.M{
			"location_id": locationID,
			"checkin_at":  bson.M{"$gte": time.UnixMilli(sinceMs).UTC()},
		}),
		AggregationSort(bson.M{"checkin_at": 1}),
	}

	cursor, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":      mongoLogPrefix,
			"location ID": locationID.String(),
			"error":       err,
		}).Error("list ratings in window")
		return nil, err
	}

	var events []schema.RatingEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

// ProcessRatingChange is the single engine invocation for one rating
// mutation: read the prior counters, fold in the signed delta, recompute the
// derived fields, rescan the trailing window and write the merged aggregate
// back as one document update.
//
// The write is all-or-nothing but not compare-and-swap: two invocations for
// the same location racing resolve last-write-wins on the whole aggregate.
// Callers are expected to deliver a location's mutations sequentially and
// exactly once; the engine itself never retries.
func (m *mongoDB) ProcessRatingChange(locationID primitive.ObjectID, before, after *schema.RatingEvent) (*schema.LocationAggregate, error) {
	prior, err := m.GetAggregate(locationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	counters := score.ApplyRatingDelta(prior.LocationCounters, before, after)
	fields := score.DeriveAggregate(counters)

	windowStart := score.RollingWindowStart(now, score.TrendWindowDays)
	events, err := m.ListRatingsSince(locationID, windowStart)
	if err != nil {
		return nil, err
	}
	trend := score.DeriveWindowedTrend(events, windowStart)

	aggregate := schema.LocationAggregate{
		LocationCounters:   counters,
		AggregateFields:    fields,
		RecentTrendsLast7d: trend,
		LastUpdate:         now.Unix(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.LocationCollection)
	result, err := c.UpdateOne(ctx,
		bson.M{"_id": locationID},
		bson.M{"$set": bson.M{"aggregate": aggregate}},
	)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":      mongoLogPrefix,
			"location ID": locationID.String(),
			"error":       err,
		}).Error("update location aggregate")
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrLocationNotFound
	}

	// history failures must not fail the aggregate write that already landed
	if err := m.AddDailyAverage(locationID, fields.AverageScore, now.Unix()); err != nil {
		log.WithFields(log.Fields{
			"prefix":      mongoLogPrefix,
			"location ID": locationID.String(),
			"error":       err,
		}).Warn("add daily average record")
	}

	return &aggregate, nil
}
