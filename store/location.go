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

type Location interface {
	AddLocation(alias, address, placeType string, lon, lat float64) (*schema.Location, error)
	GetLocation(locationID primitive.ObjectID) (*schema.Location, error)
	GetAggregate(locationID primitive.ObjectID) (*schema.LocationAggregate, error)
}

// AddLocation inserts a new location unless one already exists at the exact
// coordinates, and seeds a complete zero aggregate so the client always has
// a well-typed shape to render.
func (m *mongoDB) AddLocation(alias, address, placeType string, lon, lat float64) (*schema.Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.LocationCollection)

	var location schema.Location
	query := bson.M{
		"location.coordinates.0": lon,
		"location.coordinates.1": lat,
	}

	err := c.FindOne(ctx, query).Decode(&location)
	if err == nil {
		return &location, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now().UTC()
	location = schema.Location{
		Alias:     alias,
		Address:   address,
		PlaceType: placeType,
		Location: &schema.GeoJSON{
			Type:        "Point",
			Coordinates: []float64{lon, lat},
		},
		Aggregate: emptyAggregate(now),
		CreatedAt: now.Unix(),
	}

	result, err := c.InsertOne(ctx, &location)
	if err != nil {
		return nil, err
	}
	location.ID = result.InsertedID.(primitive.ObjectID)

	log.WithFields(log.Fields{
		"prefix":      mongoLogPrefix,
		"location ID": location.ID.String(),
		"alias":       alias,
	}).Debug("add location")

	return &location, nil
}

// GetLocation finds a location by ID.
func (m *mongoDB) GetLocation(locationID primitive.ObjectID) (*schema.Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.LocationCollection)

	var location schema.Location
	if err := c.FindOne(ctx, bson.M{"_id": locationID}).Decode(&location); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	return &location, nil
}

// GetAggregate reads a location's aggregate. A location written before the
// engine ever ran decodes to zero counters, which is the correct prior state
// for a first event.
func (m *mongoDB) GetAggregate(locationID primitive.ObjectID) (*schema.LocationAggregate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.LocationCollection)

	var result struct {
		Aggregate schema.LocationAggregate `bson:"aggregate"`
	}
	err := c.FindOne(ctx, bson.M{"_id": locationID},
		options.FindOne().SetProjection(bson.M{"aggregate": 1})).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrLocationNotFound
		}
		log.WithFields(log.Fields{
			"prefix":      mongoLogPrefix,
			"location ID": locationID.String(),
			"error":       err,
		}).Error("get location aggregate")
		return nil, err
	}

	return &result.Aggregate, nil
}

func emptyAggregate(now time.Time) schema.LocationAggregate {
	windowStart := score.RollingWindowStart(now, score.TrendWindowDays)
	return schema.LocationAggregate{
		AggregateFields:    score.DeriveAggregate(schema.LocationCounters{}),
		RecentTrendsLast7d: score.DeriveWindowedTrend(nil, windowStart),
		LastUpdate:         now.Unix(),
	}
}
