package schema

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LocationCollection = "location"
)

type GeoJSON struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Location is a rated place on the map. Aggregate is exclusively owned by
// the aggregation engine; no other writer may touch its counter fields.
type Location struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Alias     string             `bson:"alias" json:"alias"`
	Address   string             `bson:"address" json:"address"`
	PlaceType string             `bson:"place_type" json:"place_type"`
	Location  *GeoJSON           `bson:"location" json:"location"`
	Aggregate LocationAggregate  `bson:"aggregate" json:"aggregate"`
	CreatedAt int64              `bson:"created_at" json:"-"`
}
