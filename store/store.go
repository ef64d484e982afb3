package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultTimeout = 5 * time.Second
	mongoLogPrefix = "mongo"
)

var (
	ErrLocationNotFound = fmt.Errorf("location not found")
	ErrRatingNotFound   = fmt.Errorf("rating not found")
)

// MongoStore combines the per-concern store interfaces.
type MongoStore interface {
	Location
	Rating
	History

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// NewMongoStore returns a MongoStore backed by the given client and database.
func NewMongoStore(client *mongo.Client, database string) MongoStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

func (m *mongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *mongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
