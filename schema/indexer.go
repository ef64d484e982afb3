package schema

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBIndexer creates the indexes the store relies on. Run once at
// service start; index creation is idempotent.
type MongoDBIndexer struct {
	connURI  string
	database string
}

func NewMongoDBIndexer(connURI, database string) *MongoDBIndexer {
	return &MongoDBIndexer{
		connURI:  connURI,
		database: database,
	}
}

func (i *MongoDBIndexer) IndexAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(i.connURI))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	db := client.Database(i.database)

	// the trend scan filters ratings by location and check-in time
	_, err = db.Collection(RatingCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "location_id", Value: 1},
				{Key: "checkin_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "location_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
		},
	})
	if err != nil {
		log.WithError(err).Error("create rating indexes")
		return err
	}

	// locations dedupe on exact coordinates at insert time
	_, err = db.Collection(LocationCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "location.coordinates.0", Value: 1},
			{Key: "location.coordinates.1", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.WithError(err).Error("create location index")
		return err
	}

	_, err = db.Collection(AggregateHistoryCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "location_id", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.WithError(err).Error("create history index")
		return err
	}

	return nil
}
