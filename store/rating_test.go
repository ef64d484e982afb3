package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ManuelFernandezG/manny-map-sub000/schema"
)

type RatingTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
}

func TestRatingTestSuite(t *testing.T) {
	connURI := os.Getenv("MANNYMAP_TEST_MONGO_URI")
	if connURI == "" {
		t.Skip("set MANNYMAP_TEST_MONGO_URI to run mongodb integration tests")
	}
	suite.Run(t, &RatingTestSuite{
		connURI:    connURI,
		testDBName: "test-mannymap",
	})
}

func (s *RatingTestSuite) SetupSuite() {
	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.Connect(context.Background(), opts)
	if nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}

	schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexAll()
}

func (s *RatingTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func (s *RatingTestSuite) TestCheckInBootstrapsAggregate() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	loc, err := store.AddLocation("corner bar", "1 Main St", "bar", -73.99, 40.73)
	s.NoError(err)

	_, err = store.CheckIn(schema.RatingEvent{
		LocationID: loc.ID,
		UserID:     "userA",
		AgeGroup:   schema.AgeGroup20s,
		Gender:     schema.GenderFemale,
	})
	s.NoError(err)

	aggregate, err := store.GetAggregate(loc.ID)
	s.NoError(err)
	s.Equal(int64(1), aggregate.AggregateFields.CheckinCount)
	s.Equal(int64(0), aggregate.AggregateFields.TotalRatings)
	s.Equal(int64(1), aggregate.RecentTrendsLast7d.CheckinCount)
	s.Equal(schema.PlaceholderEmoji, aggregate.DominantEmoji)
}

func (s *RatingTestSuite) TestAttachReviewTransition() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	loc, err := store.AddLocation("noodle shop", "2 Main St", "restaurant", -73.98, 40.74)
	s.NoError(err)

	event, err := store.CheckIn(schema.RatingEvent{
		LocationID: loc.ID,
		UserID:     "userB",
		AgeGroup:   schema.AgeGroup30s,
		Gender:     schema.GenderMale,
	})
	s.NoError(err)

	reviewed, err := store.AttachReview(event.ID, schema.RatingPayload{
		Dimensions: map[string]schema.DimensionScore{
			"vibe":  {Emoji: "🔥", Word: "lit", Score: 4},
			"taste": {Emoji: "😋", Word: "yum", Score: 3},
		},
	})
	s.NoError(err)
	s.Equal(schema.PhaseReviewed, reviewed.Phase)

	aggregate, err := store.GetAggregate(loc.ID)
	s.NoError(err)
	// the check-in contribution was replaced by the review contribution
	s.Equal(int64(0), aggregate.AggregateFields.CheckinCount)
	s.Equal(int64(1), aggregate.AggregateFields.TotalRatings)
	s.Equal(3.5, aggregate.AverageScore)
	s.Equal(int64(1), aggregate.EmojiCounts["🔥"])
	s.Equal(int64(1), aggregate.RecentTrendsLast7d.ReviewCount)
}

func (s *RatingTestSuite) TestDeleteRoundTrip() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	loc, err := store.AddLocation("rooftop", "3 Main St", "bar", -73.97, 40.75)
	s.NoError(err)

	events := make([]*schema.RatingEvent, 0, 3)
	for _, user := range []string{"u1", "u2", "u3"} {
		ev, err := store.CheckIn(schema.RatingEvent{
			LocationID: loc.ID,
			UserID:     user,
			AgeGroup:   schema.AgeGroup20s,
			Gender:     schema.GenderMale,
		})
		s.NoError(err)
		events = append(events, ev)
	}

	for _, ev := range events {
		s.NoError(store.DeleteRating(ev.ID))
	}

	aggregate, err := store.GetAggregate(loc.ID)
	s.NoError(err)
	s.Equal(int64(0), aggregate.AggregateFields.CheckinCount)
	s.Equal(int64(0), aggregate.AggregateFields.TotalRatings)
	s.Equal(int64(0), aggregate.RecentTrendsLast7d.CheckinCount)
}

func (s *RatingTestSuite) TestDeleteUnknownRating() {
	store := NewMongoStore(s.mongoClient, s.testDBName)
	err := store.DeleteRating(primitive.NewObjectID())
	s.Equal(ErrRatingNotFound, err)
}

func (s *RatingTestSuite) TestDailyAverageHistory() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	loc, err := store.AddLocation("cafe", "4 Main St", "cafe", -73.96, 40.76)
	s.NoError(err)

	s.NoError(store.AddDailyAverage(loc.ID, 3.5, 1750000000))
	s.NoError(store.AddDailyAverage(loc.ID, 2.5, 1750000000+86400))

	avg, err := store.GetAverageSince(loc.ID, 1750000000-86400, 1750000000+2*86400)
	s.NoError(err)
	s.Equal(3.0, avg)
}
