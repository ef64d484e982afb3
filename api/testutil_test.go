package api

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ManuelFernandezG/manny-map-sub000/schema"
	"github.com/ManuelFernandezG/manny-map-sub000/score"
	"github.com/ManuelFernandezG/manny-map-sub000/store"
)

// fakeStore implements store.MongoStore in memory for handler tests.
type fakeStore struct {
	locations map[primitive.ObjectID]*schema.Location
	events    []schema.RatingEvent
	lastErr   error
}

var _ store.MongoStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		locations: make(map[primitive.ObjectID]*schema.Location),
	}
}

func (f *fakeStore) addKnownLocation() *schema.Location {
	loc := &schema.Location{
		ID:    primitive.NewObjectID(),
		Alias: "test spot",
	}
	f.locations[loc.ID] = loc
	return loc
}

func (f *fakeStore) AddLocation(alias, address, placeType string, lon, lat float64) (*schema.Location, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	loc := &schema.Location{
		ID:        primitive.NewObjectID(),
		Alias:     alias,
		Address:   address,
		PlaceType: placeType,
		Location:  &schema.GeoJSON{Type: "Point", Coordinates: []float64{lon, lat}},
	}
	f.locations[loc.ID] = loc
	return loc, nil
}

func (f *fakeStore) GetLocation(locationID primitive.ObjectID) (*schema.Location, error) {
	loc, ok := f.locations[locationID]
	if !ok {
		return nil, store.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeStore) GetAggregate(locationID primitive.ObjectID) (*schema.LocationAggregate, error) {
	loc, ok := f.locations[locationID]
	if !ok {
		return nil, store.ErrLocationNotFound
	}
	return &loc.Aggregate, nil
}

func (f *fakeStore) CheckIn(event schema.RatingEvent) (*schema.RatingEvent, error) {
	if _, ok := f.locations[event.LocationID]; !ok {
		return nil, store.ErrLocationNotFound
	}
	event.ID = primitive.NewObjectID()
	event.Phase = schema.PhaseCheckin
	f.events = append(f.events, event)
	return &event, nil
}

func (f *fakeStore) AttachReview(ratingID primitive.ObjectID, payload schema.RatingPayload) (*schema.RatingEvent, error) {
	for i := range f.events {
		if f.events[i].ID == ratingID {
			f.events[i].Phase = schema.PhaseReviewed
			f.events[i].RatingPayload = payload
			return &f.events[i], nil
		}
	}
	return nil, store.ErrRatingNotFound
}

func (f *fakeStore) DeleteRating(ratingID primitive.ObjectID) error {
	for i := range f.events {
		if f.events[i].ID == ratingID {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return store.ErrRatingNotFound
}

func (f *fakeStore) ListRatingsSince(locationID primitive.ObjectID, sinceMs int64) ([]schema.RatingEvent, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	var out []schema.RatingEvent
	for _, ev := range f.events {
		if ev.LocationID == locationID && score.ToEpochMillis(ev.CheckinAt) >= sinceMs {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeStore) ProcessRatingChange(locationID primitive.ObjectID, before, after *schema.RatingEvent) (*schema.LocationAggregate, error) {
	loc, ok := f.locations[locationID]
	if !ok {
		return nil, store.ErrLocationNotFound
	}
	counters := score.ApplyRatingDelta(loc.Aggregate.LocationCounters, before, after)
	loc.Aggregate.LocationCounters = counters
	loc.Aggregate.AggregateFields = score.DeriveAggregate(counters)
	return &loc.Aggregate, nil
}

func (f *fakeStore) AddDailyAverage(locationID primitive.ObjectID, average float64, ts int64) error {
	return nil
}

func (f *fakeStore) GetAverageSince(locationID primitive.ObjectID, start, end int64) (float64, error) {
	return 0, nil
}

func (f *fakeStore) Ping(ctx context.Context) error  { return nil }
func (f *fakeStore) Close(ctx context.Context) error { return nil }
