package schema

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RatingCollection = "rating"
)

// Phase is the lifecycle stage of a rating event. A check-in records an
// arrival only; the event flips to reviewed when the user attaches scores.
type Phase string

const (
	PhaseCheckin  Phase = "checkin"
	PhaseReviewed Phase = "reviewed"
)

type AgeGroup string

const (
	AgeGroup10s AgeGroup = "10s"
	AgeGroup20s AgeGroup = "20s"
	AgeGroup30s AgeGroup = "30s"
	AgeGroup40s AgeGroup = "40s"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// DimensionScore is one rated attribute of a visit (vibe, taste, price).
type DimensionScore struct {
	Emoji string  `bson:"emoji" json:"emoji"`
	Word  string  `bson:"word" json:"word"`
	Score float64 `bson:"score" json:"score"`
}

// EmojiWordPair is the oldest rating shape. It carries no explicit score;
// the engine infers one from the emoji polarity table.
type EmojiWordPair struct {
	Emoji string `bson:"emoji" json:"emoji"`
	Word  string `bson:"word" json:"word"`
}

// RatingPayload holds the rated attributes of an event. Three historical
// formats coexist in the collection and exactly one of the fields is
// expected to be populated on a reviewed event:
//
//   - Dimensions: the current multi-dimension format, keyed by dimension name
//   - Flat: a single unnamed dimension
//   - Pairs: emoji/word pairs without scores
//
// score.ExtractScores resolves the three formats in that priority order.
type RatingPayload struct {
	Dimensions map[string]DimensionScore `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Flat       *DimensionScore           `bson:"flat_rating,omitempty" json:"flat_rating,omitempty"`
	Pairs      []EmojiWordPair           `bson:"pairs,omitempty" json:"pairs,omitempty"`
}

// RatingEvent is one user's interaction with one location. It is created by
// the check-in action and mutated in place when the review is attached.
//
// CheckinAt and ReviewedAt are declared as interface{} because legacy
// documents carry several timestamp encodings (bson datetime, epoch millis,
// {seconds, nanoseconds} maps). Use score.ToEpochMillis to read them.
type RatingEvent struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LocationID    primitive.ObjectID `bson:"location_id" json:"location_id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	AgeGroup      AgeGroup           `bson:"age_group,omitempty" json:"age_group,omitempty"`
	Gender        Gender             `bson:"gender,omitempty" json:"gender,omitempty"`
	Phase         Phase              `bson:"phase" json:"phase"`
	CompanionType string             `bson:"companion_type,omitempty" json:"companion_type,omitempty"`
	CheckinAt     interface{}        `bson:"checkin_at,omitempty" json:"checkin_at,omitempty"`
	ReviewedAt    interface{}        `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`

	RatingPayload `bson:",inline"`
}
