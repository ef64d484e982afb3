package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelFernandezG/manny-map-sub000/schema"
)

var trendNow = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

func checkinAt(ts time.Time, gender schema.Gender, companion string) schema.RatingEvent {
	return schema.RatingEvent{
		Phase:         schema.PhaseCheckin,
		Gender:        gender,
		CompanionType: companion,
		CheckinAt:     ts,
	}
}

func reviewAt(checkin, reviewed time.Time, emoji, word string, s float64) schema.RatingEvent {
	return schema.RatingEvent{
		Phase:      schema.PhaseReviewed,
		CheckinAt:  checkin,
		ReviewedAt: reviewed,
		RatingPayload: schema.RatingPayload{
			Dimensions: map[string]schema.DimensionScore{
				"vibe": {Emoji: emoji, Word: word, Score: s},
			},
		},
	}
}

func TestTrendWindowFiltering(t *testing.T) {
	start := RollingWindowStart(trendNow, 7)
	inWindow := trendNow.AddDate(0, 0, -2)
	outOfWindow := trendNow.AddDate(0, 0, -10)

	events := []schema.RatingEvent{
		checkinAt(inWindow, schema.GenderMale, ""),
		checkinAt(outOfWindow, schema.GenderFemale, ""),
		reviewAt(inWindow, inWindow, "🔥", "lit", 4),
		reviewAt(outOfWindow, outOfWindow, "💀", "dead", 1),
	}

	trend := DeriveWindowedTrend(events, start)
	assert.Equal(t, int64(1), trend.CheckinCount)
	assert.Equal(t, int64(1), trend.ReviewCount)
	assert.Equal(t, "🔥", trend.DominantEmoji)
	assert.Equal(t, 4.0, trend.AverageScore)
}

func TestTrendPhaseSpecificTimestamps(t *testing.T) {
	start := RollingWindowStart(trendNow, 7)
	oldCheckin := trendNow.AddDate(0, 0, -10)
	recentReview := trendNow.AddDate(0, 0, -1)

	// checked in before the window, reviewed inside it: counts as a review
	events := []schema.RatingEvent{
		reviewAt(oldCheckin, recentReview, "😍", "love", 3),
	}

	trend := DeriveWindowedTrend(events, start)
	assert.Equal(t, int64(1), trend.ReviewCount)
	assert.Equal(t, int64(0), trend.CheckinCount)
}

func TestTrendFlattenedAverage(t *testing.T) {
	start := RollingWindowStart(trendNow, 7)
	ts := trendNow.AddDate(0, 0, -1)

	multi := schema.RatingEvent{
		Phase:      schema.PhaseReviewed,
		ReviewedAt: ts,
		RatingPayload: schema.RatingPayload{
			Dimensions: map[string]schema.DimensionScore{
				"vibe":  {Emoji: "🔥", Word: "lit", Score: 4},
				"taste": {Emoji: "😋", Word: "yum", Score: 3},
			},
		},
	}
	single := reviewAt(ts, ts, "😍", "love", 3)

	trend := DeriveWindowedTrend([]schema.RatingEvent{multi, single}, start)
	// flattened across dimensions: (4+3+3)/3, rounded to one decimal
	assert.Equal(t, 3.3, trend.AverageScore)
}

func TestTrendEmpty(t *testing.T) {
	trend := DeriveWindowedTrend(nil, RollingWindowStart(trendNow, 7))

	assert.Equal(t, int64(0), trend.CheckinCount)
	assert.Equal(t, int64(0), trend.ReviewCount)
	assert.Equal(t, 0.0, trend.AverageScore)
	assert.Equal(t, schema.PlaceholderEmoji, trend.DominantEmoji)
	assert.NotNil(t, trend.CheckinsByGender)
	assert.Empty(t, trend.TopCompanion)
}

func TestTrendCard(t *testing.T) {
	start := RollingWindowStart(trendNow, 7)
	ts := trendNow.AddDate(0, 0, -1)

	events := []schema.RatingEvent{
		checkinAt(ts, schema.GenderMale, "friends"),
		checkinAt(ts, schema.GenderMale, "friends"),
		checkinAt(ts, schema.GenderFemale, "date"),
		reviewAt(ts, ts, "🕺", "groovy", 4),
	}

	card := DeriveTrendCard(events, start)
	assert.Equal(t, int64(3), card.CheckinCount)
	assert.Equal(t, int64(2), card.MaleCount)
	assert.Equal(t, int64(1), card.FemaleCount)
	assert.Equal(t, "🕺", card.DominantVibe)
}

func TestTrendTopCompanion(t *testing.T) {
	start := RollingWindowStart(trendNow, 7)
	ts := trendNow.AddDate(0, 0, -1)

	events := []schema.RatingEvent{
		checkinAt(ts, schema.GenderMale, "friends"),
		checkinAt(ts, schema.GenderFemale, "friends"),
		checkinAt(ts, schema.GenderMale, "solo"),
	}

	trend := DeriveWindowedTrend(events, start)
	assert.Equal(t, "friends", trend.TopCompanion)
}

func TestTrendIgnoresUnparsableTimestamps(t *testing.T) {
	start := RollingWindowStart(trendNow, 7)

	events := []schema.RatingEvent{
		{Phase: schema.PhaseCheckin, CheckinAt: "not a timestamp"},
	}

	trend := DeriveWindowedTrend(events, start)
	assert.Equal(t, int64(0), trend.CheckinCount)
}
