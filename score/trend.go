package score

import (
	"github.com/ManuelFernandezG/manny-map-sub000/schema"
)

// DeriveWindowedTrend computes the trailing-window summary from a full scan
// of a location's rating events. Check-ins and reviews are filtered against
// the window start by their own timestamp, so the two phases can have
// different effective windows. Callers may pre-filter the scan at the
// storage layer on checkin_at >= windowStartMs to bound its cost; the
// re-filtering here stays correct either way.
//
// An empty or fully out-of-window event set yields a well-formed zero trend,
// never an error.
func DeriveWindowedTrend(events []schema.RatingEvent, windowStartMs int64) schema.WindowedTrend {
	t := schema.WindowedTrend{
		WindowStart:      windowStartMs,
		CheckinsByGender: make(map[string]int64),
	}

	emojiCounts := make(map[string]int64)
	words := make(map[string]string)
	companions := make(map[string]int64)

	var scoreSum float64
	var scoreCount int64

	for i := range events {
		ev := &events[i]
		switch ev.Phase {
		case schema.PhaseReviewed:
			if ToEpochMillis(ev.ReviewedAt) < windowStartMs {
				continue
			}
			t.ReviewCount++
			// flattened mean: every extracted dimension weighs equally
			for _, d := range ExtractScores(*ev) {
				scoreSum += d.Score
				scoreCount++
				emojiCounts[d.Emoji]++
				words[d.Emoji] = d.Word
			}
		case schema.PhaseCheckin:
			if ToEpochMillis(ev.CheckinAt) < windowStartMs {
				continue
			}
			t.CheckinCount++
			if ev.Gender != "" {
				t.CheckinsByGender[string(ev.Gender)]++
			}
			if ev.CompanionType != "" {
				companions[ev.CompanionType]++
			}
		}
	}

	if scoreCount > 0 {
		t.AverageScore = round1(scoreSum / float64(scoreCount))
	}
	t.DominantEmoji, t.DominantWord = dominantPair(emojiCounts, words)
	t.TopCompanion = topKey(companions)

	return t
}

// DeriveTrendCard reduces the same filtered set to the shape rendered on map
// cards.
func DeriveTrendCard(events []schema.RatingEvent, windowStartMs int64) schema.TrendCard {
	t := DeriveWindowedTrend(events, windowStartMs)
	return schema.TrendCard{
		CheckinCount: t.CheckinCount,
		MaleCount:    t.CheckinsByGender[string(schema.GenderMale)],
		FemaleCount:  t.CheckinsByGender[string(schema.GenderFemale)],
		DominantVibe: t.DominantEmoji,
	}
}

func topKey(counts map[string]int64) string {
	var best string
	var bestCount int64
	for k, n := range counts {
		if n > bestCount || (n == bestCount && n > 0 && k < best) {
			best = k
			bestCount = n
		}
	}
	return best
}
