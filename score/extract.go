package score

import (
	"sort"

	"github.com/ManuelFernandezG/manny-map-sub000/schema"
)

// positiveEmoji is the polarity table for the oldest rating format. Pair
// ratings carry no explicit score, so the first pair's emoji decides between
// the high and low default of the 1–4 score range.
var positiveEmoji = map[string]struct{}{
	"🔥": {},
	"😍": {},
	"🤩": {},
	"😋": {},
	"💖": {},
	"✨":  {},
	"🕺": {},
	"🎉": {},
}

const (
	polarityHighScore = 4.0
	polarityLowScore  = 2.0
)

// ExtractScores resolves the three historical rating formats into a flat
// list of dimension scores. The chain is evaluated top to bottom and the
// first populated format wins:
//
//  1. the named-dimension map, in dimension-name order
//  2. the single flat rating
//  3. the first emoji/word pair, scored from the polarity table
//
// Every reader of rating scores must go through this function so the
// fallback behavior cannot drift between call sites.
func ExtractScores(ev schema.RatingEvent) []schema.DimensionScore {
	if len(ev.Dimensions) > 0 {
		names := make([]string, 0, len(ev.Dimensions))
		for name := range ev.Dimensions {
			names = append(names, name)
		}
		sort.Strings(names)

		scores := make([]schema.DimensionScore, 0, len(names))
		for _, name := range names {
			scores = append(scores, ev.Dimensions[name])
		}
		return scores
	}

	if ev.Flat != nil {
		return []schema.DimensionScore{*ev.Flat}
	}

	if len(ev.Pairs) > 0 {
		pair := ev.Pairs[0]
		score := polarityLowScore
		if _, ok := positiveEmoji[pair.Emoji]; ok {
			score = polarityHighScore
		}
		return []schema.DimensionScore{{Emoji: pair.Emoji, Word: pair.Word, Score: score}}
	}

	return nil
}

// isReviewed treats an event as reviewed when its phase says so or when any
// score-bearing legacy field is present, whichever comes first.
func isReviewed(ev *schema.RatingEvent) bool {
	return ev.Phase == schema.PhaseReviewed ||
		len(ev.Dimensions) > 0 || ev.Flat != nil || len(ev.Pairs) > 0
}

func isCheckin(ev *schema.RatingEvent) bool {
	return ev.Phase == schema.PhaseCheckin && !isReviewed(ev)
}
