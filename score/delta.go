package score

import (
	"github.com/ManuelFernandezG/manny-map-sub000/schema"
)

// ApplyRatingDelta folds one rating mutation into the prior counters and
// returns the new counter state. The mutation arrives as before/after
// snapshots of a single event: create has no before, delete has no after,
// update has both. The prior counters are cloned, never mutated, so the
// caller can safely retry a failed write with the same inputs.
//
// The engine assumes exactly-once delivery of each before/after pair;
// replaying the same signed delta twice double-counts.
func ApplyRatingDelta(prior schema.LocationCounters, before, after *schema.RatingEvent) schema.LocationCounters {
	c := prior.Clone()
	ApplyDelta(&c, before, -1)
	ApplyDelta(&c, after, +1)
	clampTotals(&c)
	return c
}

// ApplyDelta adds (sign=+1) or removes (sign=-1) one event's contribution
// from the counters in place.
//
// Events missing an age group or gender still update the overall counters;
// only the per-group mirrors are skipped. Ratings are user-generated and a
// partial event is not worth aborting the whole delta for.
func ApplyDelta(c *schema.LocationCounters, ev *schema.RatingEvent, sign int64) {
	if ev == nil || sign == 0 {
		return
	}
	ensureMaps(c)

	if isCheckin(ev) {
		c.CheckinCount += sign
		return
	}
	if !isReviewed(ev) {
		return
	}

	c.TotalRatings += sign

	scores := ExtractScores(*ev)
	if len(scores) == 0 {
		return
	}

	var sum float64
	for _, d := range scores {
		sum += d.Score
	}
	avg := sum / float64(len(scores))

	c.TotalScoreSum += avg * float64(sign)
	c.TotalScoreCount += sign

	for _, d := range scores {
		bumpEmoji(c.EmojiCounts, c.WordForEmoji, d.Emoji, d.Word, sign)
		if ev.AgeGroup != "" {
			bumpGroupEmoji(c.AgeGroupEmojiCounts, string(ev.AgeGroup), d.Emoji, sign)
		}
		if ev.Gender != "" {
			bumpGroupEmoji(c.GenderEmojiCounts, string(ev.Gender), d.Emoji, sign)
		}
	}

	if ev.AgeGroup != "" {
		bumpGroupScore(c.AgeGroupScoreSums, c.AgeGroupScoreCounts, string(ev.AgeGroup), avg, sign)
	}
	if ev.Gender != "" {
		bumpGroupScore(c.GenderScoreSums, c.GenderScoreCounts, string(ev.Gender), avg, sign)
	}
}

// bumpEmoji adjusts one emoji counter. A counter reaching zero is removed
// from the map together with its word entry: zero-valued keys would distort
// dominant selection and grow the document without bound. The word map is
// last-writer-wins, so only additions overwrite it.
func bumpEmoji(counts map[string]int64, words map[string]string, emoji, word string, sign int64) {
	n := counts[emoji] + sign
	if n <= 0 {
		delete(counts, emoji)
		if words != nil {
			delete(words, emoji)
		}
		return
	}
	counts[emoji] = n
	if sign > 0 && words != nil {
		words[emoji] = word
	}
}

func bumpGroupEmoji(groups map[string]map[string]int64, group, emoji string, sign int64) {
	m, ok := groups[group]
	if !ok {
		if sign < 0 {
			return
		}
		m = make(map[string]int64)
		groups[group] = m
	}
	bumpEmoji(m, nil, emoji, "", sign)
	if len(m) == 0 {
		delete(groups, group)
	}
}

func bumpGroupScore(sums map[string]float64, counts map[string]int64, group string, avg float64, sign int64) {
	n := counts[group] + sign
	if n <= 0 {
		delete(counts, group)
		delete(sums, group)
		return
	}
	counts[group] = n
	sums[group] += avg * float64(sign)
}

// clampTotals keeps the scalar counters non-negative. Out-of-order delete
// delivery can push them below zero; a negative count must never persist.
func clampTotals(c *schema.LocationCounters) {
	if c.CheckinCount < 0 {
		c.CheckinCount = 0
	}
	if c.TotalRatings < 0 {
		c.TotalRatings = 0
	}
	if c.TotalScoreCount < 0 {
		c.TotalScoreCount = 0
		c.TotalScoreSum = 0
	}
}

func ensureMaps(c *schema.LocationCounters) {
	if c.EmojiCounts == nil {
		c.EmojiCounts = make(map[string]int64)
	}
	if c.WordForEmoji == nil {
		c.WordForEmoji = make(map[string]string)
	}
	if c.AgeGroupScoreSums == nil {
		c.AgeGroupScoreSums = make(map[string]float64)
	}
	if c.AgeGroupScoreCounts == nil {
		c.AgeGroupScoreCounts = make(map[string]int64)
	}
	if c.GenderScoreSums == nil {
		c.GenderScoreSums = make(map[string]float64)
	}
	if c.GenderScoreCounts == nil {
		c.GenderScoreCounts = make(map[string]int64)
	}
	if c.AgeGroupEmojiCounts == nil {
		c.AgeGroupEmojiCounts = make(map[string]map[string]int64)
	}
	if c.GenderEmojiCounts == nil {
		c.GenderEmojiCounts = make(map[string]map[string]int64)
	}
}
