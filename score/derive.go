package score

import (
	"math"
	"sort"

	"github.com/ManuelFernandezG/manny-map-sub000/schema"
)

const (
	// maxTopPairs caps the per-group pair list persisted on the aggregate.
	maxTopPairs = 10

	// minDivergenceSamples is the minimum number of scored ratings a
	// demographic group needs before it participates in divergence. Small-N
	// groups produce noisy spread signals.
	minDivergenceSamples = 5

	// divergenceSpan normalizes the mean-score spread. Scores span roughly
	// [1,4], so the maximum possible spread is about 3.
	divergenceSpan = 3.0

	divergenceFlagThreshold = 0.5
)

var (
	ageGroupKeys = []string{
		string(schema.AgeGroup10s),
		string(schema.AgeGroup20s),
		string(schema.AgeGroup30s),
		string(schema.AgeGroup40s),
	}
	genderKeys = []string{
		string(schema.GenderMale),
		string(schema.GenderFemale),
	}
)

// DeriveAggregate computes the public aggregate fields from the counters.
// It is a pure function: same counters, same output, any number of times.
// A location with no ratings yet still gets a complete shape — placeholder
// dominant and zero-count breakdowns for every known group — because the
// client renders the fields directly.
func DeriveAggregate(c schema.LocationCounters) schema.AggregateFields {
	f := schema.AggregateFields{
		TotalRatings: clampNonNegative(c.TotalRatings),
		CheckinCount: clampNonNegative(c.CheckinCount),
	}

	f.DominantEmoji, f.DominantWord = dominantPair(c.EmojiCounts, c.WordForEmoji)

	if c.TotalScoreCount > 0 {
		f.AverageScore = round2(c.TotalScoreSum / float64(c.TotalScoreCount))
	}

	f.RatingsByAgeGroup = groupBreakdowns(c.AgeGroupEmojiCounts, c.WordForEmoji, ageGroupKeys)
	f.RatingsByGender = groupBreakdowns(c.GenderEmojiCounts, c.WordForEmoji, genderKeys)

	f.DivergenceScore = ScoreDivergence(c)
	f.DivergenceFlagged = f.DivergenceScore >= divergenceFlagThreshold &&
		len(activeAgeGroups(c)) >= 2

	return f
}

// ScoreDivergence measures demographic disagreement as the maximum pairwise
// difference between active age groups' mean scores, normalized to [0,1].
// Fewer than two active groups means there is nothing to disagree about.
func ScoreDivergence(c schema.LocationCounters) float64 {
	active := activeAgeGroups(c)
	if len(active) < 2 {
		return 0
	}

	means := make([]float64, 0, len(active))
	for _, g := range active {
		means = append(means, c.AgeGroupScoreSums[g]/float64(c.AgeGroupScoreCounts[g]))
	}

	var maxDiff float64
	for i := 0; i < len(means); i++ {
		for j := i + 1; j < len(means); j++ {
			if d := math.Abs(means[i] - means[j]); d > maxDiff {
				maxDiff = d
			}
		}
	}

	return math.Min(maxDiff/divergenceSpan, 1)
}

// DominantDivergence is the alternative divergence definition kept from an
// older derivation path: the share of distinct dominant emojis among active
// age groups, (unique-1)/(active-1). It is quantized where ScoreDivergence
// is continuous; the persisted divergenceScore uses ScoreDivergence and this
// one is exposed for dashboard comparison.
func DominantDivergence(c schema.LocationCounters) float64 {
	active := activeAgeGroups(c)
	if len(active) < 2 {
		return 0
	}

	unique := make(map[string]struct{}, len(active))
	for _, g := range active {
		emoji, _ := dominantPair(c.AgeGroupEmojiCounts[g], c.WordForEmoji)
		unique[emoji] = struct{}{}
	}

	return float64(len(unique)-1) / float64(len(active)-1)
}

func activeAgeGroups(c schema.LocationCounters) []string {
	groups := make([]string, 0, len(c.AgeGroupScoreCounts))
	for g, n := range c.AgeGroupScoreCounts {
		if n >= minDivergenceSamples {
			groups = append(groups, g)
		}
	}
	sort.Strings(groups)
	return groups
}

// dominantPair returns the most counted emoji and its word. Ties resolve to
// the lexicographically smaller emoji so derivation stays deterministic
// across map iteration orders. Empty counts fall back to the placeholder.
func dominantPair(counts map[string]int64, words map[string]string) (string, string) {
	if len(counts) == 0 {
		return schema.PlaceholderEmoji, schema.PlaceholderWord
	}

	var best string
	var bestCount int64 = -1
	for emoji, n := range counts {
		if n > bestCount || (n == bestCount && emoji < best) {
			best = emoji
			bestCount = n
		}
	}

	word := words[best]
	if word == "" {
		word = schema.PlaceholderWord
	}
	return best, word
}

func groupBreakdowns(groups map[string]map[string]int64, words map[string]string, knownKeys []string) map[string]schema.GroupBreakdown {
	out := make(map[string]schema.GroupBreakdown, len(knownKeys))
	for _, key := range knownKeys {
		out[key] = breakdownOf(groups[key], words)
	}
	// groups outside the known enumeration still surface if present
	for key, counts := range groups {
		if _, ok := out[key]; !ok {
			out[key] = breakdownOf(counts, words)
		}
	}
	return out
}

func breakdownOf(counts map[string]int64, words map[string]string) schema.GroupBreakdown {
	b := schema.GroupBreakdown{TopPairs: []schema.TopPair{}}

	if len(counts) == 0 {
		b.Dominant = schema.TopPair{Emoji: schema.PlaceholderEmoji, Word: schema.PlaceholderWord}
		return b
	}

	pairs := make([]schema.TopPair, 0, len(counts))
	for emoji, n := range counts {
		b.TotalRatings += n
		word := words[emoji]
		if word == "" {
			word = schema.PlaceholderWord
		}
		pairs = append(pairs, schema.TopPair{Emoji: emoji, Word: word, Count: n})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Emoji < pairs[j].Emoji
	})

	if len(pairs) > maxTopPairs {
		pairs = pairs[:maxTopPairs]
	}
	b.TopPairs = pairs
	b.Dominant = pairs[0]
	return b
}

func clampNonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// round2 rounds half-up to two decimal places.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
