package schema

// Placeholder dominant shown for a location that has no reviewed ratings yet.
const (
	PlaceholderEmoji = "🔥"
	PlaceholderWord  = "New"
)

// LocationCounters is the running counter state of a location. The engine in
// the score package is the only writer of these fields; the underscore bson
// prefix marks them private to the engine. Consumers read the derived
// AggregateFields instead.
type LocationCounters struct {
	EmojiCounts         map[string]int64            `bson:"_emojiCounts" json:"-"`
	WordForEmoji        map[string]string           `bson:"_wordForEmoji" json:"-"`
	AgeGroupScoreSums   map[string]float64          `bson:"_ageGroupScoreSums" json:"-"`
	AgeGroupScoreCounts map[string]int64            `bson:"_ageGroupScoreCounts" json:"-"`
	GenderScoreSums     map[string]float64          `bson:"_genderScoreSums" json:"-"`
	GenderScoreCounts   map[string]int64            `bson:"_genderScoreCounts" json:"-"`
	AgeGroupEmojiCounts map[string]map[string]int64 `bson:"_ageGroupEmojiCounts" json:"-"`
	GenderEmojiCounts   map[string]map[string]int64 `bson:"_genderEmojiCounts" json:"-"`
	TotalScoreSum       float64                     `bson:"_totalScoreSum" json:"-"`
	TotalScoreCount     int64                       `bson:"_totalScoreCount" json:"-"`

	// CheckinCount and TotalRatings are running counters like the fields
	// above, but they double as public output so they are persisted without
	// the underscore prefix. AggregateFields carries their JSON rendering.
	CheckinCount int64 `bson:"checkinCount" json:"-"`
	TotalRatings int64 `bson:"totalRatings" json:"-"`
}

// Clone deep-copies the counters so a delta application never aliases the
// prior state read from the store.
func (c LocationCounters) Clone() LocationCounters {
	out := c
	out.EmojiCounts = cloneCountMap(c.EmojiCounts)
	out.WordForEmoji = cloneStringMap(c.WordForEmoji)
	out.AgeGroupScoreSums = cloneSumMap(c.AgeGroupScoreSums)
	out.AgeGroupScoreCounts = cloneCountMap(c.AgeGroupScoreCounts)
	out.GenderScoreSums = cloneSumMap(c.GenderScoreSums)
	out.GenderScoreCounts = cloneCountMap(c.GenderScoreCounts)
	out.AgeGroupEmojiCounts = cloneNestedCountMap(c.AgeGroupEmojiCounts)
	out.GenderEmojiCounts = cloneNestedCountMap(c.GenderEmojiCounts)
	return out
}

func cloneCountMap(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSumMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneNestedCountMap(m map[string]map[string]int64) map[string]map[string]int64 {
	out := make(map[string]map[string]int64, len(m))
	for k, v := range m {
		out[k] = cloneCountMap(v)
	}
	return out
}

// TopPair is one emoji/word pair with its occurrence count.
type TopPair struct {
	Emoji string `bson:"emoji" json:"emoji"`
	Word  string `bson:"word" json:"word"`
	Count int64  `bson:"count" json:"count"`
}

// GroupBreakdown summarizes one demographic group (one age band or gender).
type GroupBreakdown struct {
	TotalRatings int64     `bson:"totalRatings" json:"totalRatings"`
	Dominant     TopPair   `bson:"dominant" json:"dominant"`
	TopPairs     []TopPair `bson:"topPairs" json:"topPairs"`
}

// AggregateFields are the public summary fields derived from the counters.
// They are recomputed on every engine pass and never the source of truth.
type AggregateFields struct {
	// TotalRatings and CheckinCount are persisted through LocationCounters;
	// here they are the clamped read-side copy.
	TotalRatings      int64                     `bson:"-" json:"totalRatings"`
	CheckinCount      int64                     `bson:"-" json:"checkinCount"`
	DominantEmoji     string                    `bson:"dominantEmoji" json:"dominantEmoji"`
	DominantWord      string                    `bson:"dominantWord" json:"dominantWord"`
	AverageScore      float64                   `bson:"averageScore" json:"averageScore"`
	DivergenceScore   float64                   `bson:"divergenceScore" json:"divergenceScore"`
	DivergenceFlagged bool                      `bson:"divergenceFlagged" json:"divergenceFlagged"`
	RatingsByAgeGroup map[string]GroupBreakdown `bson:"ratingsByAgeGroup" json:"ratingsByAgeGroup"`
	RatingsByGender   map[string]GroupBreakdown `bson:"ratingsByGender" json:"ratingsByGender"`
}

// LocationAggregate is the persisted denormalized summary of a location:
// the internal counters, the derived public fields, the independently
// refreshed trailing-window trend and a freshness timestamp.
type LocationAggregate struct {
	LocationCounters   `bson:",inline"`
	AggregateFields    `bson:",inline"`
	RecentTrendsLast7d WindowedTrend `bson:"recentTrendsLast7d" json:"recentTrendsLast7d"`
	LastUpdate         int64         `bson:"last_update" json:"last_update"`
}
