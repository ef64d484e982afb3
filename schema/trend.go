package schema

// WindowedTrend is the full-precision trailing-window summary refreshed by a
// bounded scan of in-window events, independent of the all-time counters.
type WindowedTrend struct {
	WindowStart      int64            `bson:"windowStart" json:"windowStart"`
	ReviewCount      int64            `bson:"reviewCount" json:"reviewCount"`
	AverageScore     float64          `bson:"averageScore" json:"averageScore"`
	DominantEmoji    string           `bson:"dominantEmoji" json:"dominantEmoji"`
	DominantWord     string           `bson:"dominantWord" json:"dominantWord"`
	CheckinCount     int64            `bson:"checkinCount" json:"checkinCount"`
	CheckinsByGender map[string]int64 `bson:"checkinsByGender" json:"checkinsByGender"`
	TopCompanion     string           `bson:"topCompanion,omitempty" json:"topCompanion,omitempty"`
}

// TrendCard is the reduced trend shape rendered on map cards.
type TrendCard struct {
	CheckinCount int64  `json:"checkinCount"`
	MaleCount    int64  `json:"maleCount"`
	FemaleCount  int64  `json:"femaleCount"`
	DominantVibe string `json:"dominantVibe"`
}
