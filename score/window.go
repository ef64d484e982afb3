package score

import (
	"time"
)

// TrendWindowDays is the trailing window of the persisted location trend.
const TrendWindowDays = 7

const dayMillis = 24 * 60 * 60 * 1000

// RollingWindowStart returns the epoch-millisecond lower bound of a rolling
// N-day window ending at now.
func RollingWindowStart(now time.Time, days int) int64 {
	return now.UnixMilli() - int64(days)*dayMillis
}

// SinceLocalHour returns the instant of today's wall-clock hour in the given
// civil time zone, as epoch milliseconds. "Today" is the current date in
// that zone, not UTC. Constructing the instant with the zone's own rules
// keeps the boundary correct across DST transitions; an off-by-one-hour
// boundary would silently shift the "tonight" cohort.
func SinceLocalHour(now time.Time, hour int, loc *time.Location) int64 {
	local := now.In(loc)
	boundary := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	return boundary.UnixMilli()
}
