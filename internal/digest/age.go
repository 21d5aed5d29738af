package digest

import (
	"math"
	"time"
)

// AgeDays returns the whole days between createdAt and now, rounding down.
// Both instants are read as UTC wall clocks: any zone offset is dropped,
// not converted.
func AgeDays(now, createdAt time.Time) int {
	elapsed := stripZone(now).Sub(stripZone(createdAt))
	return int(math.Floor(elapsed.Hours() / 24))
}

func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
