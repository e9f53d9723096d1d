package scheduler

import (
	"math"
	"time"
)

// CalendarDaysBetween returns the number of calendar days from ref to t,
// measured in ref's location. Both times are truncated to midnight first, so
// any two instants on the same local day are 0 days apart. Negative when t
// falls on an earlier day.
func CalendarDaysBetween(ref, t time.Time) int {
	loc := ref.Location()
	ry, rm, rd := ref.Date()
	ty, tm, td := t.In(loc).Date()
	refDay := time.Date(ry, rm, rd, 0, 0, 0, 0, loc)
	tDay := time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	// Round absorbs the 23h/25h days around DST transitions.
	return int(math.Round(tDay.Sub(refDay).Hours() / 24))
}
