package domain

import "time"

// DailyLog is a student's self-report for one calendar day.
type DailyLog struct {
	ID             string
	StudentID      string
	Date           time.Time // midnight of the reported day
	StressLevel    int       // 1-10
	AvailableHours float64   // 0-24
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
