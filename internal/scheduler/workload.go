package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
)

// maxRealisticMinutes is the most work a single day can reasonably hold.
const maxRealisticMinutes = 480

type Workload struct {
	TaskCount    int
	TotalMinutes int
	TotalHours   float64 // rounded to 0.1
	Realistic    bool
}

// DailyWorkload sums the estimates of the unfinished tasks due on now's
// calendar day.
func DailyWorkload(tasks []domain.Task, now time.Time) Workload {
	var w Workload
	for i := range tasks {
		t := &tasks[i]
		if t.Status == domain.TaskCompleted || CalendarDaysBetween(now, t.DueDate) != 0 {
			continue
		}
		w.TaskCount++
		w.TotalMinutes += t.EffectiveEstimatedMin()
	}
	w.TotalHours = roundTenth(float64(w.TotalMinutes) / 60)
	w.Realistic = w.TotalMinutes <= maxRealisticMinutes
	return w
}

type WarningLevel string

const (
	WarningCritical WarningLevel = "critical"
	WarningWarning  WarningLevel = "warning"
	WarningCaution  WarningLevel = "caution"
	WarningGood     WarningLevel = "good"
)

type Warning struct {
	Level   WarningLevel
	Message string
}

// WorkloadWarning compares planned work against the hours a student has.
func WorkloadWarning(totalHours, availableHours float64) Warning {
	th, ah := formatHours(totalHours), formatHours(availableHours)
	switch {
	case totalHours > availableHours*1.5:
		return Warning{WarningCritical, fmt.Sprintf("You have %sh of work but only %sh available. This is unrealistic. Consider prioritizing or requesting extensions.", th, ah)}
	case totalHours > availableHours:
		return Warning{WarningWarning, fmt.Sprintf("You have %sh of work and %sh available. This is tight. Focus on high-priority tasks.", th, ah)}
	case totalHours > availableHours*0.8:
		return Warning{WarningCaution, fmt.Sprintf("You have %sh of work and %sh available. Manageable, but stay focused.", th, ah)}
	default:
		return Warning{WarningGood, fmt.Sprintf("You have %sh of work and %sh available. You've got this!", th, ah)}
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatHours prints hours without trailing zeros: 2, 2.5, 0.3.
func formatHours(h float64) string {
	return fmt.Sprintf("%g", roundTenth(h))
}
