package scheduler

import (
	"math"

	"github.com/alexanderramin/rebound/internal/domain"
)

var defaultTypeMinutes = map[domain.TaskType]int{
	domain.TypeAssignment: 90,
	domain.TypeQuiz:       30,
	domain.TypeExam:       120,
	domain.TypeProject:    180,
	domain.TypeLab:        120,
	domain.TypeReading:    60,
	domain.TypePractice:   45,
	domain.TypeOther:      60,
}

// minHistorySamples is how many past tasks of a type are needed before the
// student's own average replaces the default estimate.
const minHistorySamples = 3

// TimeSample is the time a student actually spent on a finished task.
type TimeSample struct {
	Type    domain.TaskType
	Minutes int
}

// EstimateTaskMinutes suggests how long a task will take.
func EstimateTaskMinutes(task domain.Task, history []TimeSample) int {
	estimate, ok := defaultTypeMinutes[task.Type]
	if !ok {
		estimate = domain.DefaultEstimatedMin
	}
	if task.Weight > 0 {
		estimate = int(math.Round(float64(estimate) * (1 + task.Weight/100)))
	}

	total, n := 0, 0
	for _, h := range history {
		if h.Type == task.Type {
			total += h.Minutes
			n++
		}
	}
	if n >= minHistorySamples {
		estimate = int(math.Round(float64(total) / float64(n)))
	}
	return estimate
}
