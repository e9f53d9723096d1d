package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
)

// ScoringWeights are the fixed coefficients of the recovery priority score.
type ScoringWeights struct {
	Weight   float64
	Deadline float64
	Backlog  float64
	Comfort  float64
}

// DefaultWeights returns the weights every stored priority score was computed
// with. Changing them changes plan outcomes for existing students.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Weight:   0.35,
		Deadline: 0.30,
		Backlog:  0.20,
		Comfort:  0.15,
	}
}

const maxFactor = 100.0

type ScoringInput struct {
	Task           domain.Task
	SubjectBacklog int // open tasks in the same subject, this one included
	StressLevel    int // 1-10
	Now            time.Time
	Weights        ScoringWeights
}

// ScoreBreakdown holds the four normalized factors (each 0-100) behind a score.
type ScoreBreakdown struct {
	Weight        float64
	Deadline      float64
	Backlog       float64
	Comfort       float64
	DaysRemaining int
}

type ScoredTask struct {
	Task          domain.Task
	PriorityScore int
	Breakdown     ScoreBreakdown
}

// ScoreTask computes the recovery priority score of a single task.
func ScoreTask(input ScoringInput) ScoredTask {
	days := CalendarDaysBetween(input.Now, input.Task.DueDate)
	b := ScoreBreakdown{
		Weight:        weightFactor(input.Task.Weight),
		Deadline:      deadlineFactor(days),
		Backlog:       backlogFactor(input.SubjectBacklog),
		Comfort:       comfortFactor(input.StressLevel),
		DaysRemaining: days,
	}

	w := input.Weights
	raw := b.Weight*w.Weight + b.Deadline*w.Deadline + b.Backlog*w.Backlog + b.Comfort*w.Comfort
	score := int(math.Round(raw))
	if score < 0 {
		score = 0
	}

	return ScoredTask{
		Task:          input.Task,
		PriorityScore: score,
		Breakdown:     b,
	}
}

func weightFactor(weight float64) float64 {
	return math.Max(0, math.Min(maxFactor, weight))
}

// deadlineFactor decays reciprocally with the days left and saturates at 100
// once the task is due today or overdue.
func deadlineFactor(daysRemaining int) float64 {
	if daysRemaining < 0 {
		return maxFactor
	}
	return math.Min(maxFactor, maxFactor/float64(daysRemaining+1))
}

func backlogFactor(count int) float64 {
	return math.Min(maxFactor, float64(count)*10)
}

// comfortFactor is high when stress is low: calm students get momentum work
// pushed up, stressed students let deadline and weight dominate.
func comfortFactor(stress int) float64 {
	return float64(10-stress) * 10
}
