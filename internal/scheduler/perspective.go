package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
)

type PerspectivePriority string

const (
	PerspectiveCritical PerspectivePriority = "critical"
	PerspectiveHigh     PerspectivePriority = "high"
	PerspectiveMedium   PerspectivePriority = "medium"
	PerspectiveLow      PerspectivePriority = "low"
	PerspectiveNormal   PerspectivePriority = "normal"
)

// urgentWindow is how close a due date must be for a task to count as urgent.
const urgentWindow = 24 * time.Hour

// highPriorityWeight is the weight from which a task is called high priority.
const highPriorityWeight = 20

type Perspective struct {
	Priority      PerspectivePriority
	Situation     string
	Reality       string
	Suggestions   []string
	Encouragement string
}

// AnalyzePerspective reframes a student's stress against their actual
// workload. Cases are checked in order: critical, high, medium, low, normal.
func AnalyzePerspective(stressLevel int, tasks []domain.Task, availableHours float64, now time.Time) Perspective {
	var pending []domain.Task
	for _, t := range tasks {
		if t.Status != domain.TaskCompleted {
			pending = append(pending, t)
		}
	}

	totalMin, urgent, highPriority := 0, 0, 0
	for i := range pending {
		totalMin += pending[i].EffectiveEstimatedMin()
		if pending[i].DueDate.Sub(now) <= urgentWindow {
			urgent++
		}
		if pending[i].Weight >= highPriorityWeight {
			highPriority++
		}
	}
	totalHours := float64(totalMin) / 60

	switch {
	case stressLevel >= 8 && urgent > 3:
		return Perspective{
			Priority:  PerspectiveCritical,
			Situation: fmt.Sprintf("You're feeling very stressed (%d/10) with %d urgent tasks.", stressLevel, urgent),
			Reality:   "This is a genuinely challenging situation. Your stress is valid.",
			Suggestions: []string{
				"Identify the 1-2 most critical tasks that MUST be done today",
				"For other tasks, reach out to instructors about extensions",
				"Take a 5-minute breathing break before starting",
				"Consider asking a friend or tutor for help",
			},
			Encouragement: "You're in a tough spot, but you can get through this. Focus on what's truly essential.",
		}
	case totalHours > availableHours*2:
		return Perspective{
			Priority:  PerspectiveHigh,
			Situation: fmt.Sprintf("You have %.1fh of work but only %sh available.", totalHours, formatHours(availableHours)),
			Reality:   "Mathematically, you can't complete everything. That's okay - let's prioritize.",
			Suggestions: []string{
				fmt.Sprintf("Focus on high-weightage tasks first (%d tasks)", highPriority),
				"Identify tasks where you can request extensions",
				"Break down large tasks into smaller chunks",
				`Consider which tasks you can do "good enough" vs perfect`,
			},
			Encouragement: "Quality over quantity. Do your best work on what matters most.",
		}
	case stressLevel >= 7 && len(pending) <= 3:
		return Perspective{
			Priority:  PerspectiveMedium,
			Situation: fmt.Sprintf("You're stressed (%d/10) but only have %d tasks.", stressLevel, len(pending)),
			Reality:   "Your workload is manageable. The stress might be coming from perfectionism or other factors.",
			Suggestions: []string{
				"Remember: done is better than perfect",
				"Break tasks into 25-minute focused sessions",
				"Take breaks between tasks",
				"Consider if non-academic factors are adding to stress",
			},
			Encouragement: "You've got this. The workload is reasonable - trust yourself.",
		}
	case totalHours <= availableHours && stressLevel <= 5:
		return Perspective{
			Priority:  PerspectiveLow,
			Situation: fmt.Sprintf("You have %d tasks and %sh available.", len(pending), formatHours(availableHours)),
			Reality:   "Your schedule is realistic and manageable.",
			Suggestions: []string{
				"Create a simple schedule for when you'll tackle each task",
				"Start with the hardest task while you're fresh",
				"Build in buffer time for unexpected issues",
				"Remember to take breaks",
			},
			Encouragement: "You're in a good position. Stay organized and you'll do great!",
		}
	default:
		return Perspective{
			Priority:  PerspectiveNormal,
			Situation: fmt.Sprintf("You have %d pending tasks with stress at %d/10.", len(pending), stressLevel),
			Reality:   "This is a normal academic workload. You can handle this.",
			Suggestions: []string{
				"Prioritize tasks by due date and importance",
				"Use the Pomodoro technique (25 min work, 5 min break)",
				"Start with one task and build momentum",
				"Celebrate small wins along the way",
			},
			Encouragement: "You're doing fine. One task at a time, and you'll get through it.",
		}
	}
}
