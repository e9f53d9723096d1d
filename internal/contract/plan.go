package contract

import "github.com/alexanderramin/rebound/internal/scheduler"

// ScoreBreakdownView exposes the four weighted factors behind a priority score.
type ScoreBreakdownView struct {
	Weight        float64 `json:"weight"`
	Deadline      float64 `json:"deadline"`
	Backlog       float64 `json:"backlog"`
	Comfort       float64 `json:"comfort"`
	DaysRemaining int     `json:"daysRemaining"`
}

type ScoredTaskView struct {
	TaskView
	Breakdown ScoreBreakdownView `json:"breakdown"`
}

type PlanView struct {
	Strategy          string           `json:"strategy"`
	Band              string           `json:"band"`
	Factor            float64          `json:"factor"`
	AllowedHours      float64          `json:"allowedHours"`
	PlannedHours      float64          `json:"plannedHours"`
	EmergencyOverride bool             `json:"emergencyOverride"`
	RecommendedTasks  []ScoredTaskView `json:"recommendedTasks"`
	AllTasksScored    []ScoredTaskView `json:"allTasksScored"`
}

func NewPlanView(p scheduler.RecoveryPlan) *PlanView {
	return &PlanView{
		Strategy:          p.Strategy,
		Band:              string(p.Band),
		Factor:            p.Factor,
		AllowedHours:      p.AllowedHours,
		PlannedHours:      p.PlannedHours,
		EmergencyOverride: p.EmergencyOverride,
		RecommendedTasks:  newScoredViews(p.RecommendedTasks),
		AllTasksScored:    newScoredViews(p.AllTasksScored),
	}
}

func newScoredViews(tasks []scheduler.ScoredTask) []ScoredTaskView {
	out := make([]ScoredTaskView, 0, len(tasks))
	for i := range tasks {
		st := &tasks[i]
		v := ScoredTaskView{
			TaskView: NewTaskView(&st.Task),
			Breakdown: ScoreBreakdownView{
				Weight:        st.Breakdown.Weight,
				Deadline:      st.Breakdown.Deadline,
				Backlog:       st.Breakdown.Backlog,
				Comfort:       st.Breakdown.Comfort,
				DaysRemaining: st.Breakdown.DaysRemaining,
			},
		}
		v.PriorityScore = st.PriorityScore
		out = append(out, v)
	}
	return out
}
