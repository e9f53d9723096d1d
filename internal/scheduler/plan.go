package scheduler

import (
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
)

// PlanLog is the part of a daily log the plan builder consumes.
type PlanLog struct {
	StressLevel    int
	AvailableHours float64
}

// PlanLogFrom extracts the plan inputs from a stored daily log.
func PlanLogFrom(l *domain.DailyLog) PlanLog {
	return PlanLog{StressLevel: l.StressLevel, AvailableHours: l.AvailableHours}
}

type RecoveryPlan struct {
	Strategy          string
	Band              CapacityBand
	Factor            float64
	AllowedHours      float64
	PlannedHours      float64
	EmergencyOverride bool
	RecommendedTasks  []ScoredTask
	AllTasksScored    []ScoredTask
}

// SubjectBacklogCounts counts the open (pending or missed) tasks per subject.
func SubjectBacklogCounts(tasks []domain.Task) map[string]int {
	counts := make(map[string]int)
	for i := range tasks {
		if tasks[i].IsOpen() {
			counts[tasks[i].SubjectID]++
		}
	}
	return counts
}

// BuildPlan scores every task it is given, ranks them and time-boxes a subset
// into the hours the student's stress level allows. The caller decides which
// tasks to pass; completed tasks are scored like any other.
func BuildPlan(tasks []domain.Task, log PlanLog, now time.Time) RecoveryPlan {
	backlog := SubjectBacklogCounts(tasks)
	weights := DefaultWeights()

	scored := make([]ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		scored = append(scored, ScoreTask(ScoringInput{
			Task:           t,
			SubjectBacklog: backlog[t.SubjectID],
			StressLevel:    log.StressLevel,
			Now:            now,
			Weights:        weights,
		}))
	}
	SortByPriority(scored)

	capacity := Capacity(log.StressLevel, log.AvailableHours)
	selected, planned := AllocateTasks(scored, capacity.AllowedHours)
	selected, override := applyEmergencyOverride(log.StressLevel, scored, selected)
	if override {
		planned = TaskCostHours
	}

	return RecoveryPlan{
		Strategy:          capacity.Strategy,
		Band:              capacity.Band,
		Factor:            capacity.Factor,
		AllowedHours:      capacity.AllowedHours,
		PlannedHours:      planned,
		EmergencyOverride: override,
		RecommendedTasks:  selected,
		AllTasksScored:    scored,
	}
}

// PriorityScores returns task ID -> score for every scored task in the plan.
func (p RecoveryPlan) PriorityScores() map[string]int {
	out := make(map[string]int, len(p.AllTasksScored))
	for _, st := range p.AllTasksScored {
		out[st.Task.ID] = st.PriorityScore
	}
	return out
}
