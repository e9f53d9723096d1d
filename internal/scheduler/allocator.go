package scheduler

// TaskCostHours is the time every task is assumed to take when filling a plan.
// The per-task EstimatedMin field is deliberately not consulted here.
const TaskCostHours = 1.0

// emergencyStress is the stress level from which a plan always carries at
// least one task.
const emergencyStress = 9

// AllocateTasks walks the sorted tasks once and keeps each task whose fixed
// cost still fits the remaining allowance. A task that does not fit is skipped
// and never reconsidered. Returns the selected tasks and the hours they use.
func AllocateTasks(sorted []ScoredTask, allowedHours float64) ([]ScoredTask, float64) {
	selected := make([]ScoredTask, 0, len(sorted))
	planned := 0.0
	for _, t := range sorted {
		if planned+TaskCostHours <= allowedHours {
			selected = append(selected, t)
			planned += TaskCostHours
		}
	}
	return selected, planned
}

// applyEmergencyOverride forces the top task into an empty selection when the
// student is at emergency stress, so there is always one actionable item.
func applyEmergencyOverride(stressLevel int, sorted, selected []ScoredTask) ([]ScoredTask, bool) {
	if stressLevel >= emergencyStress && len(selected) == 0 && len(sorted) > 0 {
		return []ScoredTask{sorted[0]}, true
	}
	return selected, false
}
