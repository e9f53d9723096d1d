package scheduler

import "sort"

// SortByPriority orders scored tasks by priority score, highest first.
// The sort is stable: tasks with equal scores keep their input order.
func SortByPriority(tasks []ScoredTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].PriorityScore > tasks[j].PriorityScore
	})
}
