package scheduler

import "github.com/alexanderramin/rebound/internal/domain"

type RiskInput struct {
	// StressHistory is ordered oldest to newest.
	StressHistory     []int
	MissedTasksCount  int
	OverdueTasksCount int
	BacklogDepthDays  int
}

// CurrentStress returns the newest stress entry, or 0 with no history.
func (in RiskInput) CurrentStress() int {
	if len(in.StressHistory) == 0 {
		return 0
	}
	return in.StressHistory[len(in.StressHistory)-1]
}

// AssessRisk classifies a student with ordered guards; the first match wins.
// The bands overlap, so the order below is part of the contract.
func AssessRisk(input RiskInput) domain.RiskLevel {
	stress := input.CurrentStress()

	switch {
	case stress > 8 && (input.MissedTasksCount > 5 || input.BacklogDepthDays > 7):
		return domain.RiskCritical
	case input.MissedTasksCount >= 3 || stress > 7:
		return domain.RiskHigh
	case input.MissedTasksCount >= 1 || (stress >= 5 && stress <= 7):
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// RiskPriority returns a sort priority (lower = more urgent).
func RiskPriority(r domain.RiskLevel) int {
	switch r {
	case domain.RiskCritical:
		return 0
	case domain.RiskHigh:
		return 1
	case domain.RiskMedium:
		return 2
	default:
		return 3
	}
}
