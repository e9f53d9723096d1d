package formatter

import (
	"strconv"

	"github.com/alexanderramin/rebound/internal/contract"
	"github.com/alexanderramin/rebound/internal/domain"
)

// FormatRoster renders students in the order given, which the roster service
// already sorts most at risk first.
func FormatRoster(entries []contract.RosterEntry) string {
	if len(entries) == 0 {
		return Dim("No students.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		stress := Dim("--")
		if e.LatestStress != nil {
			stress = StressStyle(*e.LatestStress).Render(strconv.Itoa(*e.LatestStress))
		}
		rows = append(rows, []string{
			RiskIndicator(domain.RiskLevel(e.RiskLevel)),
			e.Name,
			Dim(e.Email),
			stress,
			strconv.Itoa(e.MissedTasks),
			strconv.Itoa(e.OverdueTasks),
		})
	}
	return Table{
		Headers:    []string{"RISK", "STUDENT", "EMAIL", "STRESS", "MISSED", "OVERDUE"},
		Rows:       rows,
		RightAlign: map[int]bool{3: true, 4: true, 5: true},
	}.Render()
}
