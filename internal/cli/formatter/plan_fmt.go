package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/rebound/internal/scheduler"
)

// FormatPlan renders a recovery plan for the terminal. Recommended tasks are
// marked in the ranked table of every open task.
func FormatPlan(plan scheduler.RecoveryPlan, log scheduler.PlanLog, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Recovery plan"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Strategy:"), BandStyle(plan.Band).Render(plan.Strategy))
	fmt.Fprintf(&b, "%s %s %s\n", Dim("Stress:  "),
		StressStyle(log.StressLevel).Render(fmt.Sprintf("%d/10", log.StressLevel)),
		Dim(fmt.Sprintf("(capacity x%.1f)", plan.Factor)))
	fmt.Fprintf(&b, "%s %s\n", Dim("Budget:  "), RenderCapacity(plan.AllowedHours, log.AvailableHours, 20))
	if plan.EmergencyOverride {
		b.WriteString(StyleRed.Render("Emergency override: one task kept to hold the habit.") + "\n")
	}
	b.WriteString("\n")

	if len(plan.AllTasksScored) == 0 {
		b.WriteString(Dim("No open tasks.") + "\n")
		return b.String()
	}

	recommended := make(map[string]bool, len(plan.RecommendedTasks))
	for _, st := range plan.RecommendedTasks {
		recommended[st.Task.ID] = true
	}

	rows := make([][]string, 0, len(plan.AllTasksScored))
	for i, st := range plan.AllTasksScored {
		mark := " "
		if recommended[st.Task.ID] {
			mark = StyleGreen.Render("▶")
		}
		rows = append(rows, []string{
			mark,
			strconv.Itoa(i + 1),
			st.Task.Title,
			DueLabelStyled(st.Task.DueDate, now),
			fmt.Sprintf("%.0f%%", st.Task.Weight),
			Bold(strconv.Itoa(st.PriorityScore)),
		})
	}
	b.WriteString(Table{
		Headers:    []string{"", "#", "TASK", "DUE", "WEIGHT", "SCORE"},
		Rows:       rows,
		RightAlign: map[int]bool{1: true, 4: true, 5: true},
	}.Render())

	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d of %d tasks planned, %s of %s",
		len(plan.RecommendedTasks), len(plan.AllTasksScored),
		FormatHours(plan.PlannedHours), FormatHours(plan.AllowedHours))))
	return b.String()
}
