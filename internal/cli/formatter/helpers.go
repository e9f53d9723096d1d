package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return box.Render(Header(title) + "\n\n" + content)
	}
	return box.Render(content)
}

// DueLabel describes a due date relative to now in whole days.
func DueLabel(due, now time.Time) string {
	days := int(math.Round(due.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0:
		return fmt.Sprintf("In %dw", days/7)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return fmt.Sprintf("%dw ago", -days/7)
	}
}

// DueLabelStyled colors DueLabel red when overdue or within two days and
// yellow within a week.
func DueLabelStyled(due, now time.Time) string {
	text := DueLabel(due, now)
	hours := due.Sub(now).Hours()

	switch {
	case hours <= 48:
		return StyleRed.Render(text)
	case hours <= 7*24:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// FormatHours renders fractional hours as "1h 30m".
func FormatHours(h float64) string {
	return FormatMinutes(int(math.Round(h * 60)))
}

func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
