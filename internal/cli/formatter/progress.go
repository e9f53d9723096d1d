package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCapacity renders how much of the available time the plan may use,
// e.g. [████░░░░░░] 2h 30m of 5h.
func RenderCapacity(allowed, available float64, width int) string {
	width = max(width, 2)
	pct := 0.0
	if available > 0 {
		pct = min(max(allowed/available, 0), 1)
	}
	filled := int(pct * float64(width))

	style := StyleGreen
	switch {
	case pct < 0.33:
		style = StyleRed
	case pct < 0.66:
		style = StyleYellow
	}

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %s of %s", style.Render(bar), FormatHours(allowed), FormatHours(available))
}
