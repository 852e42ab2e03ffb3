package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyops/internal/aggregate"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderGauge renders a utilization gauge like [████░░░░]  45%. pct is on a
// 0..100 scale and is clamped; the bar takes the band's color.
func RenderGauge(pct float64, band aggregate.Band, width int) string {
	pct = min(max(pct, 0), 100)
	if width < 2 {
		width = 2
	}

	filled := min(int(pct/100*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	return fmt.Sprintf("[%s] %3.0f%%", BandColor(band).Render(bar), pct)
}

// RenderProgress renders project progress (0..100) as a compact bar.
// Colors follow completion: red under a third, yellow under two thirds.
func RenderProgress(progress int, width int) string {
	pct := float64(min(max(progress, 0), 100))
	if width < 2 {
		width = 2
	}
	filled := int(pct / 100 * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}
	return fmt.Sprintf("%s %3d%%", style.Render(bar), int(pct))
}
