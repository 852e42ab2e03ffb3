package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyops/internal/aggregate"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// HealthColor returns the style for a project health value.
func HealthColor(h domain.Health) lipgloss.Style {
	switch h {
	case domain.HealthRed:
		return StyleRed
	case domain.HealthYellow:
		return StyleYellow
	case domain.HealthGreen:
		return StyleGreen
	default:
		return StyleDim
	}
}

// HealthIndicator returns a colored dot and label such as "● Green".
func HealthIndicator(h domain.Health) string {
	if h == "" {
		return StyleDim.Render("● --")
	}
	return HealthColor(h).Render("● " + string(h))
}

// BandColor maps a utilization band onto the palette.
func BandColor(b aggregate.Band) lipgloss.Style {
	switch b {
	case aggregate.BandCritical:
		return StyleRed
	case aggregate.BandWarning:
		return StyleYellow
	default:
		return StyleGreen
	}
}

func PriorityBadge(p string) string {
	switch p {
	case string(domain.UpcomingCritical):
		return StyleRed.Render(p)
	case string(domain.UpcomingHigh):
		return StyleYellow.Render(p)
	case "":
		return StyleDim.Render("--")
	default:
		return StyleFg.Render(p)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
