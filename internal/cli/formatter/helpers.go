package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDays describes d relative to today, e.g. "In 3d" or "2w ago".
func RelativeDays(d domain.Date, today time.Time) string {
	if d.IsZero() {
		return "--"
	}
	diff := d.Sub(domain.NewDate(today).Time)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DeadlineStyled renders a deadline with urgency coloring: red when due
// within two days or past, yellow within a week.
func DeadlineStyled(d domain.Date, today time.Time) string {
	if d.IsZero() {
		return Dim("--")
	}
	days := int(math.Round(d.Sub(domain.NewDate(today).Time).Hours() / 24))
	style := StyleFg
	switch {
	case days <= 2:
		style = StyleRed
	case days <= 7:
		style = StyleYellow
	}
	return style.Render(d.String()) + " " + Dim("("+RelativeDays(d, today)+")")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// OrDash renders s, or a dim placeholder when it is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
