package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
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
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// ShortID returns the first 8 characters of a run id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Size renders a byte count in SI units, e.g. "1.2 MB".
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Count renders n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Ago renders t relative to now, e.g. "3 hours ago".
func Ago(t time.Time, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// Digest shortens a hex digest for tables.
func Digest(hex string) string {
	if len(hex) > 12 {
		return hex[:12]
	}
	return hex
}

// Duration rounds d for display.
func Duration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
