package formatter

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
)

// SplitBar renders the train share of a train/validation split as a static
// bar followed by both counts, e.g. "████████░ 90% train · 10% val".
func SplitBar(train, val, width int) string {
	total := train + val
	pct, valPct := 0.0, 0.0
	if total > 0 {
		pct = float64(train) / float64(total)
		valPct = float64(val) / float64(total)
	}
	if width < 2 {
		width = 2
	}

	bar := progress.New(
		progress.WithSolidFill(string(ColorGreen)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(ColorPurple)

	return fmt.Sprintf("%s %s train · %s val",
		bar.ViewAs(pct),
		percent(pct),
		percent(valPct),
	)
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
