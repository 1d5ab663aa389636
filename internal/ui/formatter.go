package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/mattn/go-runewidth"
)

// PadRight fills str with spaces up to width terminal cells. Wider strings
// are returned unchanged.
func PadRight(str string, width int) string {
	return runewidth.FillRight(str, width)
}

// Truncate shortens str to at most width terminal cells, ending in "..."
func Truncate(str string, width int) string {
	return runewidth.Truncate(str, width, "...")
}

// FormatElapsed renders the time between since and now in whole hours,
// rounded half away from zero
func FormatElapsed(since, now time.Time) string {
	hours := int(math.Round(now.Sub(since).Hours()))
	return fmt.Sprintf("%dh ago", hours)
}

// maxDisplayWidth returns the widest string in terminal cells
func maxDisplayWidth(strs []string) int {
	width := 0
	for _, s := range strs {
		if w := runewidth.StringWidth(s); w > width {
			width = w
		}
	}
	return width
}
