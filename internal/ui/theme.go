package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/ryo246912/gh-pr-dashboard/internal/models"
)

// Theme holds the styles the report is drawn with
type Theme struct {
	Bold      *color.Color
	Highlight *color.Color // the viewer, when nothing is asked of them
	Attention *color.Color // the viewer, when a review is pending
	Muted     *color.Color
	Label     func(models.Label) string
}

// DefaultTheme colors output unless color.NoColor is set (no TTY, NO_COLOR)
func DefaultTheme() Theme {
	return Theme{
		Bold:      color.New(color.Bold),
		Highlight: color.New(color.FgHiGreen),
		Attention: color.New(color.Bold, color.FgHiYellow),
		Muted:     color.New(color.FgHiBlack),
		Label:     labelChip,
	}
}

// PlainTheme never emits escape codes
func PlainTheme() Theme {
	return Theme{
		Bold:      plain(color.Bold),
		Highlight: plain(color.FgHiGreen),
		Attention: plain(color.Bold, color.FgHiYellow),
		Muted:     plain(color.FgHiBlack),
		Label:     func(l models.Label) string { return l.Name },
	}
}

func plain(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.DisableColor()
	return c
}

// labelChip draws the label name on its own background color, with black
// or white text depending on how light the background is. Labels with a
// malformed color are drawn as plain text.
func labelChip(l models.Label) string {
	rgb, ok := l.RGB()
	if color.NoColor || !ok {
		return l.Name
	}
	foreground := lipgloss.Color("#ffffff")
	if isLight(rgb) {
		foreground = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#" + rgb.Hex())).
		Foreground(foreground).
		Render(l.Name)
}

// isLight uses the ITU-R BT.601 luma weights
func isLight(c models.RGB) bool {
	luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return luma > 150
}
