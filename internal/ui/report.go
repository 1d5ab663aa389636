package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ryo246912/gh-pr-dashboard/internal/models"
	"github.com/ryo246912/gh-pr-dashboard/internal/review"
	"github.com/ryo246912/gh-pr-dashboard/internal/service"
)

// RenderOptions selects the optional parts of the text report
type RenderOptions struct {
	PrintReviewers bool
	PrintLabels    bool
}

// Renderer writes the text dashboard
type Renderer struct {
	Out     io.Writer
	Theme   Theme
	Options RenderOptions
	// Now defaults to time.Now
	Now func() time.Time
}

// Render writes every entry followed by the viewer summary
func (r *Renderer) Render(d *service.Dashboard) error {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	var sb strings.Builder
	for _, entry := range d.Entries {
		r.writeEntry(&sb, entry, d.Viewer, now)
	}
	r.writeSummary(&sb, d.Summary)

	if _, err := io.WriteString(r.Out, sb.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *Renderer) writeEntry(sb *strings.Builder, entry service.Entry, viewer string, now time.Time) {
	pr := entry.PullRequest

	author := fmt.Sprintf("[%s]", pr.Author.DisplayName())
	if pr.Author.Login == viewer {
		author = r.Theme.Highlight.Sprint(author)
	}
	parts := []string{
		r.Theme.Bold.Sprintf("%s #%d: %s", entry.Indicator, pr.Number, pr.Title),
		author,
	}
	if r.Options.PrintLabels {
		for _, label := range pr.Labels {
			parts = append(parts, r.Theme.Label(label))
		}
	}
	sb.WriteString(strings.Join(parts, " "))
	sb.WriteString("\n")

	sb.WriteString("   ")
	sb.WriteString(r.Theme.Muted.Sprint(pr.URL))
	if marker := pr.Checks.Marker(); marker != "" {
		sb.WriteString(" ")
		sb.WriteString(string(marker))
	}
	sb.WriteString("\n")

	if r.Options.PrintReviewers {
		r.writeReviewers(sb, pr, viewer, now)
	}
}

func (r *Renderer) writeReviewers(sb *strings.Builder, pr models.PullRequest, viewer string, now time.Time) {
	names := make([]string, 0, len(pr.ReviewStates))
	for _, state := range pr.ReviewStates {
		names = append(names, state.User.DisplayName())
	}
	width := maxDisplayWidth(names)

	for i, state := range pr.ReviewStates {
		pointer := "  "
		line := fmt.Sprintf("%s (%s)", PadRight(names[i], width), FormatElapsed(state.Timestamp, now))
		if state.User.Login == viewer {
			pointer = string(models.MarkerAuthored)
			if state.Status == models.ReviewStatusPending {
				line = r.Theme.Attention.Sprint(line)
			} else {
				line = r.Theme.Highlight.Sprint(line)
			}
		}
		fmt.Fprintf(sb, "  %s %s  %s\n", pointer, state.Status.Marker(), line)
	}
	sb.WriteString("\n")
}

func (r *Renderer) writeSummary(sb *strings.Builder, s review.Summary) {
	pending := fmt.Sprintf("%d pending review", s.PendingReview)
	if s.PendingReview > 0 {
		pending = r.Theme.Attention.Sprint(pending)
	}
	fmt.Fprintf(sb, "\n∑ %d author | %d reviewed | %d not reviewed | %s\n\n",
		s.Authored, s.Reviewed, s.NotReviewed, pending)
}
