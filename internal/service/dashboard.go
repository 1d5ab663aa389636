package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ryo246912/gh-pr-dashboard/internal/github"
	"github.com/ryo246912/gh-pr-dashboard/internal/models"
	"github.com/ryo246912/gh-pr-dashboard/internal/review"
)

// Options controls which PRs make it onto the dashboard
type Options struct {
	ShowDrafts      bool
	HideNotReviewer bool
}

// Entry is one PR as seen by the viewer
type Entry struct {
	PullRequest models.PullRequest
	Indicator   models.Marker
	// ViewerState is nil when the viewer has no review state on the PR
	ViewerState *models.ReviewState
}

// Dashboard is the fully computed view for one viewer and repository
type Dashboard struct {
	Viewer     string
	Repository string
	Entries    []Entry
	Summary    review.Summary
}

// DashboardService contains the business logic
type DashboardService struct {
	source github.DataSource
	repo   github.RepositoryInfo
	logger *slog.Logger
}

// NewDashboardService creates a new service instance
func NewDashboardService(source github.DataSource, repo github.RepositoryInfo, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		source: source,
		repo:   repo,
		logger: logger,
	}
}

// Load fetches the repository's open PRs once and computes the dashboard
func (s *DashboardService) Load(ctx context.Context, opts Options) (*Dashboard, error) {
	raw, err := s.source.FetchDashboard(ctx, s.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
	}

	prs := review.BuildPullRequests(raw.PullRequests)
	fetched := len(prs)

	prs = review.FilterDrafts(prs, opts.ShowDrafts)
	if opts.HideNotReviewer {
		prs = review.FilterReviewing(prs, raw.ViewerLogin)
	}
	s.logger.Debug("filtered pull requests", "fetched", fetched, "shown", len(prs))

	return s.buildDashboard(raw.ViewerLogin, prs), nil
}

func (s *DashboardService) buildDashboard(viewer string, prs []models.PullRequest) *Dashboard {
	entries := make([]Entry, 0, len(prs))
	for _, pr := range prs {
		entry := Entry{
			PullRequest: pr,
			Indicator:   review.Indicator(pr, viewer),
		}
		if state, ok := review.ViewerState(pr, viewer); ok {
			entry.ViewerState = &state
		}
		entries = append(entries, entry)
	}

	return &Dashboard{
		Viewer:     viewer,
		Repository: fmt.Sprintf("%s/%s", s.repo.GetOwner(), s.repo.GetName()),
		Entries:    entries,
		Summary:    review.Summarize(prs, viewer),
	}
}
