// Package review reconciles review requests and submitted reviews into one
// current state per reviewer, and derives the viewer's indicators from it.
package review

import (
	"log/slog"
	"sort"

	"github.com/ryo246912/gh-pr-dashboard/internal/models"
)

// Reconcile merges review-request events and submitted reviews for a single
// PR into one ReviewState per login, sorted by login.
//
// Requests seed a Pending state (last request for a login wins). Submitted
// reviews are then applied in the order given and always replace whatever
// is there, so the last submission for a login wins regardless of its
// timestamp. Events without an identifiable user are ignored.
func Reconcile(requests []models.RawReviewRequest, submissions []models.RawReview) []models.ReviewState {
	states := make(map[string]models.ReviewState, len(requests)+len(submissions))

	for _, req := range requests {
		if !req.RequestedReviewer.Identified() {
			continue
		}
		user := req.RequestedReviewer.User()
		states[user.Login] = models.ReviewState{
			User:      user,
			Status:    models.ReviewStatusPending,
			Timestamp: req.RequestedAt,
		}
	}

	for _, sub := range submissions {
		if !sub.Author.Identified() {
			continue
		}
		user := sub.Author.User()
		states[user.Login] = models.ReviewState{
			User:      user,
			Status:    models.ParseReviewStatus(sub.State),
			Timestamp: sub.SubmittedAt,
		}
	}

	result := make([]models.ReviewState, 0, len(states))
	for _, state := range states {
		result = append(result, state)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].User.Login < result[j].User.Login
	})
	return result
}

// BuildPullRequest converts a raw record and reconciles its review states
func BuildPullRequest(raw models.RawPullRequest) models.PullRequest {
	author := models.User{Login: models.GhostLogin}
	if raw.Author.Identified() {
		author = raw.Author.User()
	}

	labels := make([]models.Label, 0, len(raw.Labels))
	for _, l := range raw.Labels {
		label := models.Label{Name: l.Name, Color: l.Color}
		if _, ok := label.RGB(); !ok {
			slog.Debug("label color is malformed, drawing it without a background", "pr", raw.Number, "label", l.Name, "color", l.Color)
		}
		labels = append(labels, label)
	}

	return models.PullRequest{
		Number:       raw.Number,
		Title:        raw.Title,
		URL:          raw.URL,
		IsDraft:      raw.IsDraft,
		Labels:       labels,
		Author:       author,
		ReviewStates: Reconcile(raw.ReviewRequests, raw.LatestReviews),
		Checks:       models.ParseCheckStatus(raw.CheckState),
	}
}

// BuildPullRequests converts every raw record, keeping source order
func BuildPullRequests(raws []models.RawPullRequest) []models.PullRequest {
	prs := make([]models.PullRequest, 0, len(raws))
	for _, raw := range raws {
		prs = append(prs, BuildPullRequest(raw))
	}
	return prs
}
