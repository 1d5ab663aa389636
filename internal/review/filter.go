package review

import "github.com/ryo246912/gh-pr-dashboard/internal/models"

// FilterDrafts drops draft PRs unless showDrafts is set
func FilterDrafts(prs []models.PullRequest, showDrafts bool) []models.PullRequest {
	if showDrafts {
		return prs
	}
	kept := make([]models.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if !pr.IsDraft {
			kept = append(kept, pr)
		}
	}
	return kept
}

// FilterReviewing keeps only PRs where the viewer has a review state
func FilterReviewing(prs []models.PullRequest, login string) []models.PullRequest {
	kept := make([]models.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if _, ok := ViewerState(pr, login); ok {
			kept = append(kept, pr)
		}
	}
	return kept
}
