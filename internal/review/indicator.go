package review

import "github.com/ryo246912/gh-pr-dashboard/internal/models"

// Bucket classifies a PR from the viewer's point of view
type Bucket int

// Buckets, in precedence order.
const (
	BucketAuthored Bucket = iota
	BucketNotReviewed
	BucketPendingReview
	BucketReviewed
)

// Summary counts PRs per bucket. Every PR lands in exactly one bucket.
type Summary struct {
	Authored      int `json:"authored" yaml:"authored"`
	Reviewed      int `json:"reviewed" yaml:"reviewed"`
	NotReviewed   int `json:"not_reviewed" yaml:"not_reviewed"`
	PendingReview int `json:"pending_review" yaml:"pending_review"`
}

// Total is the number of PRs summarized
func (s Summary) Total() int {
	return s.Authored + s.Reviewed + s.NotReviewed + s.PendingReview
}

// ViewerState returns the viewer's review state on pr, if any
func ViewerState(pr models.PullRequest, login string) (models.ReviewState, bool) {
	for _, state := range pr.ReviewStates {
		if state.User.Login == login {
			return state, true
		}
	}
	return models.ReviewState{}, false
}

// Classify puts pr into a bucket. Authorship wins over any review state.
func Classify(pr models.PullRequest, login string) Bucket {
	if pr.Author.Login == login {
		return BucketAuthored
	}
	state, ok := ViewerState(pr, login)
	switch {
	case !ok:
		return BucketNotReviewed
	case state.Status == models.ReviewStatusPending:
		return BucketPendingReview
	default:
		return BucketReviewed
	}
}

// Indicator returns the marker shown in front of pr for the viewer
func Indicator(pr models.PullRequest, login string) models.Marker {
	switch Classify(pr, login) {
	case BucketAuthored:
		return models.MarkerAuthored
	case BucketNotReviewed:
		return models.MarkerNew
	case BucketPendingReview:
		return models.ReviewStatusPending.Marker()
	default:
		return models.MarkerResolved
	}
}

// Summarize counts prs per bucket for the viewer
func Summarize(prs []models.PullRequest, login string) Summary {
	var s Summary
	for _, pr := range prs {
		switch Classify(pr, login) {
		case BucketAuthored:
			s.Authored++
		case BucketNotReviewed:
			s.NotReviewed++
		case BucketPendingReview:
			s.PendingReview++
		case BucketReviewed:
			s.Reviewed++
		}
	}
	return s
}
