package models

import "time"

// RawUser is a user as reported by a data source. A nil *RawUser, or one
// with an empty login, is an account we cannot identify (deleted, bot, team).
type RawUser struct {
	Login string
	Name  string
}

// RawReview is a submitted review ("latest reviews")
type RawReview struct {
	Author      *RawUser
	State       string
	SubmittedAt time.Time
}

// RawReviewRequest is a review-requested timeline event
type RawReviewRequest struct {
	RequestedReviewer *RawUser
	RequestedAt       time.Time
}

// RawLabel keeps the color as the source sent it
type RawLabel struct {
	Name  string
	Color string
}

// RawPullRequest is one open PR before reconciliation
type RawPullRequest struct {
	Number         int
	Title          string
	URL            string
	IsDraft        bool
	Labels         []RawLabel
	Author         *RawUser
	LatestReviews  []RawReview
	ReviewRequests []RawReviewRequest
	CheckState     string
}

// RawDashboard is everything a data source returns for one repository
type RawDashboard struct {
	ViewerLogin  string
	PullRequests []RawPullRequest
}

// Identified reports whether u names a real account
func (u *RawUser) Identified() bool {
	return u != nil && u.Login != ""
}

// User converts to a User. The receiver must be identified.
func (u *RawUser) User() User {
	return User{Login: u.Login, Name: u.Name}
}
