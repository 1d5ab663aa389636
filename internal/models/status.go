package models

import "strings"

// ReviewStatus is the state of a user's review on a PR
type ReviewStatus int

// ReviewStatus values.
const (
	ReviewStatusPending ReviewStatus = iota
	ReviewStatusApproved
	ReviewStatusChangesRequested
	ReviewStatusCommented
	ReviewStatusDismissed
)

// ParseReviewStatus maps a review state token from GitHub to a ReviewStatus.
// Anything unrecognized, including "PENDING" and "", is Pending.
func ParseReviewStatus(token string) ReviewStatus {
	switch strings.ToUpper(token) {
	case "APPROVED":
		return ReviewStatusApproved
	case "CHANGES_REQUESTED":
		return ReviewStatusChangesRequested
	case "COMMENTED":
		return ReviewStatusCommented
	case "DISMISSED":
		return ReviewStatusDismissed
	default:
		return ReviewStatusPending
	}
}

func (s ReviewStatus) String() string {
	switch s {
	case ReviewStatusApproved:
		return "APPROVED"
	case ReviewStatusChangesRequested:
		return "CHANGES_REQUESTED"
	case ReviewStatusCommented:
		return "COMMENTED"
	case ReviewStatusDismissed:
		return "DISMISSED"
	default:
		return "PENDING"
	}
}

// Marker returns the emoji shown next to a reviewer with this status.
// Dismissed reviews are shown like comments.
func (s ReviewStatus) Marker() Marker {
	switch s {
	case ReviewStatusApproved:
		return MarkerApproved
	case ReviewStatusChangesRequested:
		return MarkerBlocked
	case ReviewStatusCommented, ReviewStatusDismissed:
		return MarkerDiscussion
	default:
		return MarkerWaiting
	}
}

// CheckStatus is the status check rollup of a PR's head commit
type CheckStatus int

// CheckStatus values.
const (
	CheckStatusUnknown CheckStatus = iota
	CheckStatusSuccess
	CheckStatusFailure
	CheckStatusPending
)

// ParseCheckStatus maps a statusCheckRollup / combined status state.
// Empty means no checks ran; any other unrecognized value counts as a failure.
func ParseCheckStatus(token string) CheckStatus {
	switch strings.ToUpper(token) {
	case "":
		return CheckStatusUnknown
	case "SUCCESS":
		return CheckStatusSuccess
	case "PENDING", "EXPECTED", "STALE":
		return CheckStatusPending
	default:
		return CheckStatusFailure
	}
}

func (s CheckStatus) String() string {
	switch s {
	case CheckStatusSuccess:
		return "SUCCESS"
	case CheckStatusFailure:
		return "FAILURE"
	case CheckStatusPending:
		return "PENDING"
	default:
		return ""
	}
}

// Marker returns the emoji for the check status, empty when unknown
func (s CheckStatus) Marker() Marker {
	switch s {
	case CheckStatusSuccess:
		return MarkerApproved
	case CheckStatusFailure:
		return MarkerBlocked
	case CheckStatusPending:
		return MarkerRunning
	default:
		return ""
	}
}

// Marker is an emoji shown in the dashboard
type Marker string

// Markers.
const (
	MarkerApproved   Marker = "🟢"
	MarkerBlocked    Marker = "🔴"
	MarkerDiscussion Marker = "💬"
	MarkerWaiting    Marker = "⚠️"
	MarkerRunning    Marker = "⏳"

	MarkerAuthored Marker = "➡️"
	MarkerNew      Marker = "✉️"
	MarkerResolved Marker = "✅"
)
