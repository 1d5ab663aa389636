package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryo246912/gh-pr-dashboard/internal/models"
)

func TestIsUserAccount(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		userType string
		expected bool
	}{
		{
			name:     "valid user",
			login:    "johndoe",
			userType: "User",
			expected: true,
		},
		{
			name:     "bot user should be excluded",
			login:    "dependabot[bot]",
			userType: "Bot",
			expected: false,
		},
		{
			name:     "user with bot type should be excluded",
			login:    "someuser",
			userType: "Bot",
			expected: false,
		},
		{
			name:     "empty login should be excluded",
			login:    "",
			userType: "User",
			expected: false,
		},
		{
			name:     "user ending with [bot] should be excluded",
			login:    "github-actions[bot]",
			userType: "User",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isUserAccount(tt.login, tt.userType)
			if got != tt.expected {
				t.Errorf("isUserAccount(%q, %q) = %v, want %v",
					tt.login, tt.userType, got, tt.expected)
			}
		})
	}
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

func newTestRESTSource(t *testing.T, mux *http.ServeMux) *RESTSource {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return NewRESTSourceFromClient(client, discardLogger())
}

func TestRESTSource_FetchDashboard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", jsonHandler(`{"login": "carol", "type": "User"}`))
	mux.HandleFunc("/repos/acme/widgets/pulls", jsonHandler(`[
		{"number": 1, "title": "Add feature", "html_url": "https://github.com/acme/widgets/pull/1", "draft": false,
		 "user": {"login": "alice", "type": "User"},
		 "labels": [{"name": "bug", "color": "d73a4a"}],
		 "head": {"sha": "abc123"}},
		{"number": 2, "title": "Bump deps", "html_url": "https://github.com/acme/widgets/pull/2", "draft": true,
		 "user": {"login": "dependabot[bot]", "type": "Bot"},
		 "labels": [],
		 "head": {"sha": "def456"}}
	]`))
	mux.HandleFunc("/repos/acme/widgets/pulls/1/reviews", jsonHandler(`[
		{"user": {"login": "bob", "type": "User"}, "state": "CHANGES_REQUESTED", "submitted_at": "2024-05-01T10:00:00Z"},
		{"user": {"login": "bob", "type": "User"}, "state": "APPROVED", "submitted_at": "2024-05-01T12:00:00Z"},
		{"user": {"login": "lint[bot]", "type": "Bot"}, "state": "COMMENTED", "submitted_at": "2024-05-01T12:30:00Z"}
	]`))
	mux.HandleFunc("/repos/acme/widgets/issues/1/timeline", jsonHandler(`[
		{"event": "labeled", "created_at": "2024-05-01T08:00:00Z"},
		{"event": "review_requested", "created_at": "2024-05-01T09:00:00Z", "requested_reviewer": {"login": "carol", "type": "User"}},
		{"event": "review_requested", "created_at": "2024-05-01T09:01:00Z", "requested_team": {"name": "core"}}
	]`))
	mux.HandleFunc("/repos/acme/widgets/commits/abc123/status", jsonHandler(`{"state": "success", "total_count": 2}`))
	mux.HandleFunc("/repos/acme/widgets/commits/abc123/check-runs", jsonHandler(`{"total_count": 0, "check_runs": []}`))
	mux.HandleFunc("/repos/acme/widgets/pulls/2/reviews", jsonHandler(`[]`))
	mux.HandleFunc("/repos/acme/widgets/issues/2/timeline", jsonHandler(`[]`))
	mux.HandleFunc("/repos/acme/widgets/commits/def456/status", jsonHandler(`{"state": "pending", "total_count": 0}`))
	mux.HandleFunc("/repos/acme/widgets/commits/def456/check-runs", jsonHandler(`{"total_count": 0, "check_runs": []}`))

	source := newTestRESTSource(t, mux)
	got, err := source.FetchDashboard(context.Background(), &MockRepository{Host: "github.com", Owner: "acme", Name: "widgets"})
	require.NoError(t, err)

	assert.Equal(t, "carol", got.ViewerLogin)
	require.Len(t, got.PullRequests, 2)

	first := got.PullRequests[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "https://github.com/acme/widgets/pull/1", first.URL)
	assert.Equal(t, &models.RawUser{Login: "alice"}, first.Author)
	assert.Equal(t, []models.RawLabel{{Name: "bug", Color: "d73a4a"}}, first.Labels)
	assert.Equal(t, "SUCCESS", first.CheckState)

	require.Len(t, first.LatestReviews, 3)
	assert.Equal(t, "CHANGES_REQUESTED", first.LatestReviews[0].State)
	assert.Equal(t, "APPROVED", first.LatestReviews[1].State)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), first.LatestReviews[1].SubmittedAt.UTC())
	assert.Nil(t, first.LatestReviews[2].Author)

	require.Len(t, first.ReviewRequests, 2)
	assert.Equal(t, "carol", first.ReviewRequests[0].RequestedReviewer.Login)
	assert.Nil(t, first.ReviewRequests[1].RequestedReviewer)

	second := got.PullRequests[1]
	assert.True(t, second.IsDraft)
	assert.Equal(t, "dependabot[bot]", second.Author.Login)
	assert.Empty(t, second.CheckState)
	assert.Empty(t, second.LatestReviews)
}

func TestRESTSource_FetchDashboard_ListError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", jsonHandler(`{"login": "carol"}`))
	mux.HandleFunc("/repos/acme/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "boom"}`, http.StatusInternalServerError)
	})

	source := newTestRESTSource(t, mux)
	got, err := source.FetchDashboard(context.Background(), &MockRepository{Owner: "acme", Name: "widgets"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "failed to fetch pull requests")
}

func TestRESTSource_FetchDashboard_ReviewError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", jsonHandler(`{"login": "carol"}`))
	mux.HandleFunc("/repos/acme/widgets/pulls", jsonHandler(`[{"number": 9, "user": {"login": "alice"}}]`))
	mux.HandleFunc("/repos/acme/widgets/pulls/9/reviews", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	source := newTestRESTSource(t, mux)
	_, err := source.FetchDashboard(context.Background(), &MockRepository{Owner: "acme", Name: "widgets"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch reviews for #9")
}

func TestNewRESTSource_EnterpriseHost(t *testing.T) {
	source, err := NewRESTSource(context.Background(), "ghe.example.com", "token", discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", source.client.BaseURL.String())

	source, err = NewRESTSource(context.Background(), "github.com", "", discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", source.client.BaseURL.String())
}

func TestRESTSource_FetchDashboard_SkipsDraftReview(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", jsonHandler(`{"login": "carol"}`))
	mux.HandleFunc("/repos/acme/widgets/pulls", jsonHandler(`[{"number": 3, "user": {"login": "alice"}}]`))
	mux.HandleFunc("/repos/acme/widgets/pulls/3/reviews", jsonHandler(`[
		{"user": {"login": "carol", "type": "User"}, "state": "APPROVED", "submitted_at": "2024-05-01T10:00:00Z"},
		{"user": {"login": "carol", "type": "User"}, "state": "PENDING"}
	]`))
	mux.HandleFunc("/repos/acme/widgets/issues/3/timeline", jsonHandler(`[]`))

	source := newTestRESTSource(t, mux)
	got, err := source.FetchDashboard(context.Background(), &MockRepository{Owner: "acme", Name: "widgets"})
	require.NoError(t, err)
	require.Len(t, got.PullRequests, 1)

	reviews := got.PullRequests[0].LatestReviews
	require.Len(t, reviews, 1)
	assert.Equal(t, "APPROVED", reviews[0].State)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), reviews[0].SubmittedAt.UTC())
}

func TestRESTSource_FetchDashboard_CheckRunsOnly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", jsonHandler(`{"login": "carol"}`))
	mux.HandleFunc("/repos/acme/widgets/pulls", jsonHandler(`[{"number": 4, "user": {"login": "alice"}, "head": {"sha": "fff000"}}]`))
	mux.HandleFunc("/repos/acme/widgets/pulls/4/reviews", jsonHandler(`[]`))
	mux.HandleFunc("/repos/acme/widgets/issues/4/timeline", jsonHandler(`[]`))
	mux.HandleFunc("/repos/acme/widgets/commits/fff000/status", jsonHandler(`{"state": "pending", "total_count": 0, "statuses": []}`))
	mux.HandleFunc("/repos/acme/widgets/commits/fff000/check-runs", jsonHandler(`{"total_count": 1, "check_runs": [
		{"name": "test", "status": "completed", "conclusion": "failure"}
	]}`))

	source := newTestRESTSource(t, mux)
	got, err := source.FetchDashboard(context.Background(), &MockRepository{Owner: "acme", Name: "widgets"})
	require.NoError(t, err)
	require.Len(t, got.PullRequests, 1)

	assert.Equal(t, "FAILURE", got.PullRequests[0].CheckState)
	assert.Equal(t, models.CheckStatusFailure, models.ParseCheckStatus(got.PullRequests[0].CheckState))
}

func TestRollupCheckState(t *testing.T) {
	run := func(status, conclusion string) *github.CheckRun {
		return &github.CheckRun{Status: github.Ptr(status), Conclusion: github.Ptr(conclusion)}
	}
	combined := func(state string, total int) *github.CombinedStatus {
		return &github.CombinedStatus{State: github.Ptr(state), TotalCount: github.Ptr(total)}
	}

	tests := []struct {
		name     string
		status   *github.CombinedStatus
		runs     []*github.CheckRun
		expected string
	}{
		{name: "nothing ran", status: combined("pending", 0), expected: ""},
		{name: "statuses only", status: combined("success", 2), expected: "SUCCESS"},
		{name: "status error", status: combined("error", 1), expected: "FAILURE"},
		{name: "runs only succeed", status: combined("pending", 0), runs: []*github.CheckRun{run("completed", "success"), run("completed", "skipped")}, expected: "SUCCESS"},
		{name: "run in progress", status: combined("success", 1), runs: []*github.CheckRun{run("in_progress", "")}, expected: "PENDING"},
		{name: "failure beats pending", status: combined("pending", 1), runs: []*github.CheckRun{run("completed", "timed_out")}, expected: "FAILURE"},
		{name: "nil status", runs: []*github.CheckRun{run("completed", "neutral")}, expected: "SUCCESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rollupCheckState(tt.status, tt.runs))
		})
	}
}
