package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/ryo246912/gh-pr-dashboard/internal/models"
)

const (
	defaultHost       = "github.com"
	restPageSize      = 100
	restFetchParallel = 4
)

// RESTSource fetches dashboard data from the REST API, one set of calls per PR
type RESTSource struct {
	client *github.Client
	logger *slog.Logger
}

// NewRESTSource creates a REST client for host authenticated with token.
// Hosts other than github.com are treated as GitHub Enterprise Server.
func NewRESTSource(ctx context.Context, host, token string, logger *slog.Logger) (*RESTSource, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	if host != "" && host != defaultHost {
		base := fmt.Sprintf("https://%s/api/v3/", host)
		upload := fmt.Sprintf("https://%s/api/uploads/", host)
		var err error
		client, err = client.WithEnterpriseURLs(base, upload)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise host %s: %w", host, err)
		}
	}

	return NewRESTSourceFromClient(client, logger), nil
}

// NewRESTSourceFromClient wraps an already configured go-github client
func NewRESTSourceFromClient(client *github.Client, logger *slog.Logger) *RESTSource {
	return &RESTSource{client: client, logger: logger}
}

// FetchDashboard lists open PRs and then fetches reviews, review requests
// and the combined status of each PR concurrently
func (c *RESTSource) FetchDashboard(ctx context.Context, repo RepositoryInfo) (*models.RawDashboard, error) {
	owner, name := repo.GetOwner(), repo.GetName()

	viewer, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}

	pulls, err := c.listOpenPullRequests(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("listed open pull requests", "owner", owner, "repo", name, "count", len(pulls))

	prs := make([]models.RawPullRequest, len(pulls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(restFetchParallel)
	for i, pull := range pulls {
		g.Go(func() error {
			pr, err := c.fetchPullRequest(gctx, owner, name, pull)
			if err != nil {
				return err
			}
			prs[i] = pr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.RawDashboard{
		ViewerLogin:  viewer.GetLogin(),
		PullRequests: prs,
	}, nil
}

func (c *RESTSource) listOpenPullRequests(ctx context.Context, owner, repo string) ([]*github.PullRequest, error) {
	var all []*github.PullRequest
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: restPageSize},
	}
	for {
		pulls, resp, err := c.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
		}
		all = append(all, pulls...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *RESTSource) fetchPullRequest(ctx context.Context, owner, repo string, pull *github.PullRequest) (models.RawPullRequest, error) {
	number := pull.GetNumber()
	pr := models.RawPullRequest{
		Number:  number,
		Title:   pull.GetTitle(),
		URL:     pull.GetHTMLURL(),
		IsDraft: pull.GetDraft(),
		Author:  restActor(pull.GetUser()),
	}
	for _, label := range pull.Labels {
		pr.Labels = append(pr.Labels, models.RawLabel{Name: label.GetName(), Color: label.GetColor()})
	}

	reviews, err := c.listReviews(ctx, owner, repo, number)
	if err != nil {
		return pr, err
	}
	for _, review := range reviews {
		// the viewer's own unsubmitted draft review
		if review.SubmittedAt == nil || strings.EqualFold(review.GetState(), "PENDING") {
			continue
		}
		pr.LatestReviews = append(pr.LatestReviews, models.RawReview{
			Author:      restUser(review.GetUser()),
			State:       review.GetState(),
			SubmittedAt: review.GetSubmittedAt().Time,
		})
	}

	events, err := c.listTimeline(ctx, owner, repo, number)
	if err != nil {
		return pr, err
	}
	for _, event := range events {
		if event.GetEvent() != "review_requested" {
			continue
		}
		pr.ReviewRequests = append(pr.ReviewRequests, models.RawReviewRequest{
			RequestedReviewer: restUser(event.GetReviewer()),
			RequestedAt:       event.GetCreatedAt().Time,
		})
	}

	if sha := pull.GetHead().GetSHA(); sha != "" {
		status, _, err := c.client.Repositories.GetCombinedStatus(ctx, owner, repo, sha, nil)
		if err != nil {
			return pr, fmt.Errorf("failed to fetch combined status for #%d: %w", number, err)
		}
		runs, err := c.listCheckRuns(ctx, owner, repo, sha)
		if err != nil {
			return pr, fmt.Errorf("failed to fetch check runs for #%d: %w", number, err)
		}
		pr.CheckState = rollupCheckState(status, runs)
	}

	return pr, nil
}

func (c *RESTSource) listCheckRuns(ctx context.Context, owner, repo, ref string) ([]*github.CheckRun, error) {
	var all []*github.CheckRun
	opts := &github.ListCheckRunsOptions{ListOptions: github.ListOptions{PerPage: restPageSize}}
	for {
		result, resp, err := c.client.Checks.ListCheckRunsForRef(ctx, owner, repo, ref, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, result.CheckRuns...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// rollupCheckState folds commit statuses and check runs into one state the
// way GraphQL's statusCheckRollup does: any failure fails the commit, then
// anything unfinished keeps it pending. Empty when nothing ran.
func rollupCheckState(status *github.CombinedStatus, runs []*github.CheckRun) string {
	var states []string
	if status.GetTotalCount() > 0 {
		states = append(states, strings.ToUpper(status.GetState()))
	}
	for _, run := range runs {
		states = append(states, checkRunState(run))
	}
	if len(states) == 0 {
		return ""
	}

	rollup := "SUCCESS"
	for _, state := range states {
		switch state {
		case "SUCCESS":
		case "PENDING":
			rollup = "PENDING"
		default:
			return "FAILURE"
		}
	}
	return rollup
}

func checkRunState(run *github.CheckRun) string {
	if run.GetStatus() != "completed" {
		return "PENDING"
	}
	switch run.GetConclusion() {
	case "success", "neutral", "skipped":
		return "SUCCESS"
	default:
		return "FAILURE"
	}
}

// listReviews returns every submitted review in chronological order, so the
// last one per user is that user's latest review
func (c *RESTSource) listReviews(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestReview, error) {
	var all []*github.PullRequestReview
	opts := &github.ListOptions{PerPage: restPageSize}
	for {
		reviews, resp, err := c.client.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch reviews for #%d: %w", number, err)
		}
		all = append(all, reviews...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *RESTSource) listTimeline(ctx context.Context, owner, repo string, number int) ([]*github.Timeline, error) {
	var all []*github.Timeline
	opts := &github.ListOptions{PerPage: restPageSize}
	for {
		events, resp, err := c.client.Issues.ListIssueTimeline(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch timeline for #%d: %w", number, err)
		}
		all = append(all, events...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// restActor converts any account, bots included, like the GraphQL Actor login
func restActor(u *github.User) *models.RawUser {
	if u.GetLogin() == "" {
		return nil
	}
	return &models.RawUser{Login: u.GetLogin(), Name: u.GetName()}
}

// restUser keeps only real user accounts, matching what the GraphQL
// `... on User` fragment returns
func restUser(u *github.User) *models.RawUser {
	if u == nil || !isUserAccount(u.GetLogin(), u.GetType()) {
		return nil
	}
	return &models.RawUser{Login: u.GetLogin(), Name: u.GetName()}
}

// isUserAccount checks the account is a person rather than a bot
func isUserAccount(login, userType string) bool {
	return login != "" &&
		!strings.HasSuffix(login, "[bot]") &&
		userType != "Bot"
}
