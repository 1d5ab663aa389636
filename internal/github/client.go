package github

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	graphql "github.com/cli/shurcooL-graphql"

	"github.com/ryo246912/gh-pr-dashboard/internal/models"
)

// GraphQLSource fetches dashboard data with a single GraphQL query
type GraphQLSource struct {
	gql    *api.GraphQLClient
	logger *slog.Logger
}

// NewGraphQLSource creates a GraphQL client for opts.Host. An empty
// opts.AuthToken lets go-gh pick up the token from gh's own config.
func NewGraphQLSource(opts api.ClientOptions, logger *slog.Logger) (*GraphQLSource, error) {
	gqlClient, err := api.NewGraphQLClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}
	return &GraphQLSource{gql: gqlClient, logger: logger}, nil
}

// graphqlUser is selected through `... on User`, so bots, mannequins and
// teams decode with an empty login.
type graphqlUser struct {
	Login string
	Name  string
}

type pullRequestNode struct {
	Number  int
	Title   string
	URL     string `graphql:"url"`
	IsDraft bool
	Labels  struct {
		Nodes []struct {
			Name  string
			Color string
		}
	} `graphql:"labels(first: 100)"`
	Author *struct {
		Login string
		User  struct {
			Name string
		} `graphql:"... on User"`
	}
	LatestReviews struct {
		Nodes []struct {
			Author *struct {
				User graphqlUser `graphql:"... on User"`
			}
			State     string
			CreatedAt time.Time
		}
	} `graphql:"latestReviews(last: 100)"`
	TimelineItems struct {
		Nodes []struct {
			ReviewRequestedEvent struct {
				CreatedAt         time.Time
				RequestedReviewer *struct {
					User graphqlUser `graphql:"... on User"`
				}
			} `graphql:"... on ReviewRequestedEvent"`
		}
	} `graphql:"timelineItems(itemTypes: REVIEW_REQUESTED_EVENT, last: 100)"`
	Commits struct {
		Nodes []struct {
			Commit struct {
				StatusCheckRollup *struct {
					State string
				}
			}
		}
	} `graphql:"commits(last: 1)"`
}

type dashboardQuery struct {
	Viewer struct {
		Login string
	}
	Repository struct {
		PullRequests struct {
			Nodes []pullRequestNode
		} `graphql:"pullRequests(last: 100, states: OPEN)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// FetchDashboard fetches the viewer login and the open pull requests of repo
func (c *GraphQLSource) FetchDashboard(ctx context.Context, repo RepositoryInfo) (*models.RawDashboard, error) {
	var q dashboardQuery
	variables := map[string]interface{}{
		"owner": graphql.String(repo.GetOwner()),
		"name":  graphql.String(repo.GetName()),
	}

	c.logger.Debug("querying pull requests", "host", repo.GetHost(), "owner", repo.GetOwner(), "repo", repo.GetName())
	if err := c.gql.QueryWithContext(ctx, "PullRequestDashboard", &q, variables); err != nil {
		return nil, fmt.Errorf("failed to fetch pull requests (GraphQL): %w", err)
	}

	dashboard := toRawDashboard(&q)
	c.logger.Debug("fetched pull requests", "viewer", dashboard.ViewerLogin, "count", len(dashboard.PullRequests))
	return dashboard, nil
}

func toRawDashboard(q *dashboardQuery) *models.RawDashboard {
	nodes := q.Repository.PullRequests.Nodes
	prs := make([]models.RawPullRequest, 0, len(nodes))
	for _, node := range nodes {
		prs = append(prs, toRawPullRequest(node))
	}
	return &models.RawDashboard{
		ViewerLogin:  q.Viewer.Login,
		PullRequests: prs,
	}
}

func toRawPullRequest(node pullRequestNode) models.RawPullRequest {
	pr := models.RawPullRequest{
		Number:  node.Number,
		Title:   node.Title,
		URL:     node.URL,
		IsDraft: node.IsDraft,
	}

	for _, label := range node.Labels.Nodes {
		pr.Labels = append(pr.Labels, models.RawLabel{Name: label.Name, Color: label.Color})
	}

	if node.Author != nil {
		pr.Author = rawUser(node.Author.Login, node.Author.User.Name)
	}

	for _, review := range node.LatestReviews.Nodes {
		var author *models.RawUser
		if review.Author != nil {
			author = rawUser(review.Author.User.Login, review.Author.User.Name)
		}
		pr.LatestReviews = append(pr.LatestReviews, models.RawReview{
			Author:      author,
			State:       review.State,
			SubmittedAt: review.CreatedAt,
		})
	}

	for _, item := range node.TimelineItems.Nodes {
		event := item.ReviewRequestedEvent
		var reviewer *models.RawUser
		if event.RequestedReviewer != nil {
			reviewer = rawUser(event.RequestedReviewer.User.Login, event.RequestedReviewer.User.Name)
		}
		pr.ReviewRequests = append(pr.ReviewRequests, models.RawReviewRequest{
			RequestedReviewer: reviewer,
			RequestedAt:       event.CreatedAt,
		})
	}

	if len(node.Commits.Nodes) > 0 {
		if rollup := node.Commits.Nodes[0].Commit.StatusCheckRollup; rollup != nil {
			pr.CheckState = rollup.State
		}
	}

	return pr
}

func rawUser(login, name string) *models.RawUser {
	if login == "" {
		return nil
	}
	return &models.RawUser{Login: login, Name: name}
}
