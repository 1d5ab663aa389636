package github

import (
	"context"

	"github.com/ryo246912/gh-pr-dashboard/internal/models"
)

// DataSource fetches the raw open-PR data for a repository together with
// the login of the authenticated user
type DataSource interface {
	FetchDashboard(ctx context.Context, repo RepositoryInfo) (*models.RawDashboard, error)
}

// RepositoryInfo defines repository information interface
type RepositoryInfo interface {
	GetHost() string
	GetOwner() string
	GetName() string
}

// Ensure sources implement DataSource interface
var (
	_ DataSource = (*GraphQLSource)(nil)
	_ DataSource = (*RESTSource)(nil)
	_ DataSource = (*MockClient)(nil)
)
