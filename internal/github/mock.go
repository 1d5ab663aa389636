package github

import (
	"context"
	"fmt"
	"time"

	"github.com/ryo246912/gh-pr-dashboard/internal/models"
)

// MockClient implements DataSource for testing
type MockClient struct {
	// Control test behavior
	Dashboard      *models.RawDashboard
	DashboardError error

	// Track method calls
	FetchDashboardCalled int

	// Store call arguments for verification
	LastHost  string
	LastOwner string
	LastRepo  string
}

// FetchDashboard mocks the data source call
func (m *MockClient) FetchDashboard(ctx context.Context, repo RepositoryInfo) (*models.RawDashboard, error) {
	m.FetchDashboardCalled++
	m.LastHost = repo.GetHost()
	m.LastOwner = repo.GetOwner()
	m.LastRepo = repo.GetName()
	if m.DashboardError != nil {
		return nil, m.DashboardError
	}
	return m.Dashboard, nil
}

// Reset clears all tracking data for fresh test
func (m *MockClient) Reset() {
	m.FetchDashboardCalled = 0
	m.LastHost = ""
	m.LastOwner = ""
	m.LastRepo = ""
}

// MockRepository implements repository information for testing
type MockRepository struct {
	Host  string
	Owner string
	Name  string
}

func (m *MockRepository) GetHost() string {
	return m.Host
}

func (m *MockRepository) GetOwner() string {
	return m.Owner
}

func (m *MockRepository) GetName() string {
	return m.Name
}

// Helper functions for creating test data

// CreateTestPRs creates count PRs authored by user1..userN. Every even
// numbered PR is a draft and has a pending request for "reviewer".
func CreateTestPRs(count int) []models.RawPullRequest {
	requested := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
	prs := make([]models.RawPullRequest, count)
	for i := 0; i < count; i++ {
		prs[i] = models.RawPullRequest{
			Number: i + 1,
			Title:  fmt.Sprintf("Test PR #%d", i+1),
			URL:    fmt.Sprintf("https://github.com/owner/repo/pull/%d", i+1),
			Author: &models.RawUser{Login: fmt.Sprintf("user%d", i+1)},
		}
		if (i+1)%2 == 0 {
			prs[i].IsDraft = true
			prs[i].ReviewRequests = []models.RawReviewRequest{
				{RequestedReviewer: &models.RawUser{Login: "reviewer"}, RequestedAt: requested},
			}
		}
	}
	return prs
}

// Error helpers for testing error conditions
func NewAPIError(message string) error {
	return fmt.Errorf("API error: %s", message)
}

func NewNetworkError() error {
	return fmt.Errorf("network connection failed")
}
