package ui

import (
	"github.com/ryo246912/gh-pr-dashboard/internal/models"
	"github.com/ryo246912/gh-pr-dashboard/internal/service"
)

// Prompter defines interface for user interaction
type Prompter interface {
	SelectPR(entries []service.Entry) (models.PullRequest, error)
}

// Browser opens URLs, see go-gh's pkg/browser
type Browser interface {
	Browse(url string) error
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// SelectPR prompts user to select a PR
func (p *DefaultPrompter) SelectPR(entries []service.Entry) (models.PullRequest, error) {
	return SelectPR(entries)
}

// MockPrompter for testing
type MockPrompter struct {
	SelectedIndex    int
	PRSelectionError error

	// Call tracking
	SelectPRCalled bool
}

// SelectPR mocks PR selection
func (m *MockPrompter) SelectPR(entries []service.Entry) (models.PullRequest, error) {
	m.SelectPRCalled = true
	if m.PRSelectionError != nil {
		return models.PullRequest{}, m.PRSelectionError
	}
	return entries[m.SelectedIndex].PullRequest, nil
}

// MockBrowser records opened URLs
type MockBrowser struct {
	Opened      []string
	BrowseError error
}

// Browse mocks opening a URL
func (m *MockBrowser) Browse(url string) error {
	if m.BrowseError != nil {
		return m.BrowseError
	}
	m.Opened = append(m.Opened, url)
	return nil
}

var (
	_ Prompter = (*DefaultPrompter)(nil)
	_ Prompter = (*MockPrompter)(nil)
	_ Browser  = (*MockBrowser)(nil)
)
