package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ryo246912/gh-pr-dashboard/internal/models"
	"github.com/ryo246912/gh-pr-dashboard/internal/service"
)

var ErrNoPullRequests = errors.New("no pull requests on the dashboard")

// SelectPR shows a searchable list of the dashboard entries
func SelectPR(entries []service.Entry) (models.PullRequest, error) {
	if len(entries) == 0 {
		return models.PullRequest{}, ErrNoPullRequests
	}

	items := selectItems(entries)

	prompt := promptui.Select{
		Label: "Open PR",
		Items: items,
		Size:  12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
		StartInSearchMode: true,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return models.PullRequest{}, fmt.Errorf("prompt failed: %w", err)
	}
	return entries[idx].PullRequest, nil
}

func selectItems(entries []service.Entry) []string {
	items := make([]string, len(entries))
	for i, entry := range entries {
		pr := entry.PullRequest
		title := pr.Title
		if pr.IsDraft {
			title = "(Draft) " + title
		}
		items[i] = fmt.Sprintf(
			"%s #%s %s %s",
			entry.Indicator,
			PadRight(fmt.Sprintf("%d", pr.Number), 6),
			PadRight(Truncate(title, 75), 75),
			pr.Author.DisplayName(),
		)
	}
	return items
}

// SelectAndOpen lets the user pick a PR and opens it in the browser
func SelectAndOpen(p Prompter, b Browser, entries []service.Entry) (models.PullRequest, error) {
	if len(entries) == 0 {
		return models.PullRequest{}, ErrNoPullRequests
	}

	pr, err := p.SelectPR(entries)
	if err != nil {
		return models.PullRequest{}, err
	}
	if err := b.Browse(pr.URL); err != nil {
		return pr, fmt.Errorf("failed to open #%d: %w", pr.Number, err)
	}
	return pr, nil
}
