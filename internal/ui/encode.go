package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ryo246912/gh-pr-dashboard/internal/review"
	"github.com/ryo246912/gh-pr-dashboard/internal/service"
)

var ErrUnknownFormat = errors.New("unknown output format")

type userOutput struct {
	Login string `json:"login" yaml:"login"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
}

type labelOutput struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

type reviewerOutput struct {
	User   userOutput `json:"user" yaml:"user"`
	Status string     `json:"status" yaml:"status"`
	Since  time.Time  `json:"since" yaml:"since"`
}

type pullRequestOutput struct {
	Number    int              `json:"number" yaml:"number"`
	Title     string           `json:"title" yaml:"title"`
	URL       string           `json:"url" yaml:"url"`
	Draft     bool             `json:"draft" yaml:"draft"`
	Author    userOutput       `json:"author" yaml:"author"`
	Labels    []labelOutput    `json:"labels" yaml:"labels"`
	Checks    string           `json:"checks,omitempty" yaml:"checks,omitempty"`
	Indicator string           `json:"indicator" yaml:"indicator"`
	Reviewers []reviewerOutput `json:"reviewers" yaml:"reviewers"`
}

type dashboardOutput struct {
	Repository   string              `json:"repository" yaml:"repository"`
	Viewer       string              `json:"viewer" yaml:"viewer"`
	PullRequests []pullRequestOutput `json:"pull_requests" yaml:"pull_requests"`
	Summary      review.Summary      `json:"summary" yaml:"summary"`
}

// Encode writes the dashboard as "json" or "yaml"
func Encode(w io.Writer, format string, d *service.Dashboard) error {
	out := toOutput(d)

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func toOutput(d *service.Dashboard) dashboardOutput {
	out := dashboardOutput{
		Repository:   d.Repository,
		Viewer:       d.Viewer,
		PullRequests: make([]pullRequestOutput, 0, len(d.Entries)),
		Summary:      d.Summary,
	}

	for _, entry := range d.Entries {
		pr := entry.PullRequest
		item := pullRequestOutput{
			Number:    pr.Number,
			Title:     pr.Title,
			URL:       pr.URL,
			Draft:     pr.IsDraft,
			Author:    userOutput{Login: pr.Author.Login, Name: pr.Author.Name},
			Labels:    make([]labelOutput, 0, len(pr.Labels)),
			Checks:    pr.Checks.String(),
			Indicator: string(entry.Indicator),
			Reviewers: make([]reviewerOutput, 0, len(pr.ReviewStates)),
		}
		for _, label := range pr.Labels {
			item.Labels = append(item.Labels, labelOutput{Name: label.Name, Color: label.Color})
		}
		for _, state := range pr.ReviewStates {
			item.Reviewers = append(item.Reviewers, reviewerOutput{
				User:   userOutput{Login: state.User.Login, Name: state.User.Name},
				Status: state.Status.String(),
				Since:  state.Timestamp,
			})
		}
		out.PullRequests = append(out.PullRequests, item)
	}
	return out
}
