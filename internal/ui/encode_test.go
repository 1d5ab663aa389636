package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "json", testDashboard()))

	var got struct {
		Repository   string `json:"repository"`
		Viewer       string `json:"viewer"`
		PullRequests []struct {
			Number    int    `json:"number"`
			Indicator string `json:"indicator"`
			Checks    string `json:"checks"`
			Author    struct {
				Login string `json:"login"`
				Name  string `json:"name"`
			} `json:"author"`
			Labels []struct {
				Name  string `json:"name"`
				Color string `json:"color"`
			} `json:"labels"`
			Reviewers []struct {
				User struct {
					Login string `json:"login"`
				} `json:"user"`
				Status string `json:"status"`
				Since  string `json:"since"`
			} `json:"reviewers"`
		} `json:"pull_requests"`
		Summary map[string]int `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "o/r", got.Repository)
	assert.Equal(t, "bob", got.Viewer)
	require.Len(t, got.PullRequests, 2)

	first := got.PullRequests[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "⚠️", first.Indicator)
	assert.Equal(t, "SUCCESS", first.Checks)
	assert.Equal(t, "Alice", first.Author.Name)
	require.Len(t, first.Labels, 1)
	assert.Equal(t, "d73a4a", first.Labels[0].Color)
	require.Len(t, first.Reviewers, 2)
	assert.Equal(t, "bob", first.Reviewers[0].User.Login)
	assert.Equal(t, "PENDING", first.Reviewers[0].Status)
	assert.Equal(t, "2024-05-01T10:00:00Z", first.Reviewers[0].Since)
	assert.Equal(t, "APPROVED", first.Reviewers[1].Status)

	second := got.PullRequests[1]
	assert.Empty(t, second.Checks)
	assert.Empty(t, second.Reviewers)

	assert.Equal(t, map[string]int{"authored": 1, "reviewed": 0, "not_reviewed": 0, "pending_review": 1}, got.Summary)
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "yaml", testDashboard()))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "o/r", got["repository"])
	prs, ok := got["pull_requests"].([]any)
	require.True(t, ok)
	assert.Len(t, prs, 2)
	assert.Contains(t, buf.String(), "pending_review: 1")
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, "xml", testDashboard())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Zero(t, buf.Len())
}
