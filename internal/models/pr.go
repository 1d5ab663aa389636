package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GhostLogin is the placeholder GitHub shows for deleted accounts.
const GhostLogin = "ghost"

// User represents a GitHub user
type User struct {
	Login string
	Name  string
}

// DisplayName returns the user's name, falling back to the login
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// ParseRGB parses the six hex digit form GitHub uses for label colors.
// A leading '#' is accepted.
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as "rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// Label represents a PR label. Color is kept as GitHub reported it.
type Label struct {
	Name  string
	Color string
}

// RGB parses the label color, reporting false when it is malformed
func (l Label) RGB() (RGB, bool) {
	c, err := ParseRGB(l.Color)
	return c, err == nil
}

// ReviewState is the current review standing of one user on one PR
type ReviewState struct {
	User      User
	Status    ReviewStatus
	Timestamp time.Time
}

// PullRequest represents an open PR with reconciled review states.
// ReviewStates is unique by login and sorted by login ascending.
type PullRequest struct {
	Number       int
	Title        string
	URL          string
	IsDraft      bool
	Labels       []Label
	Author       User
	ReviewStates []ReviewState
	Checks       CheckStatus
}
