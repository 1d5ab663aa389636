package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/ryo246912/gh-pr-dashboard/internal/logger"
)

// EnvPrefix is prepended to every flag name to form its environment variable
const EnvPrefix = "PR_DASHBOARD"

// Keys shared by the flags, the environment and viper.
const (
	KeyHostname        = "hostname"
	KeyOwner           = "owner"
	KeyRepository      = "repository"
	KeyToken           = "token"
	KeyShowDrafts      = "show-drafts"
	KeyHideNotReviewer = "hide-not-reviewer"
	KeyPrintLabels     = "print-labels"
	KeyNoReviewers     = "no-reviewers"
	KeyBackend         = "backend"
	KeyFormat          = "format"
	KeySelect          = "select"
	KeyLogLevel        = "log-level"
	KeyLogFormat       = "log-format"
)

// Backends
const (
	BackendGraphQL = "graphql"
	BackendREST    = "rest"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	ErrMissingOwner      = errors.New("owner must be set")
	ErrMissingRepository = errors.New("repository must be set")
)

// Config holds everything one dashboard run needs
type Config struct {
	Hostname        string
	Owner           string
	Repository      string
	Token           string
	ShowDrafts      bool
	HideNotReviewer bool
	PrintLabels     bool
	PrintReviewers  bool
	Backend         string
	Format          string
	Select          bool
	Log             logger.Config
}

// NewViper returns a viper instance reading PR_DASHBOARD_* variables, with
// GH_TOKEN / GITHUB_TOKEN as fallbacks for the token
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyToken, EnvPrefix+"_TOKEN", "GH_TOKEN", "GITHUB_TOKEN")

	v.SetDefault(KeyHostname, "github.com")
	v.SetDefault(KeyBackend, BackendGraphQL)
	v.SetDefault(KeyFormat, FormatText)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	return v
}

// Load reads the configuration from v and validates it
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Hostname:        strings.TrimSpace(v.GetString(KeyHostname)),
		Owner:           strings.TrimSpace(v.GetString(KeyOwner)),
		Repository:      strings.TrimSpace(v.GetString(KeyRepository)),
		Token:           v.GetString(KeyToken),
		ShowDrafts:      v.GetBool(KeyShowDrafts),
		HideNotReviewer: v.GetBool(KeyHideNotReviewer),
		PrintLabels:     v.GetBool(KeyPrintLabels),
		PrintReviewers:  !v.GetBool(KeyNoReviewers),
		Backend:         strings.ToLower(v.GetString(KeyBackend)),
		Format:          strings.ToLower(v.GetString(KeyFormat)),
		Select:          v.GetBool(KeySelect),
		Log: logger.Config{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and enumerated values
func (c *Config) Validate() error {
	if c.Owner == "" {
		return ErrMissingOwner
	}
	if c.Repository == "" {
		return ErrMissingRepository
	}
	if c.Hostname == "" {
		return fmt.Errorf("hostname must not be empty")
	}
	if !slices.Contains([]string{BackendGraphQL, BackendREST}, c.Backend) {
		return fmt.Errorf("unsupported backend %q: expected %s or %s", c.Backend, BackendGraphQL, BackendREST)
	}
	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML}, c.Format) {
		return fmt.Errorf("unsupported format %q: expected %s, %s or %s", c.Format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}
