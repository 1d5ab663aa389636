package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/cli/go-gh/v2/pkg/browser"
	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-pr-dashboard/internal/config"
	"github.com/ryo246912/gh-pr-dashboard/internal/github"
	"github.com/ryo246912/gh-pr-dashboard/internal/logger"
	"github.com/ryo246912/gh-pr-dashboard/internal/service"
	"github.com/ryo246912/gh-pr-dashboard/internal/ui"
)

// RepositoryAdapter adapts repository.Repository to our interface
type RepositoryAdapter struct {
	repo *repository.Repository
}

func (r *RepositoryAdapter) GetHost() string {
	return r.repo.Host
}

func (r *RepositoryAdapter) GetOwner() string {
	return r.repo.Owner
}

func (r *RepositoryAdapter) GetName() string {
	return r.repo.Name
}

func newDataSource(ctx context.Context, cfg *config.Config, log *slog.Logger) (github.DataSource, error) {
	token := cfg.Token
	if token == "" {
		// falls back to gh's own login for the host
		token, _ = auth.TokenForHost(cfg.Hostname)
	}

	switch cfg.Backend {
	case config.BackendREST:
		return github.NewRESTSource(ctx, cfg.Hostname, token, log)
	default:
		return github.NewGraphQLSource(api.ClientOptions{Host: cfg.Hostname, AuthToken: token}, log)
	}
}

func runCommand(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	source, err := newDataSource(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	repo := &repository.Repository{Host: cfg.Hostname, Owner: cfg.Owner, Name: cfg.Repository}
	dashboardService := service.NewDashboardService(source, &RepositoryAdapter{repo: repo}, log)

	dashboard, err := dashboardService.Load(ctx, service.Options{
		ShowDrafts:      cfg.ShowDrafts,
		HideNotReviewer: cfg.HideNotReviewer,
	})
	if err != nil {
		return err
	}

	if cfg.Format != config.FormatText {
		return ui.Encode(os.Stdout, cfg.Format, dashboard)
	}

	renderer := &ui.Renderer{
		Out:   os.Stdout,
		Theme: ui.DefaultTheme(),
		Options: ui.RenderOptions{
			PrintReviewers: cfg.PrintReviewers,
			PrintLabels:    cfg.PrintLabels,
		},
	}
	if err := renderer.Render(dashboard); err != nil {
		return err
	}

	if cfg.Select {
		b := browser.New("", os.Stdout, os.Stderr)
		pr, err := ui.SelectAndOpen(&ui.DefaultPrompter{}, b, dashboard.Entries)
		if err != nil {
			return err
		}
		log.Debug("opened pull request", "number", pr.Number, "url", pr.URL)
	}
	return nil
}

func newRootCommand() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "pr-dashboard",
		Short: "Show the open pull requests of a repository and where your reviews stand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			log := logger.NewLogger(cfg.Log, os.Stderr)
			slog.SetDefault(log)

			return runCommand(cmd.Context(), cfg, log)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.String(config.KeyHostname, "github.com", "GitHub host to query")
	flags.String(config.KeyOwner, "", "repository owner (required)")
	flags.String(config.KeyRepository, "", "repository name (required)")
	flags.String(config.KeyToken, "", "access token, defaults to GH_TOKEN or the gh login for the host")
	flags.Bool(config.KeyShowDrafts, false, "include draft pull requests")
	flags.Bool(config.KeyHideNotReviewer, false, "only show pull requests where you have a review state")
	flags.Bool(config.KeyPrintLabels, false, "print labels next to each pull request")
	flags.Bool(config.KeyNoReviewers, false, "do not list reviewers under each pull request")
	flags.String(config.KeyBackend, config.BackendGraphQL, "API used to fetch pull requests: graphql or rest")
	flags.String(config.KeyFormat, config.FormatText, "output format: text, json or yaml")
	flags.Bool(config.KeySelect, false, "pick a pull request afterwards and open it in the browser")
	flags.String(config.KeyLogLevel, "warn", "log level: debug, info, warn or error")
	flags.String(config.KeyLogFormat, "text", "log format: text or json")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		slog.Error("pr-dashboard failed", "error", err)
		stop()
		os.Exit(1)
	}
}
