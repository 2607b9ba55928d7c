// Package main provides the entry point for the release-sync CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sgaunet/bullets"
	"github.com/sgaunet/release-sync/internal/logger"
	"github.com/sgaunet/release-sync/internal/security"
	"github.com/sgaunet/release-sync/internal/tagutil"
	"github.com/sgaunet/release-sync/internal/timeutil"
	"github.com/sgaunet/release-sync/internal/ui"
	"github.com/sgaunet/release-sync/pkg/assets"
	"github.com/sgaunet/release-sync/pkg/config"
	"github.com/sgaunet/release-sync/pkg/git"
	"github.com/sgaunet/release-sync/pkg/orchestrator"
	"github.com/sgaunet/release-sync/pkg/platform"
	"github.com/spf13/cobra"
)

const (
	flagPlatforms      = "platforms"
	flagTag            = "tag"
	flagName           = "name"
	flagBody           = "body"
	flagBodyFile       = "body-file"
	flagDraft          = "draft"
	flagPrerelease     = "prerelease"
	flagAutoPrerelease = "auto-prerelease"
	flagAssets         = "assets"
	flagInferFromGit   = "infer-from-git"
	flagConfirm        = "confirm"
	flagConfig         = "config"
	flagLogLevel       = "log-level"
)

var errAborted = errors.New("publish aborted by user")

var (
	logLevel string
	log      *bullets.Logger
	opts     options
)

type options struct {
	platforms      string
	tag            string
	name           string
	body           string
	bodyFile       string
	draft          bool
	prerelease     bool
	autoPrerelease bool
	assets         string
	inferFromGit   bool
	confirm        bool
	configPath     string
}

var rootCmd = &cobra.Command{
	Use:   "release-sync",
	Short: "Publish one release to GitHub and GitLab",
	Long: `release-sync publishes a single release (tag, name, notes and binary assets)
to several hosting platforms in one invocation. Platforms are processed in
order; the first fatal error stops the run. Asset failures are reported but
never abort a release.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runReleaseSync(cmd)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&opts.platforms, flagPlatforms, "", "Comma-separated platforms to publish to (github, gitlab)")
	flags.StringVar(&opts.tag, flagTag, "", "Release tag")
	flags.StringVar(&opts.name, flagName, "", "Release name")
	flags.StringVar(&opts.body, flagBody, "", "Release notes")
	flags.StringVar(&opts.bodyFile, flagBodyFile, "", "Read release notes from file (overrides --body)")
	flags.BoolVar(&opts.draft, flagDraft, false, "Create a draft release (GitHub only)")
	flags.BoolVar(&opts.prerelease, flagPrerelease, false, "Mark the release as prerelease (GitHub only)")
	flags.BoolVar(&opts.autoPrerelease, flagAutoPrerelease, false, "Mark as prerelease when the tag has a semver prerelease part")
	flags.StringVar(&opts.assets, flagAssets, "", "Whitespace-separated asset paths or glob patterns")
	flags.BoolVar(&opts.inferFromGit, flagInferFromGit, false, "Fill missing repository settings from the local origin remote")
	flags.BoolVar(&opts.confirm, flagConfirm, false, "Ask for confirmation before publishing")
	flags.StringVar(&opts.configPath, flagConfig, "", "Config file (default ~/.config/release-sync/config.yml)")

	flags.String(config.FlagTarget, config.DefaultTarget, "Branch or commit a new tag is created at")
	flags.String(config.FlagGitHubOwner, "", "GitHub repository owner")
	flags.String(config.FlagGitHubRepo, "", "GitHub repository name")
	flags.String(config.FlagGitHubToken, "", "GitHub token (default $"+config.EnvGitHubToken+")")
	flags.String(config.FlagGitHubAPIURL, "", "GitHub Enterprise API URL")
	flags.String(config.FlagGitHubUpload, "", "GitHub Enterprise upload URL (default --github-api-url)")
	flags.String(config.FlagGitLabProject, "", "GitLab project path or ID")
	flags.String(config.FlagGitLabToken, "", "GitLab token (default $"+config.EnvGitLabToken+")")
	flags.String(config.FlagGitLabURL, "", "GitLab API URL for self-hosted instances")
	flags.Bool(config.FlagReuseExisting, false, "Reuse a release that already exists for the tag")
	flags.Int(config.FlagProbeRetries, 0, "Retries for ambiguous tag probes")
	flags.Duration(config.FlagProbeTimeout, config.DefaultProbeTimeout, "Timeout for probes and lookups")
	flags.Duration(config.FlagCreateTimeout, config.DefaultCreateTimeout, "Timeout for tag and release creation")
	flags.Duration(config.FlagUploadTimeout, config.DefaultUploadTimeout, "Timeout for each asset upload")
	flags.Duration(config.FlagProbeBackoff, config.DefaultProbeBackoff, "Linear delay step between probe retries")

	_ = rootCmd.MarkFlagRequired(flagPlatforms)
	_ = rootCmd.MarkFlagRequired(flagTag)
	_ = rootCmd.MarkFlagRequired(flagName)

	rootCmd.PersistentFlags().StringVarP(&logLevel, flagLogLevel, "l", "info",
		"Set log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", security.SanitizeError(err))
		os.Exit(1)
	}
}

func runReleaseSync(cmd *cobra.Command) error {
	start := time.Now()
	if err := logger.ValidLevel(logLevel); err != nil {
		return err
	}
	log = logger.NewLogger(logLevel)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	req, err := buildRequest(cfg)
	if err != nil {
		return err
	}

	platforms := orchestrator.ParsePlatforms(opts.platforms)
	orch := orchestrator.New(cfg, platform.DefaultFactories(), log)
	if err := orch.Validate(platforms); err != nil {
		return err
	}

	if opts.confirm {
		ok, err := ui.NewPrompter().ConfirmPublish(req, platforms)
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}

	outcomes, runErr := orch.Run(context.Background(), platforms, req)
	ui.RenderSummary(os.Stdout, outcomes)
	if runErr != nil {
		return runErr
	}

	if msg := ui.PartialFailureMessage(outcomes); msg != "" {
		log.Warn(msg)
	}
	log.Info(fmt.Sprintf("Release %s published to %d platform(s) in %s", req.Tag, len(outcomes), timeutil.Since(start)))
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}
	cfg.MergeFlags(cmd.Flags())

	if opts.inferFromGit {
		if err := inferFromGit(cfg, !cmd.Flags().Changed(config.FlagTarget)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log.Debug("Configuration loaded successfully")
	return cfg, nil
}

func inferFromGit(cfg *config.Config, inferTarget bool) error {
	repo, err := git.OpenRepository(".")
	if err != nil {
		return fmt.Errorf("failed to open git repository: %w", err)
	}

	filled, err := repo.InferConfig(cfg, inferTarget)
	if err != nil {
		return fmt.Errorf("failed to infer configuration from git: %w", err)
	}
	if len(filled) > 0 {
		log.Info("Inferred from git remote: " + strings.Join(filled, ", "))
	}
	if !repo.TagExists(opts.tag) {
		log.Warn(fmt.Sprintf("Tag %s does not exist in the local repository; platforms will create it", opts.tag))
	}
	return nil
}

func buildRequest(cfg *config.Config) (platform.Request, error) {
	warning, err := tagutil.Validate(opts.tag)
	if err != nil {
		return platform.Request{}, fmt.Errorf("invalid tag: %w", err)
	}
	if warning != nil {
		log.Warn(warning.Error())
	}

	body := opts.body
	if opts.bodyFile != "" {
		content, err := os.ReadFile(opts.bodyFile)
		if err != nil {
			return platform.Request{}, fmt.Errorf("failed to read body file: %w", err)
		}
		body = string(content)
	}

	prerelease := opts.prerelease
	if opts.autoPrerelease && tagutil.IsPrerelease(opts.tag) {
		log.Info(fmt.Sprintf("Tag %s is a prerelease version", opts.tag))
		prerelease = true
	}

	req := platform.Request{
		Tag:        opts.tag,
		Name:       opts.name,
		Body:       body,
		Draft:      opts.draft,
		Prerelease: prerelease,
		Target:     cfg.Target,
	}
	if err := req.Validate(); err != nil {
		return platform.Request{}, err
	}
	req.Assets = assets.NewResolver(log).Resolve(opts.assets)
	return req, nil
}
