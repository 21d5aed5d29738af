package remind

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/faizalzakaria/slack-pull-reminder/internal/config"
	domainErrors "github.com/faizalzakaria/slack-pull-reminder/internal/errors"
	"github.com/faizalzakaria/slack-pull-reminder/internal/i18n"
	"github.com/faizalzakaria/slack-pull-reminder/internal/logger"
	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
	"github.com/faizalzakaria/slack-pull-reminder/internal/ui"
)

// ReminderService is the part of services.ReminderService the command drives.
type ReminderService interface {
	BuildDigests(ctx context.Context) ([]models.Digest, error)
	Dispatch(ctx context.Context, digests []models.Digest) error
}

// ServiceProvider builds a ReminderService once the configuration is final.
type ServiceProvider func(ctx context.Context, cfg *config.Config, t *i18n.Translations) (ReminderService, error)

// ConfigLoader reads the run configuration.
type ConfigLoader func() (*config.Config, error)

type RemindCommand struct {
	provider   ServiceProvider
	loadConfig ConfigLoader
}

func NewRemindCommand(provider ServiceProvider, loadConfig ConfigLoader) *RemindCommand {
	return &RemindCommand{
		provider:   provider,
		loadConfig: loadConfig,
	}
}

func (c *RemindCommand) CreateCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: t.GetMessage("remind_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   t.GetMessage("flag_dry_run_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: t.GetMessage("flag_debug_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   t.GetMessage("flag_verbose_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:    "approval-strategy",
				Aliases: []string{"s"},
				Usage:   t.GetMessage("flag_strategy_usage", 0, nil),
			},
			&cli.IntFlag{
				Name:    "parallelism",
				Aliases: []string{"p"},
				Usage:   t.GetMessage("flag_parallelism_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stdout, stderr := writers(cmd)

			log := logger.Initialize(stderr, cmd.Bool("debug"), cmd.Bool("verbose"))
			ctx, _ = logger.WithRunID(logger.WithLogger(ctx, log))
			log = logger.FromContext(ctx)
			start := time.Now()

			cfg, err := c.loadConfig()
			if err == nil {
				err = applyFlags(cmd, cfg)
			}
			if err != nil {
				log.Error("invalid configuration", "error", err)
				return fmt.Errorf(t.GetMessage("error_config", 0, nil)+": %w", err)
			}

			dryRun := cmd.Bool("dry-run")
			log.Info("executing remind command",
				"organization", cfg.Organization,
				"strategy", string(cfg.Strategy),
				"parallelism", cfg.Parallelism,
				"dry_run", dryRun)

			service, err := c.provider(ctx, cfg, t)
			if err != nil {
				log.Error("failed to create reminder service",
					"error", err,
					"duration_ms", time.Since(start).Milliseconds())
				return fmt.Errorf(t.GetMessage("error_service_creation", 0, nil)+": %w", err)
			}

			spinner := ui.NewSmartSpinner(stderr, t.GetMessage("ui_scanning_organization", 0, struct{ Organization string }{cfg.Organization}))
			spinner.Start()

			digests, err := service.BuildDigests(ctx)
			if err != nil {
				log.Error("failed to scan organization",
					"organization", cfg.Organization,
					"error", err,
					"duration_ms", time.Since(start).Milliseconds())
				spinner.Error(t.GetMessage("error_scan", 0, nil))
				return fmt.Errorf(t.GetMessage("error_scan", 0, nil)+": %w", err)
			}

			if len(digests) == 0 {
				spinner.Warning(t.GetMessage("ui_nothing_to_send", 0, nil))
				log.Info("nothing to send",
					"organization", cfg.Organization,
					"duration_ms", time.Since(start).Milliseconds())
				return nil
			}

			lines := 0
			for _, d := range digests {
				lines += len(d.Lines)
			}
			spinner.Success(t.GetMessage("ui_scan_finished", 0, struct{ Count int }{lines}))

			for _, d := range digests {
				ui.PrintDigest(stdout, d)
			}

			if dryRun {
				ui.PrintInfo(stderr, t.GetMessage("ui_dry_run", 0, struct{ Channel string }{cfg.SlackChannel}))
				return nil
			}

			if err := service.Dispatch(ctx, digests); err != nil {
				return fmt.Errorf(t.GetMessage("error_dispatch", 0, nil)+": %w", err)
			}

			log.Info("remind finished",
				"organization", cfg.Organization,
				"count", len(digests),
				"duration_ms", time.Since(start).Milliseconds())

			ui.PrintSuccess(stderr, t.GetMessage("ui_digests_sent", 0, struct {
				Count   int
				Channel string
			}{len(digests), cfg.SlackChannel}))

			return nil
		},
	}
}

// applyFlags lets the command line override the environment.
func applyFlags(cmd *cli.Command, cfg *config.Config) error {
	if cmd.IsSet("approval-strategy") {
		strategy, err := config.ParseApprovalStrategy(cmd.String("approval-strategy"))
		if err != nil {
			return err
		}
		cfg.Strategy = strategy
	}

	if cmd.IsSet("parallelism") {
		parallelism := cmd.Int("parallelism")
		if parallelism < 1 {
			return domainErrors.ErrInvalidConfig.
				WithContext("detail", fmt.Sprintf("--parallelism must be at least 1, got %d", parallelism))
		}
		cfg.Parallelism = parallelism
	}
	return nil
}

func writers(cmd *cli.Command) (io.Writer, io.Writer) {
	root := cmd.Root()
	var stdout, stderr io.Writer = root.Writer, root.ErrWriter
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}
