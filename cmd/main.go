package main

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/faizalzakaria/slack-pull-reminder/internal/commands/remind"
	"github.com/faizalzakaria/slack-pull-reminder/internal/config"
	"github.com/faizalzakaria/slack-pull-reminder/internal/i18n"
	"github.com/faizalzakaria/slack-pull-reminder/internal/providers"
	"github.com/faizalzakaria/slack-pull-reminder/internal/ui"
	"github.com/faizalzakaria/slack-pull-reminder/internal/version"
)

func main() {
	if err := config.LoadEnvFile(config.EnvFile()); err != nil {
		ui.HandleAppError(os.Stderr, err)
		os.Exit(1)
	}

	translations, err := i18n.NewTranslations(language())
	if err != nil {
		ui.HandleAppError(os.Stderr, err)
		os.Exit(1)
	}

	app := initializeApp(translations)
	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

// language reads MESSAGE_LANGUAGE before the full configuration so that
// configuration errors are already reported in the chosen language.
func language() string {
	lang := strings.ToLower(strings.TrimSpace(os.Getenv("MESSAGE_LANGUAGE")))
	if !slices.Contains(config.SupportedLanguages, lang) {
		return i18n.DefaultLanguage
	}
	return lang
}

func initializeApp(translations *i18n.Translations) *cli.Command {
	provider := func(ctx context.Context, cfg *config.Config, t *i18n.Translations) (remind.ReminderService, error) {
		return providers.NewReminderService(ctx, cfg, t)
	}
	loader := func() (*config.Config, error) {
		return config.Load(config.EnvFile())
	}

	remindCommand := remind.NewRemindCommand(provider, loader).CreateCommand(translations)

	return &cli.Command{
		Name:           "pull-reminder",
		Usage:          translations.GetMessage("app_usage", 0, nil),
		Version:        version.FullVersion(),
		Description:    translations.GetMessage("app_description", 0, nil),
		Commands:       []*cli.Command{remindCommand},
		DefaultCommand: remindCommand.Name,
	}
}
