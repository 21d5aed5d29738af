package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	domainErrors "github.com/faizalzakaria/slack-pull-reminder/internal/errors"
)

// ApprovalStrategy selects how a pull request is judged approved.
type ApprovalStrategy string

const (
	StrategyReview ApprovalStrategy = "review"
	StrategyLabel  ApprovalStrategy = "label"
)

const (
	EnvFileKey         = "ENV_FILE"
	defaultEnvFile     = ".env"
	DefaultSlackAPIURL = "https://slack.com/api/chat.postMessage"
)

// SupportedLanguages lists the MESSAGE_LANGUAGE values with a locale file.
var SupportedLanguages = []string{"en", "es"}

type (
	Config struct {
		Organization  string `env:"ORGANIZATION"`
		GitHubToken   string `env:"GITHUB_API_TOKEN"`
		GitHubBaseURL string `env:"GITHUB_BASE_URL"`

		SlackToken   string `env:"SLACK_API_TOKEN"`
		SlackChannel string `env:"SLACK_CHANNEL" env-default:"#general"`
		SlackAPIURL  string `env:"SLACK_API_URL" env-default:"https://slack.com/api/chat.postMessage"`

		Strategy    ApprovalStrategy `env:"APPROVAL_STRATEGY" env-default:"review"`
		Parallelism int              `env:"PARALLELISM" env-default:"1"`
		Language    string           `env:"MESSAGE_LANGUAGE" env-default:"en"`

		Filters FilterConfig
	}

	// FilterConfig holds the lowercase match lists. An empty list never restricts.
	FilterConfig struct {
		IgnoreWords  []string `env:"IGNORE_WORDS" env-separator:","`
		FilterLabels []string `env:"FILTER_LABELS" env-separator:","`
		Repositories []string `env:"REPOSITORIES" env-separator:","`
		Usernames    []string `env:"USERNAMES" env-separator:","`
	}
)

// EnvFile returns the dotenv path to load, honouring ENV_FILE.
func EnvFile() string {
	if path := os.Getenv(EnvFileKey); path != "" {
		return path
	}
	return defaultEnvFile
}

// Load reads envFile (if present) into the process environment without
// overriding variables already set, then builds and validates the Config.
func Load(envFile string) (*Config, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, domainErrors.ErrReadConfig.WithError(err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnvFile copies envFile into the process environment. A missing file is
// not an error and variables already set are kept.
func LoadEnvFile(envFile string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domainErrors.ErrReadConfig.WithError(err).WithContext("path", envFile)
	}
	return nil
}

func (c *Config) normalize() {
	c.Organization = strings.TrimSpace(c.Organization)
	c.GitHubToken = strings.TrimSpace(c.GitHubToken)
	c.SlackToken = strings.TrimSpace(c.SlackToken)
	c.Strategy = ApprovalStrategy(strings.ToLower(strings.TrimSpace(string(c.Strategy))))
	c.Language = strings.ToLower(strings.TrimSpace(c.Language))

	c.Filters.IgnoreWords = NormalizeList(c.Filters.IgnoreWords)
	c.Filters.FilterLabels = NormalizeList(c.Filters.FilterLabels)
	c.Filters.Repositories = NormalizeList(c.Filters.Repositories)
	c.Filters.Usernames = NormalizeList(c.Filters.Usernames)
}

// Validate checks required keys first, reporting all of them at once.
func (c *Config) Validate() error {
	var missing []string
	if c.SlackToken == "" {
		missing = append(missing, "SLACK_API_TOKEN")
	}
	if c.GitHubToken == "" {
		missing = append(missing, "GITHUB_API_TOKEN")
	}
	if c.Organization == "" {
		missing = append(missing, "ORGANIZATION")
	}
	if len(missing) > 0 {
		return domainErrors.ErrMissingConfig.
			WithContext("keys", missing).
			WithContext("detail", "please set the environment variable "+strings.Join(missing, ", "))
	}

	if _, err := ParseApprovalStrategy(string(c.Strategy)); err != nil {
		return err
	}

	if c.Parallelism < 1 {
		return domainErrors.ErrInvalidConfig.
			WithContext("detail", fmt.Sprintf("PARALLELISM must be at least 1, got %d", c.Parallelism))
	}

	if c.SlackChannel == "" {
		return domainErrors.ErrInvalidConfig.WithContext("detail", "SLACK_CHANNEL must not be empty")
	}

	if !slices.Contains(SupportedLanguages, c.Language) {
		return domainErrors.ErrInvalidConfig.
			WithContext("detail", fmt.Sprintf("MESSAGE_LANGUAGE %q is not supported", c.Language)).
			WithSuggestion("Use MESSAGE_LANGUAGE=" + strings.Join(SupportedLanguages, " or MESSAGE_LANGUAGE="))
	}
	return nil
}

// ParseApprovalStrategy accepts "review" or "label", case-insensitively.
func ParseApprovalStrategy(value string) (ApprovalStrategy, error) {
	switch s := ApprovalStrategy(strings.ToLower(strings.TrimSpace(value))); s {
	case StrategyReview, StrategyLabel:
		return s, nil
	default:
		return "", domainErrors.ErrInvalidConfig.
			WithContext("detail", fmt.Sprintf("APPROVAL_STRATEGY %q is not supported", value)).
			WithSuggestion("Use APPROVAL_STRATEGY=review or APPROVAL_STRATEGY=label")
	}
}

// NormalizeList lowercases and trims entries and drops empty ones. An empty
// entry would match every string as a substring.
func NormalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
