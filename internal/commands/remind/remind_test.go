package remind

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/faizalzakaria/slack-pull-reminder/internal/config"
	domainErrors "github.com/faizalzakaria/slack-pull-reminder/internal/errors"
	"github.com/faizalzakaria/slack-pull-reminder/internal/i18n"
	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
)

type MockReminderService struct {
	mock.Mock
}

func (m *MockReminderService) BuildDigests(ctx context.Context) ([]models.Digest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Digest), args.Error(1)
}

func (m *MockReminderService) Dispatch(ctx context.Context, digests []models.Digest) error {
	args := m.Called(ctx, digests)
	return args.Error(0)
}

type runResult struct {
	err    error
	stdout string
	cfg    *config.Config
}

func setupRemindTest(t *testing.T) (*MockReminderService, *i18n.Translations) {
	t.Helper()
	color.NoColor = true

	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	return new(MockReminderService), translations
}

func run(t *testing.T, service *MockReminderService, translations *i18n.Translations, args ...string) runResult {
	t.Helper()

	var built *config.Config
	provider := func(ctx context.Context, cfg *config.Config, _ *i18n.Translations) (ReminderService, error) {
		built = cfg
		return service, nil
	}
	loader := func() (*config.Config, error) {
		return &config.Config{
			Organization: "acme",
			SlackChannel: "#eng",
			Strategy:     config.StrategyReview,
			Parallelism:  1,
		}, nil
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRemindCommand(provider, loader).CreateCommand(translations)
	cmd.Writer = &stdout
	cmd.ErrWriter = &stderr

	err := cmd.Run(context.Background(), append([]string{"remind"}, args...))
	return runResult{err: err, stdout: stdout.String(), cfg: built}
}

func sampleDigests() []models.Digest {
	return []models.Digest{
		{Group: models.GroupNeedsReview, Header: "\nHi! Please review these PR: \n\n", Lines: []string{"line-1"}},
		{Group: models.GroupApproved, Header: "\nPlease merge & deploy APPROVED PR when its ready: \n\n", Lines: []string{"line-2"}},
	}
}

func TestRemindCommand(t *testing.T) {
	t.Run("should print and dispatch the digests", func(t *testing.T) {
		// Arrange
		service, translations := setupRemindTest(t)
		digests := sampleDigests()
		service.On("BuildDigests", mock.Anything).Return(digests, nil)
		service.On("Dispatch", mock.Anything, digests).Return(nil)

		// Act
		res := run(t, service, translations)

		// Assert
		require.NoError(t, res.err)
		assert.Equal(t, digests[0].Text()+"\n"+digests[1].Text()+"\n", res.stdout)
		service.AssertExpectations(t)
	})

	t.Run("should not dispatch on a dry run", func(t *testing.T) {
		// Arrange
		service, translations := setupRemindTest(t)
		service.On("BuildDigests", mock.Anything).Return(sampleDigests(), nil)

		// Act
		res := run(t, service, translations, "--dry-run")

		// Assert
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "line-1")
		service.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("should send nothing when there is nothing to report", func(t *testing.T) {
		// Arrange
		service, translations := setupRemindTest(t)
		service.On("BuildDigests", mock.Anything).Return([]models.Digest{}, nil)

		// Act
		res := run(t, service, translations)

		// Assert
		require.NoError(t, res.err)
		assert.Empty(t, res.stdout)
		service.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("should apply flag overrides to the configuration", func(t *testing.T) {
		// Arrange
		service, translations := setupRemindTest(t)
		service.On("BuildDigests", mock.Anything).Return([]models.Digest{}, nil)

		// Act
		res := run(t, service, translations, "--approval-strategy", "LABEL", "--parallelism", "4")

		// Assert
		require.NoError(t, res.err)
		require.NotNil(t, res.cfg)
		assert.Equal(t, config.StrategyLabel, res.cfg.Strategy)
		assert.Equal(t, 4, res.cfg.Parallelism)
	})

	t.Run("should reject an invalid parallelism flag", func(t *testing.T) {
		// Arrange
		service, translations := setupRemindTest(t)

		// Act
		res := run(t, service, translations, "--parallelism", "0")

		// Assert
		require.Error(t, res.err)
		assert.True(t, errors.Is(res.err, domainErrors.ErrInvalidConfig))
		assert.Nil(t, res.cfg)
	})

	t.Run("should fail before any call when the configuration is missing", func(t *testing.T) {
		// Arrange
		_, translations := setupRemindTest(t)
		called := false
		provider := func(context.Context, *config.Config, *i18n.Translations) (ReminderService, error) {
			called = true
			return nil, nil
		}
		loader := func() (*config.Config, error) {
			return nil, domainErrors.ErrMissingConfig.WithContext("detail", "please set the environment variable ORGANIZATION")
		}
		cmd := NewRemindCommand(provider, loader).CreateCommand(translations)
		cmd.ErrWriter = &bytes.Buffer{}

		// Act
		err := cmd.Run(context.Background(), []string{"remind"})

		// Assert
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrMissingConfig))
		assert.Contains(t, err.Error(), translations.GetMessage("error_config", 0, nil))
		assert.Contains(t, err.Error(), "ORGANIZATION")
		assert.False(t, called)
	})

	t.Run("should wrap scan failures", func(t *testing.T) {
		// Arrange
		service, translations := setupRemindTest(t)
		service.On("BuildDigests", mock.Anything).Return([]models.Digest(nil), domainErrors.ErrGitHubRateLimit)

		// Act
		res := run(t, service, translations)

		// Assert
		require.Error(t, res.err)
		assert.True(t, errors.Is(res.err, domainErrors.ErrGitHubRateLimit))
		assert.Contains(t, res.err.Error(), translations.GetMessage("error_scan", 0, nil))
		service.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("should wrap dispatch failures", func(t *testing.T) {
		// Arrange
		service, translations := setupRemindTest(t)
		digests := sampleDigests()
		service.On("BuildDigests", mock.Anything).Return(digests, nil)
		service.On("Dispatch", mock.Anything, digests).Return(domainErrors.ErrSlackDelivery)

		// Act
		res := run(t, service, translations)

		// Assert
		require.Error(t, res.err)
		assert.True(t, errors.Is(res.err, domainErrors.ErrSlackDelivery))
		assert.Contains(t, res.err.Error(), translations.GetMessage("error_dispatch", 0, nil))
	})

	t.Run("should fail when the provider fails", func(t *testing.T) {
		// Arrange
		_, translations := setupRemindTest(t)
		provider := func(context.Context, *config.Config, *i18n.Translations) (ReminderService, error) {
			return nil, errors.New("provider error")
		}
		loader := func() (*config.Config, error) { return &config.Config{Organization: "acme", Parallelism: 1}, nil }
		cmd := NewRemindCommand(provider, loader).CreateCommand(translations)
		cmd.ErrWriter = &bytes.Buffer{}

		// Act
		err := cmd.Run(context.Background(), []string{"remind"})

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), translations.GetMessage("error_service_creation", 0, nil))
	})
}
