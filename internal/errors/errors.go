package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypeChat          ErrorType = "CHAT"
	TypeData          ErrorType = "DATA"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if detail, ok := e.Context["detail"].(string); ok && detail != "" {
			msg += fmt.Sprintf(" - %s", detail)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on type and message so that sentinel values survive WithContext copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrMissingConfig = NewAppError(TypeConfiguration, "required configuration is missing", nil).
				WithSuggestion("Export the variables or add them to a .env file:\n   ORGANIZATION, GITHUB_API_TOKEN, SLACK_API_TOKEN")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "configuration value is invalid", nil)

	ErrReadConfig = NewAppError(TypeConfiguration, "failed to read configuration", nil).
			WithSuggestion("Check the ENV_FILE path and the syntax of the .env file")
)

// GitHub/VCS errors
var (
	ErrOrganizationNotFound = NewAppError(TypeVCS, "organization not found", nil).
				WithSuggestion("Check the ORGANIZATION value and that the token can see it")

	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository not found", nil).
				WithSuggestion("Check repository access permissions")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Token needs 'repo' and 'read:org' scopes.\nRegenerate at: https://github.com/settings/tokens")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait for the rate limit window to reset and run again")

	ErrFetchPullRequests = NewAppError(TypeVCS, "failed to fetch pull requests", nil)
)

// Chat errors
var (
	ErrSlackDelivery = NewAppError(TypeChat, "Slack rejected the message", nil).
				WithSuggestion("Check SLACK_API_TOKEN and that the bot is a member of SLACK_CHANNEL")
)

// Data errors
var (
	ErrMalformedPullRequest = NewAppError(TypeData, "pull request data is incomplete", nil)
)
