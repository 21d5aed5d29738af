package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/faizalzakaria/slack-pull-reminder/internal/chat"
	domainErrors "github.com/faizalzakaria/slack-pull-reminder/internal/errors"
	"github.com/faizalzakaria/slack-pull-reminder/internal/logger"
)

var _ chat.Notifier = (*SlackClient)(nil)

const (
	Username  = "Pull Request Reminder"
	IconEmoji = ":bell:"

	defaultTimeout = 30 * time.Second
)

type (
	// Message is the chat.postMessage payload.
	Message struct {
		Channel   string `json:"channel"`
		Username  string `json:"username"`
		IconEmoji string `json:"icon_emoji"`
		Text      string `json:"text"`
	}

	// Answer is Slack's acknowledgement.
	Answer struct {
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}
)

type SlackClient struct {
	apiURL  string
	token   string
	channel string
	client  chat.HTTPClient
}

// NewSlackClient posts to apiURL as the given bot token. A nil client uses an
// *http.Client with a timeout.
func NewSlackClient(apiURL, token, channel string, client chat.HTTPClient) *SlackClient {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &SlackClient{
		apiURL:  apiURL,
		token:   token,
		channel: channel,
		client:  client,
	}
}

func (s *SlackClient) Send(ctx context.Context, text string) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(Message{
		Channel:   s.channel,
		Username:  Username,
		IconEmoji: IconEmoji,
		Text:      text,
	})
	if err != nil {
		return fmt.Errorf("error encoding slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return domainErrors.ErrSlackDelivery.WithError(err).WithContext("channel", s.channel)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug("error closing slack response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domainErrors.ErrSlackDelivery.
			WithContext("channel", s.channel).
			WithContext("status_code", resp.StatusCode).
			WithContext("detail", fmt.Sprintf("unexpected status %s: %s", resp.Status, bytes.TrimSpace(snippet)))
	}

	var answer Answer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return fmt.Errorf("error decoding slack response: %w", err)
	}

	if !answer.OK {
		log.Error("slack rejected message",
			"channel", s.channel,
			"error", answer.Error)
		return domainErrors.ErrSlackDelivery.
			WithContext("channel", s.channel).
			WithContext("detail", answer.Error)
	}

	log.Debug("slack message delivered",
		"channel", s.channel,
		"size", len(text))

	return nil
}
