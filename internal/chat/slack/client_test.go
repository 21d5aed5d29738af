package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainErrors "github.com/faizalzakaria/slack-pull-reminder/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockHTTPClient is a mock for chat.HTTPClient
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func TestSlackClient_Send(t *testing.T) {
	t.Run("should post the payload with the bot token", func(t *testing.T) {
		// Arrange
		var received Message
		var auth, contentType string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			contentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		client := NewSlackClient(server.URL, "xoxb-token", "#reviews", server.Client())

		// Act
		err := client.Send(context.Background(), "hello")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Bearer xoxb-token", auth)
		assert.Contains(t, contentType, "application/json")
		assert.Equal(t, Message{
			Channel:   "#reviews",
			Username:  "Pull Request Reminder",
			IconEmoji: ":bell:",
			Text:      "hello",
		}, received)
	})

	t.Run("should surface the slack error text when ok is false", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
		}))
		defer server.Close()

		client := NewSlackClient(server.URL, "xoxb-token", "#missing", server.Client())

		// Act
		err := client.Send(context.Background(), "hello")

		// Assert
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrSlackDelivery))
		assert.Contains(t, err.Error(), "channel_not_found")
	})

	t.Run("should fail on non 2xx responses", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewSlackClient(server.URL, "xoxb-token", "#reviews", server.Client())

		// Act
		err := client.Send(context.Background(), "hello")

		// Assert
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrSlackDelivery))
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("should fail on an undecodable answer", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewSlackClient(server.URL, "xoxb-token", "#reviews", server.Client())

		// Act
		err := client.Send(context.Background(), "hello")

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error decoding slack response")
	})

	t.Run("should wrap transport failures", func(t *testing.T) {
		// Arrange
		mockClient := new(MockHTTPClient)
		transportErr := errors.New("connection refused")
		mockClient.On("Do", mock.Anything).Return(nil, transportErr)

		client := NewSlackClient("https://slack.invalid/api/chat.postMessage", "xoxb-token", "#reviews", mockClient)

		// Act
		err := client.Send(context.Background(), "hello")

		// Assert
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrSlackDelivery))
		assert.True(t, errors.Is(err, transportErr))
		mockClient.AssertExpectations(t)
	})
}
