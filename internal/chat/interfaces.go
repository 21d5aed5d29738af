package chat

import (
	"context"
	"net/http"
)

// Notifier delivers one text message to the configured channel.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// HTTPClient is the part of *http.Client the notifiers need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
