// Package notify is the seam to the staff-notification channel. The channel
// itself lives outside this service; the core only needs something to hand
// a ticket to. The default is a no-op.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"frontdesk/model"
)

type Notifier interface {
	NotifyStaff(ctx context.Context, ticket *model.Ticket) error
}

// Noop discards notifications. Used when no webhook is configured.
type Noop struct{}

func (Noop) NotifyStaff(ctx context.Context, ticket *model.Ticket) error {
	return nil
}

// Webhook POSTs the ticket as JSON to a configured URL.
type Webhook struct {
	url        string
	httpClient *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (w *Webhook) NotifyStaff(ctx context.Context, ticket *model.Ticket) error {
	body, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned %d", resp.StatusCode)
	}
	return nil
}
