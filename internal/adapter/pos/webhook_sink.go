package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sunitsen/flame/internal/domain/model"
)

// WebhookSink delivers POS events over HTTP POST. A 2xx response is a
// successful delivery; anything else is a failed attempt.
type WebhookSink struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebhookSink creates the HTTP sink with an explicit request timeout.
func NewWebhookSink(endpoint string, timeout time.Duration, logger *slog.Logger) (*WebhookSink, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("webhook url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookSink{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Deliver posts the event payload to the webhook endpoint. The event id is
// attached as idempotency key so consumers can dedupe at-least-once
// redeliveries.
func (s *WebhookSink) Deliver(ctx context.Context, event *model.POSEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", event.ID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		s.logger.Error("webhook delivery rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("event_id", event.ID),
			slog.String("body", string(respBody)),
		)
		return fmt.Errorf("webhook delivery failed: %s", resp.Status)
	}
	return nil
}
