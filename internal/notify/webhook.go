package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"newsquiz/internal/config"
	"newsquiz/internal/domain"
)

type webhookMessage struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Text    string `json:"text"` // chat webhooks render this field
}

// WebhookNotifier posts notification messages to an HTTP webhook.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier returns nil when no webhook is configured.
func NewWebhookNotifier(cfg config.NotifyConfig) *WebhookNotifier {
	if cfg.WebhookURL == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		url:        cfg.WebhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, subject, message string) error {
	payload, err := json.Marshal(webhookMessage{
		Subject: subject,
		Message: message,
		Text:    subject + "\n\n" + message,
	})
	if err != nil {
		return domain.NewInternalError("failed to encode notification", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return domain.NewInternalError("failed to build notification request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return domain.NewUpstreamError("notification request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.NewUpstreamError(fmt.Sprintf("notification webhook returned status %d", resp.StatusCode), nil)
	}
	return nil
}
