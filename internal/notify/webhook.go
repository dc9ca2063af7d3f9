package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	webhookTimeout   = 10 * time.Second
	webhookUserAgent = "cleanpkgcache-notify/1.0"
)

type webhookNotifier struct {
	url     string
	headers map[string]string
	client  *http.Client
}

func NewWebhook(url string, headers map[string]string) (Notifier, error) {
	trimmedURL := strings.TrimSpace(url)
	if trimmedURL == "" {
		return nil, fmt.Errorf("config.url is required")
	}

	copyHeaders := make(map[string]string, len(headers))
	for k, v := range headers {
		copyHeaders[k] = v
	}

	return &webhookNotifier{
		url:     trimmedURL,
		headers: copyHeaders,
		client:  &http.Client{Timeout: webhookTimeout},
	}, nil
}

func (w *webhookNotifier) Notify(ctx context.Context, event Event) error {
	req, err := w.buildRequest(ctx, event)
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post cleanup event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook for run %q answered %s", event.Run, resp.Status)
	}

	return nil
}

func (w *webhookNotifier) buildRequest(ctx context.Context, event Event) (*http.Request, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode cleanup event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", webhookUserAgent)
	// configured headers win over the defaults above
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}
