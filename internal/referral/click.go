package referral

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ClickRecorder reports referral clicks to the external backend so the agent's
// click statistics stay current. Recording is best-effort: callers log the
// returned error and move on, a failure never blocks the visitor's redirect.
type ClickRecorder struct {
	baseURL string
	client  *http.Client
}

func NewClickRecorder(baseURL string, client *http.Client) *ClickRecorder {
	return &ClickRecorder{baseURL: baseURL, client: client}
}

func (r *ClickRecorder) RecordClick(ctx context.Context, agentID string) error {
	url := fmt.Sprintf("%s/referral/click/%s", r.baseURL, agentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("build click request failed: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("record click failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("record click failed: status %d", resp.StatusCode)
	}
	return nil
}
