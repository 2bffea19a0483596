package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/editorial-cms-api/internal/config"
	"github.com/rs/zerolog"
)

// revalidateNotifier posts a revalidation request to the frontend's
// cache-invalidation endpoint. Single attempt, bounded by the configured
// timeout; no retries.
type revalidateNotifier struct {
	cfg    *config.RevalidateConfig
	client *http.Client
	log    zerolog.Logger
}

// newRevalidateNotifier creates a new RevalidateNotifier
func newRevalidateNotifier(cfg *config.RevalidateConfig, log zerolog.Logger) *revalidateNotifier {
	return &revalidateNotifier{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log.With().Str("component", "revalidate").Logger(),
	}
}

// Notify sends one revalidation request for the given path. Callers log
// the returned error; it must never surface to an API response.
func (n *revalidateNotifier) Notify(ctx context.Context, path string) error {
	if n.cfg.FrontendURL == "" {
		n.log.Debug().Msg("No revalidation URL configured, skipping")
		return nil
	}

	body, err := json.Marshal(map[string]string{"path": path})
	if err != nil {
		return fmt.Errorf("failed to encode revalidation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.FrontendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build revalidation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Revalidate-Secret", n.cfg.Secret)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("revalidation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("revalidation returned status %d", resp.StatusCode)
	}

	n.log.Info().Str("path", path).Msg("Revalidation succeeded")
	return nil
}
