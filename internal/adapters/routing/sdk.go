package routing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// SDKLoader implements ports.SDKLoader by fetching the mapping SDK bootstrap
// script with the configured key. A 2xx response with a non-empty body counts
// as loaded.
type SDKLoader struct {
	sdkURL    string
	apiKey    string
	libraries string
	client    *http.Client
}

// NewSDKLoader creates a loader for the SDK at sdkURL.
func NewSDKLoader(sdkURL, apiKey string, timeout time.Duration) *SDKLoader {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SDKLoader{
		sdkURL:    sdkURL,
		apiKey:    apiKey,
		libraries: "places",
		client:    &http.Client{Timeout: timeout},
	}
}

// ScriptURL returns the SDK URL with key and libraries applied.
func (l *SDKLoader) ScriptURL() (string, error) {
	u, err := url.Parse(l.sdkURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSDKUnavailable, err)
	}
	q := u.Query()
	q.Set("key", l.apiKey)
	if l.libraries != "" {
		q.Set("libraries", l.libraries)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Load fetches the SDK once.
func (l *SDKLoader) Load(ctx context.Context) error {
	if l.apiKey == "" {
		return domain.ErrMissingAPIKey
	}
	src, err := l.ScriptURL()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSDKUnavailable, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSDKUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", domain.ErrSDKUnavailable, resp.StatusCode)
	}
	n, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSDKUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: empty script", domain.ErrSDKUnavailable)
	}
	return nil
}
