package reputation

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
)

// OpenPhish checks URLs against the OpenPhish feed, a newline-separated
// list of known phishing URLs. Without a feed URL the provider is a stub.
type OpenPhish struct {
	feedURL    string
	httpClient *http.Client
}

// NewOpenPhish creates an OpenPhish provider for the given feed URL.
func NewOpenPhish(feedURL string) *OpenPhish {
	return &OpenPhish{
		feedURL:    feedURL,
		httpClient: &http.Client{},
	}
}

// Name implements Provider.
func (o *OpenPhish) Name() string { return "openphish" }

// Check implements Provider. The feed is streamed line by line; a hit is
// any feed entry containing the normalized URL, so both exact listings
// and listings with extra path segments match.
func (o *OpenPhish) Check(ctx context.Context, url string) (bool, error) {
	if o.feedURL == "" {
		return false, ErrNotConfigured
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, o.feedURL, http.NoBody)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("openphish feed returned %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), url) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("read feed: %w", err)
	}
	return false, nil
}
