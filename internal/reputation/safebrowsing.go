package reputation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultSafeBrowsingEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

// SafeBrowsing queries the Google Safe Browsing v4 lookup API. Without
// an API key the provider is a stub and never reports a hit.
type SafeBrowsing struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

type threatEntry struct {
	URL string `json:"url"`
}

type threatInfo struct {
	ThreatTypes      []string      `json:"threatTypes"`
	PlatformTypes    []string      `json:"platformTypes"`
	ThreatEntryTypes []string      `json:"threatEntryTypes"`
	ThreatEntries    []threatEntry `json:"threatEntries"`
}

type lookupRequest struct {
	Client struct {
		ClientID      string `json:"clientId"`
		ClientVersion string `json:"clientVersion"`
	} `json:"client"`
	ThreatInfo threatInfo `json:"threatInfo"`
}

type lookupResponse struct {
	Matches []json.RawMessage `json:"matches"`
}

// NewSafeBrowsing creates a Safe Browsing provider. An empty endpoint
// selects the public API; an empty apiKey makes the provider a stub.
func NewSafeBrowsing(apiKey, endpoint string) *SafeBrowsing {
	if endpoint == "" {
		endpoint = defaultSafeBrowsingEndpoint
	}
	return &SafeBrowsing{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// Name implements Provider.
func (s *SafeBrowsing) Name() string { return "safe_browsing" }

// Check implements Provider. It issues a threatMatches:find lookup and
// reports a hit when the API returns at least one match.
func (s *SafeBrowsing) Check(ctx context.Context, url string) (bool, error) {
	if s.apiKey == "" {
		return false, ErrNotConfigured
	}

	req := lookupRequest{}
	req.Client.ClientID = "linkguard"
	req.Client.ClientVersion = "1.0"
	req.ThreatInfo = threatInfo{
		ThreatTypes:      []string{"MALWARE", "SOCIAL_ENGINEERING", "UNWANTED_SOFTWARE", "POTENTIALLY_HARMFUL_APPLICATION"},
		PlatformTypes:    []string{"ANY_PLATFORM"},
		ThreatEntryTypes: []string{"URL"},
		ThreatEntries:    []threatEntry{{URL: url}},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return false, fmt.Errorf("marshal lookup request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("safe browsing returned %d", resp.StatusCode)
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return len(result.Matches) > 0, nil
}
