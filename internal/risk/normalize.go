// Package risk implements the heuristic scoring pipeline: URL
// normalization, rule-based URL and text scoring, and severity
// classification.
package risk

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/guardiao60/linkguard/internal/domain"
)

// trackingParams are stripped from every query string during normalization.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"gclid":        {},
	"fbclid":       {},
}

// Normalize returns the canonical form of a submitted URL: whitespace
// trimmed, fragment cleared, tracking parameters removed, hostname
// lowercased. Normalizing an already-normalized URL is a no-op.
// Returns domain.ErrInvalidURL on anything unparsable or relative.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidURL, raw)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidURL, raw)
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = stripTracking(u.RawQuery)
	u.Host = lowercaseHost(u.Host)

	return u.String(), nil
}

// stripTracking removes denylisted parameters without reordering the
// survivors. url.Values.Encode sorts keys, so the raw query is filtered
// segment by segment instead.
func stripTracking(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	segments := strings.Split(rawQuery, "&")
	kept := segments[:0]
	for _, seg := range segments {
		key := seg
		if i := strings.IndexByte(seg, '='); i >= 0 {
			key = seg[:i]
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if _, drop := trackingParams[key]; drop {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, "&")
}

// lowercaseHost lowercases the hostname while leaving any port intact.
func lowercaseHost(host string) string {
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.HasSuffix(host, "]") {
		return strings.ToLower(host[:i]) + host[i:]
	}
	return strings.ToLower(host)
}
