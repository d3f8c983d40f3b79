// Package reputation queries external blocklist providers and merges
// their verdicts into locally computed risk scores. Providers fail open:
// an unreachable or unconfigured provider never blocks a check, it only
// tags the result so callers can see which sources actually answered.
package reputation

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates a provider has no credentials or endpoint
// and is running as a stub.
var ErrNotConfigured = errors.New("reputation provider not configured")

// Provider checks a single normalized URL against one reputation source.
type Provider interface {
	// Name is the stable source tag, e.g. "safe_browsing".
	Name() string
	// Check reports whether url is listed by this source. A stubbed
	// provider returns ErrNotConfigured.
	Check(ctx context.Context, url string) (bool, error)
}
