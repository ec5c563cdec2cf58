package parser

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeLink turns user input into an absolute http(s) URL.
// Accepts formats like:
// - "https://example.com/a" -> unchanged
// - "Example.com/a" -> "https://example.com/a"
// Empty input yields an empty link.
func NormalizeLink(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid link %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid link %q. Only http and https are supported", raw)
	}

	host := strings.ToLower(u.Hostname())
	if host != "localhost" && !strings.Contains(host, ".") {
		return "", fmt.Errorf("invalid link %q. Missing domain", raw)
	}
	u.Host = strings.ToLower(u.Host)

	return u.String(), nil
}
