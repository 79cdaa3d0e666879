package provision

import (
	"fmt"
	"net/url"
)

// WorkerDomain derives the protected-domain string for a worker URL:
// the hostname, with the URL path appended unless it is empty or "/".
// Cloudflare matches Access applications by this string.
func WorkerDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse worker url %q: %w", rawURL, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("worker url %q has no hostname", rawURL)
	}

	domain := u.Hostname()
	if u.Path != "" && u.Path != "/" {
		domain += u.Path
	}
	return domain, nil
}
