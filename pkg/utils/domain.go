package utils

import (
	"net/url"
	"strings"
)

const wwwPrefix = "www."

// ExtractDomain returns the hostname of rawURL, lowercased, with one leading
// "www." removed. It reports false for URLs without a scheme or host.
func ExtractDomain(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}

	if u.Scheme == "" || u.Opaque != "" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}

	domain := strings.TrimPrefix(host, wwwPrefix)
	if domain == "" {
		return "", false
	}

	return domain, true
}

// IsInternalURL reports whether rawURL uses one of the browser's privileged
// schemes (chrome://, edge://, ...). Matching is case-insensitive.
func IsInternalURL(rawURL string, schemes []string) bool {
	idx := strings.Index(rawURL, ":")
	if idx <= 0 {
		return false
	}

	scheme := strings.ToLower(strings.TrimSpace(rawURL[:idx]))
	for _, s := range schemes {
		if strings.EqualFold(scheme, s) {
			return true
		}
	}

	return false
}
