package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds identifiers accepted at the API boundary.
// An ISBN-13 with hyphens is 17 characters; the slack covers prefixes such
// as "ISBN " and stray whitespace.
const maxIdentifierLength = 64

// ValidateIdentifier rejects identifiers that are unsafe to embed in a
// cache key or an upstream query. It is intentionally permissive: ISBN
// checksums and formats are left for the upstream catalog to judge.
//
// The rules:
//   - No empty (or whitespace-only) identifiers
//   - No control characters or null bytes
//   - Maximum length of 64 characters
func ValidateIdentifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidIdentifier, "identifier cannot be empty")
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidIdentifier, "identifier too long (max %d characters)", maxIdentifierLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIdentifier, "identifier contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "URL cannot be parsed")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}

	return nil
}
