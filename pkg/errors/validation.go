package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// versionRegex matches tree-data version strings such as "3_26" or "3.25.1".
var versionRegex = regexp.MustCompile(`^[0-9]+([._][0-9]+)*$`)

// ValidateVersion validates a tree-data version string.
// Versions are used in cache keys and upstream URLs, so the validation is
// intentionally conservative: digits separated by dots or underscores only.
func ValidateVersion(version string) error {
	if version == "" {
		return New(ErrCodeInvalidVersion, "version cannot be empty")
	}

	if len(version) > 32 {
		return New(ErrCodeInvalidVersion, "version too long (max 32 characters)")
	}

	if !versionRegex.MatchString(version) {
		return New(ErrCodeInvalidVersion, "invalid version string: %q", version)
	}

	return nil
}

// ValidateNodeList validates a comma-separated node-id string as produced by
// the save-file collaborator. Each element must be a decimal integer;
// whitespace around elements is tolerated.
func ValidateNodeList(list string) error {
	if strings.TrimSpace(list) == "" {
		return New(ErrCodeInvalidNodes, "node list cannot be empty")
	}

	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return New(ErrCodeInvalidNodes, "node list contains an empty element")
		}
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return New(ErrCodeInvalidNodes, "invalid node id: %q", part)
			}
		}
	}

	return nil
}

// ValidateCachePath validates a cache directory path supplied via config.
// It prevents null bytes and control characters from reaching the filesystem.
func ValidateCachePath(path string) error {
	if path == "" {
		return nil // empty means "use the default"
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "cache path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "cache path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
