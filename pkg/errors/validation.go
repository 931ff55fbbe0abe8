package errors

import (
	"strings"
	"unicode"
)

// MaxTopicIDLength bounds the length of a topic identifier in bytes.
const MaxTopicIDLength = 256

// ValidateTopicID validates a topic identifier taken from a query parameter
// or command-line flag.
//
// The rules are conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 bytes
func ValidateTopicID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "topic id cannot be empty")
	}

	if len(id) > MaxTopicIDLength {
		return New(ErrCodeInvalidID, "topic id too long (max %d characters)", MaxTopicIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "topic id contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a local tree file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
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

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
