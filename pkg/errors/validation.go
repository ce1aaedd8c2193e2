package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateNodeID validates a document node identifier.
//
// IDs end up in cache keys, store records and DOT output, so the rules are
// conservative:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No control characters or whitespace
//   - No quotes or backslashes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "node id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidDocument, "node id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDocument, "node id %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, `"'\`) {
		return New(ErrCodeInvalidDocument, "node id %q contains quotes or backslashes", id)
	}

	return nil
}

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor validates a CSS-style hex color (#rgb, #rrggbb or #rrggbbaa).
// The empty string is accepted and means "no fill".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidDocument, "invalid color %q (want #rgb, #rrggbb or #rrggbbaa)", color)
	}
	return nil
}

// ValidatePath validates a relative file path referenced by a document
// (image sources, golden snapshots). It prevents path traversal.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateDimension validates a width or height given in a document or
// request. Negative values are rejected; zero is allowed.
func ValidateDimension(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidDocument, "%s cannot be negative (got %d)", name, v)
	}
	return nil
}
