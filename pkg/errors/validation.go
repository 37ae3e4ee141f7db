package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// chartNameRegex matches chart names usable as file stems and URL segments.
var chartNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidateChartName validates the name of a chart spec as it appears in
// URLs served by the HTTP API and in output file names.
//
// The rules are conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Letters, digits, '-' and '_' only, starting with a letter or digit
func ValidateChartName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "chart name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "chart name too long (max 128 characters)")
	}
	if !chartNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid chart name: %q", name)
	}
	return nil
}

// ValidatePath validates a file path referenced from a chart spec (for
// example a GeoJSON file). It prevents path traversal out of the spec's
// directory.
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
