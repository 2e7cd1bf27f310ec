package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// categoryNameRegex matches valid dashboard category names.
var categoryNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateCategory validates a dashboard category name for safety and
// correctness. Category names become store keys and URL path segments, so
// the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateCategory(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCategory, "category name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidCategory, "category name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCategory, "category name contains invalid control characters")
		}
	}

	if !categoryNameRegex.MatchString(name) {
		return New(ErrCodeInvalidCategory, "invalid category name: %q", name)
	}

	return nil
}

// ValidateItemID validates a chart item identifier for safety.
// Item ids are image filenames; they must be simple basenames without path
// components or traversal sequences.
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItemID, "item id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidItemID, "item id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItemID, "item id contains invalid control characters")
		}
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidItemID, "item id cannot contain path separators")
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidItemID, "item id cannot contain path traversal sequences (..)")
	}

	return nil
}

// tierNameRegex matches valid breakpoint tier names (lg, md, sm, xs, xxs).
var tierNameRegex = regexp.MustCompile(`^[a-z]{1,4}$`)

// ValidateTier validates a breakpoint tier name.
// Tier existence is checked separately against the breakpoint table; this
// only guards the syntactic shape.
func ValidateTier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTier, "tier name cannot be empty")
	}

	if !tierNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTier, "invalid tier name: %q", name)
	}

	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
