package errors

import (
	"strings"
	"unicode"
)

// ValidateDatasetName validates a dataset name for safety and correctness.
// Dataset names become scopes and cache-key components, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateDatasetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDataset, "dataset name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidDataset, "dataset name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "dataset name contains control characters")
		}
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output path.
// It rejects empty paths and null bytes; everything else is left to the
// operating system.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "output path contains a null byte")
	}
	return nil
}
