package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds source identifiers and output names.
const maxNameLength = 512

// ValidateSourceName validates the identifier recorded as metadata.source.
// Identifiers arrive from command-line arguments and HTTP query strings and
// end up verbatim in the output document.
//
// Validation rules:
//   - No empty names
//   - Maximum length of 512 bytes
//   - No null bytes or control characters
func ValidateSourceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "source name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "source name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "source name contains invalid control characters")
		}
	}
	return nil
}

// ValidateOutputName validates a configured output file name before it is
// sanitized. It rejects names that cannot be turned into a usable file name.
func ValidateOutputName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "output name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "output name too long (max %d characters)", maxNameLength)
	}
	if strings.ContainsRune(name, '\x00') {
		return New(ErrCodeInvalidPath, "output name contains a null byte")
	}
	return nil
}
