package errors

import (
	"strings"
	"unicode"
)

// newickReserved lists characters that cannot appear in an unquoted taxon
// label without breaking Newick round-trips.
const newickReserved = "(),:;[]"

// ValidateTaxonLabel validates a leaf label read from an external source.
//
// Validation rules:
//   - No empty labels
//   - Maximum length of 256 characters
//   - No control characters
//   - None of the Newick structural characters "(),:;[]"
func ValidateTaxonLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "taxon label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidLabel, "taxon label too long (max 256 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "taxon label %q contains control characters", label)
		}
	}

	if i := strings.IndexAny(label, newickReserved); i >= 0 {
		return New(ErrCodeInvalidLabel, "taxon label %q contains reserved character %q", label, label[i])
	}

	return nil
}

// ValidatePath validates an output file path given on the command line.
// It rejects empty paths, null bytes and paths longer than 500 characters.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	}

	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidPath, "path contains null byte")
	}

	return nil
}
