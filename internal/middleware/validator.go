package middleware

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// maxURLLength bounds pasted links before they reach the analyzer.
const maxURLLength = 2048

// ValidateID checks that id is a UUID as minted for sessions and records
func ValidateID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s ID cannot be empty", kind)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid %s ID format", kind)
	}
	return nil
}

func ValidateSessionID(id string) error { return ValidateID("session", id) }

func ValidateRecordID(id string) error { return ValidateID("record", id) }

// SanitizeURLInput strips control characters and rejects oversized input.
// Scheme and host checks happen in the analysis layer.
func SanitizeURLInput(raw string) (string, error) {
	s := SanitizeString(raw)
	if len(s) > maxURLLength {
		return "", fmt.Errorf("URL too long (max %d characters)", maxURLLength)
	}
	return s, nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
