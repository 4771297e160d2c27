package middleware

import (
	"fmt"
	"strings"
)

// Input validation and sanitization utilities

const maxNichoLen = 200

// ValidateNicho checks the one required brief field.
func ValidateNicho(nicho string) error {
	trimmed := strings.TrimSpace(nicho)
	if trimmed == "" {
		return fmt.Errorf("nicho é obrigatório")
	}
	if len(trimmed) > maxNichoLen {
		return fmt.Errorf("nicho muito longo (máximo %d caracteres)", maxNichoLen)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates the list limit parameter
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 10 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
