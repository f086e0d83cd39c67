package domain

import (
	"strconv"
	"strings"
)

// MaxQueryBytes bounds free-text queries accepted by search and chatbot.
const MaxQueryBytes = 4096

// ValidateQuery rejects empty, whitespace-only and oversized queries.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return NewValidationError("query", "is required")
	}
	if len(query) > MaxQueryBytes {
		return NewValidationError("query", "exceeds "+strconv.Itoa(MaxQueryBytes)+" bytes")
	}
	return nil
}
