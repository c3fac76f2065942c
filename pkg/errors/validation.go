package errors

import (
	"strings"
	"unicode"
)

const (
	maxIDLength   = 256
	maxNameLength = 128
)

// ValidateNodeID validates a business node or edge identifier.
//
// Identifiers are caller-assigned and may contain any printable characters,
// including separators such as '_' or ':'. Only empty ids, control characters
// and overly long ids are rejected.
func ValidateNodeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidGraph, "id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidGraph, "id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "id %q contains invalid control characters", id)
		}
	}

	return nil
}

// ValidateName validates a system or group name.
// Names are display strings, so the rules only reject blank and control input.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name %q contains invalid control characters", name)
		}
	}

	return nil
}
