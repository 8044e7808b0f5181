package apperror

import (
	"sort"
	"strings"
)

const (
	// Fatal: storage unreachable or corrupt
	CodeStorage = "STORAGE_ERROR"

	// Recoverable input errors
	CodeDuplicateKey = "DUPLICATE_KEY"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeExport       = "EXPORT_ERROR"

	// Programmer error: filter field outside the closed set
	CodeInvalidField = "INVALID_FIELD"
)

var (
	ErrStorage      = New(CodeStorage, "storage unavailable")
	ErrDuplicateKey = New(CodeDuplicateKey, "duplicate key")
	ErrValidation   = New(CodeValidation, "validation failed")
	ErrNotFound     = New(CodeNotFound, "not found")
	ErrInvalidField = New(CodeInvalidField, "invalid field")
	ErrExport       = New(CodeExport, "export failed")
)

func validationMessage(fields map[string]string) string {
	if len(fields) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
