package errors

import (
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound            = fmt.Errorf("not found")
	ErrAlreadyExists       = fmt.Errorf("already exists")
	ErrInvalidInput        = fmt.Errorf("invalid input")
	ErrConcurrencyConflict = fmt.Errorf("concurrency conflict")
	ErrUnauthorized        = fmt.Errorf("unauthorized")
	ErrRateLimited         = fmt.Errorf("rate limit exceeded")
)

var (
	ErrIndustryNotFound      = fmt.Errorf("industry %w", ErrNotFound)
	ErrCompanyNotFound       = fmt.Errorf("company %w", ErrNotFound)
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrIndustryAlreadyExists = fmt.Errorf("industry %w", ErrAlreadyExists)
	ErrCompanyAlreadyExists  = fmt.Errorf("company %w", ErrAlreadyExists)
	ErrUsernameAlreadyExists = fmt.Errorf("username %w", ErrAlreadyExists)
	ErrEmailAlreadyExists    = fmt.Errorf("email %w", ErrAlreadyExists)
	ErrTermsNotAccepted      = fmt.Errorf("%w: terms not accepted", ErrInvalidInput)
)

// DetailedError pairs one of the sentinels above with a client-facing message.
type DetailedError struct {
	Kind   error
	Detail string
}

// Newf builds a DetailedError whose message is safe to return to callers.
func Newf(kind error, format string, args ...any) error {
	return &DetailedError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (d *DetailedError) Error() string {
	return d.Detail
}

func (d *DetailedError) Unwrap() error {
	return d.Kind
}

// ValidationError collects every failed field rule of a command.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add records a message for a field.
func (v *ValidationError) Add(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(v.Fields[f], ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (v *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
