// Package validator installs payload validation as echo's Validator.
package validator

import (
	domainerrors "buildops/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator wraps go-playground validation behind echo's Validator interface.
type Validator struct {
	validate *playground.Validate
}

// New builds the validator used by the HTTP server.
func New() *Validator {
	return &Validator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate checks the bound payload. Failures are collected into a
// field-to-message map and surfaced as one structured 400.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return domainerrors.ErrValidationFailed
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldKey(fieldErr)] = fieldMessage(fieldErr)
	}

	return domainerrors.NewValidationError(fields)
}

// fieldKey reports the payload key the failure belongs to, in snake_case to
// match the JSON wire form.
func fieldKey(fieldErr playground.FieldError) string {
	return toSnake(fieldErr.Field())
}

func fieldMessage(fieldErr playground.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	case "min":
		return "must be at least " + fieldErr.Param() + " characters"
	default:
		return "failed validation: " + fieldErr.Tag()
	}
}

func toSnake(name string) string {
	runes := []rune(name)
	out := make([]rune, 0, len(runes)+4)
	for i, r := range runes {
		switch {
		case r >= 'A' && r <= 'Z':
			// Break before an uppercase run only at its start or where a new
			// word begins, so VatID becomes vat_id rather than vat_i_d.
			if i > 0 && (isLowerOrDigit(runes[i-1]) || (i+1 < len(runes) && isLower(runes[i+1]))) {
				out = append(out, '_')
			}
			r += 'a' - 'A'
		case r >= '0' && r <= '9':
			if i > 0 && isLower(runes[i-1]) {
				out = append(out, '_')
			}
		}
		out = append(out, r)
	}

	return string(out)
}

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isLowerOrDigit(r rune) bool {
	return isLower(r) || (r >= '0' && r <= '9')
}
