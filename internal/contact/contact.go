// Package contact validates contact form input and composes the mailto link
// that hands a valid submission to the visitor's mail client.
//
// Validation is pure: it never sends anything anywhere. A successful result
// is passed to a Composer, whose URI the page navigates to.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field length bounds, counted in characters after trimming.
const (
	NameMin    = 2
	NameMax    = 100
	EmailMax   = 255
	MessageMin = 10
	MessageMax = 1000
)

// Field names, in declaration order.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// ErrValidation is wrapped by every *ValidationError.
var ErrValidation = errors.New("validation error")

// validate is safe for concurrent use and caches parsed rules.
var validate = validator.New()

// RawInput is the form payload exactly as the visitor typed it.
type RawInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Submission is a trimmed, fully valid contact request.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Kind classifies a field violation.
type Kind string

const (
	TooShort      Kind = "too_short"
	TooLong       Kind = "too_long"
	InvalidFormat Kind = "invalid_format"
)

// FieldError is one violation scoped to a named field.
type FieldError struct {
	Field string `json:"field"`
	Kind  Kind   `json:"kind"`
}

// Message returns the text shown next to the offending input.
func (fe FieldError) Message() string {
	if fe.Field == "" {
		return "Invalid input"
	}
	label := strings.ToUpper(fe.Field[:1]) + fe.Field[1:]
	switch fe.Kind {
	case TooShort:
		return fmt.Sprintf("%s must be at least %d characters", label, minFor(fe.Field))
	case TooLong:
		return fmt.Sprintf("%s must be less than %d characters", label, maxFor(fe.Field))
	case InvalidFormat:
		return "Please enter a valid email address"
	default:
		return label + " is invalid"
	}
}

func minFor(field string) int {
	switch field {
	case FieldName:
		return NameMin
	case FieldMessage:
		return MessageMin
	default:
		return 1
	}
}

func maxFor(field string) int {
	switch field {
	case FieldName:
		return NameMax
	case FieldEmail:
		return EmailMax
	default:
		return MessageMax
	}
}

// ValidationError carries every field violation of a rejected submission, in
// field declaration order. Use errors.Is(err, ErrValidation) for a simple
// check or errors.As to reach the individual FieldErrors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+string(fe.Kind))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// For returns the violation for field, if any.
func (e *ValidationError) For(field string) (FieldError, bool) {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Validate trims and checks all three fields. Every field is evaluated so the
// caller can surface all problems at once; a submission is either wholly
// valid or rejected with a *ValidationError.
func Validate(in RawInput) (Submission, error) {
	sub := Submission{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}

	var errs []FieldError
	if kind, ok := checkLength(sub.Name, NameMin, NameMax); !ok {
		errs = append(errs, FieldError{Field: FieldName, Kind: kind})
	}
	if kind, ok := checkEmail(sub.Email); !ok {
		errs = append(errs, FieldError{Field: FieldEmail, Kind: kind})
	}
	if kind, ok := checkLength(sub.Message, MessageMin, MessageMax); !ok {
		errs = append(errs, FieldError{Field: FieldMessage, Kind: kind})
	}

	if len(errs) > 0 {
		return Submission{}, &ValidationError{Errors: errs}
	}
	return sub, nil
}

func checkLength(s string, lo, hi int) (Kind, bool) {
	n := utf8.RuneCountInString(s)
	switch {
	case n < lo:
		return TooShort, false
	case n > hi:
		return TooLong, false
	}
	return "", true
}

// checkEmail reports at most one violation. An empty address is a format
// problem rather than a length one.
func checkEmail(s string) (Kind, bool) {
	if s == "" {
		return InvalidFormat, false
	}
	if utf8.RuneCountInString(s) > EmailMax {
		return TooLong, false
	}
	if !ValidEmail(s) {
		return InvalidFormat, false
	}
	return "", true
}

// ValidEmail reports whether s is a well-formed address whose domain has at
// least one dot and does not end in one, so local-only hosts like
// "user@localhost" and "user@example.com." are rejected.
func ValidEmail(s string) bool {
	if err := validate.Var(s, "required,email"); err != nil {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}
