package validator

import (
	"errors"
	"fmt"
	"strings"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Violation codes produced by the rule primitives.
const (
	CodeRequired       = "required"
	CodeType           = "type"
	CodeMin            = "number.min"
	CodeMax            = "number.max"
	CodeRange          = "number.range"
	CodeInteger        = "number.integer"
	CodeMinLength      = "string.min_length"
	CodeMaxLength      = "string.max_length"
	CodeLength         = "string.length"
	CodePattern        = "string.pattern"
	CodeEnum           = "enum"
	CodeEmail          = "email"
	CodePhone          = "phone"
	CodeDateFormat     = "date.format"
	CodeUUID           = "uuid"
	CodeMinItems       = "array.min_items"
	CodeMaxItems       = "array.max_items"
	CodeMapKeys        = "map.keys"
	CodeDateOrder      = "date.order"
	CodeRangeOrder     = "range.order"
	CodeSumExceeded    = "sum.exceeded"
	CodeAvailable      = "available.exceeded"
	CodeLimitExceeded  = "limit.exceeded"
	CodeDuplicate      = "duplicate"
	CodeSameValue      = "same.value"
	CodeTransition     = "transition.illegal"
	CodeUnavailable    = "external.unavailable"
	CodeUnique         = "unique"
	CodeCapacity       = "capacity.exceeded"
	CodeNotFound       = "not_found"
	translationKeyBase = "validation."
)

// TranslationKey returns the catalog key for a violation code.
func TranslationKey(code string) string {
	return translationKeyBase + code
}

// ValidationError represents a single validation error with translation support.
// Only path, code and message are serialized; the translation metadata allows
// re-rendering the message in another locale.
type ValidationError struct {
	Path              Path           `json:"path"`
	Code              string         `json:"code"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"-"`
	TranslationValues map[string]any `json:"-"`
}

// NewError builds a ValidationError for the given code with the field name
// merged into the translation values.
func NewError(path Path, code, message string, values map[string]any) ValidationError {
	tv := make(map[string]any, len(values)+1)
	for k, v := range values {
		tv[k] = v
	}
	tv["field"] = path.Field()

	return ValidationError{
		Path:              path.Clone(),
		Code:              code,
		Message:           message,
		TranslationKey:    TranslationKey(code),
		TranslationValues: tv,
	}
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Path, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// Has reports whether any error is located exactly at path.
func (ve ValidationErrors) Has(path Path) bool {
	for _, err := range ve {
		if err.Path.Equal(path) {
			return true
		}
	}
	return false
}

// Touches reports whether any error is located at path, beneath it or above it.
func (ve ValidationErrors) Touches(path Path) bool {
	for _, err := range ve {
		if err.Path.HasPrefix(path) || path.HasPrefix(err.Path) {
			return true
		}
	}
	return false
}

// Covers reports whether any error is located at path or at one of its
// ancestors. Errors beneath path do not count.
func (ve ValidationErrors) Covers(path Path) bool {
	for _, err := range ve {
		if path.HasPrefix(err.Path) {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(path Path) []string {
	var messages []string
	for _, err := range ve {
		if err.Path.Equal(path) {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) GetErrors(path Path) []ValidationError {
	var errs []ValidationError
	for _, err := range ve {
		if err.Path.Equal(path) {
			errs = append(errs, err)
		}
	}
	return errs
}

func (ve ValidationErrors) ByCode(code string) []ValidationError {
	var errs []ValidationError
	for _, err := range ve {
		if err.Code == code {
			errs = append(errs, err)
		}
	}
	return errs
}

// Fields returns the rendered paths of all errors in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		key := err.Path.String()
		if !seen[key] {
			fields = append(fields, key)
			seen[key] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes multiple validation rules and returns any validation errors.
func Apply(rules ...Rule) error {
	errs := Collect(rules...)
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// Collect executes every rule and returns the failures in rule order.
// A nil result means all rules passed.
func Collect(rules ...Rule) ValidationErrors {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}
	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
