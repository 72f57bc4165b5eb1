package errors

import (
	"fmt"
	"strings"
)

// MetaViolations is the meta key holding per-field messages of a failed validation
const MetaViolations = "validation_errors"

// Violation is one problem with one input field
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations keeps field problems in the order they were found, so the
// rendered message is stable across runs.
type Violations []Violation

// NewViolations returns an empty set of violations
func NewViolations() *Violations {
	return &Violations{}
}

// Error joins every violation, grouping messages of the same field
func (v Violations) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}

	grouped := v.ByField()
	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, field := range v.fieldOrder() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(grouped[field], ", "))
	}
	return b.String()
}

// Add records a violation
func (v *Violations) Add(field, message string) {
	*v = append(*v, Violation{Field: field, Message: message})
}

// Addf records a formatted violation
func (v *Violations) Addf(field, format string, args ...any) {
	v.Add(field, fmt.Sprintf(format, args...))
}

// ByField groups messages by field name
func (v Violations) ByField() map[string][]string {
	out := make(map[string][]string, len(v))
	for _, violation := range v {
		out[violation.Field] = append(out[violation.Field], violation.Message)
	}
	return out
}

func (v Violations) fieldOrder() []string {
	seen := make(map[string]bool, len(v))
	var order []string
	for _, violation := range v {
		if !seen[violation.Field] {
			seen[violation.Field] = true
			order = append(order, violation.Field)
		}
	}
	return order
}

// Err returns nil when nothing was recorded, otherwise an InvalidArgument
// error carrying the grouped messages under MetaViolations
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return InvalidArgument(v.Error()).WithMeta(MetaViolations, v.ByField())
}

// ValidationBuilder chains checks on request fields
type ValidationBuilder struct {
	found Violations
}

// NewValidationBuilder starts an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{}
}

// Field records message against field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.found.Add(field, message)
	return vb
}

// Fieldf records a formatted message against field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	vb.found.Addf(field, format, args...)
	return vb
}

// RequiredField marks field as missing
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField marks field as present but unusable
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// Build returns nil or the InvalidArgument error for everything recorded
func (vb *ValidationBuilder) Build() error {
	return vb.found.Err()
}

// ValidateRequired flags blank strings
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange flags ints outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidateEnum flags values missing from allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
}
