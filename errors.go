package schemaform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Rule kinds (exported consts for IDE completion and type safety by convention)
const (
	RuleRequired    = "required"
	RuleType        = "type"
	RuleMinimum     = "minimum"
	RuleMaximum     = "maximum"
	RuleMultipleOf  = "multipleOf"
	RuleMinLength   = "minLength"
	RuleMaxLength   = "maxLength"
	RulePattern     = "pattern"
	RuleFormat      = "format"
	RuleEnum        = "enum"
	RuleConst       = "const"
	RuleMinItems    = "minItems"
	RuleMaxItems    = "maxItems"
	RuleUniqueItems = "uniqueItems"
	RuleCustom      = "custom"
)

// Severity classifies a validation finding for UI surfaces.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError is a single finding against a concrete data location.
// FieldID carries real indices ("materials[0].name") while SchemaPath keeps
// the [item] placeholder form matching the tree node.
type ValidationError struct {
	FieldID    string   `json:"fieldId"`
	SchemaPath string   `json:"schemaPath"`
	Rule       string   `json:"rule"`
	Severity   Severity `json:"severity"`
	Section    string   `json:"section,omitempty"`
	Message    string   `json:"message"`
	// Value is the offending input, echoed for display; omitted for
	// required-but-absent findings.
	Value any `json:"value,omitempty"`
	// Expected is a short human description of the allowed shape.
	Expected string `json:"expected,omitempty"`
	// ArrayIndices lists the concrete indices on the path, outermost first.
	ArrayIndices []int `json:"arrayIndices,omitempty"`
}

// ValidationErrors is a collection of findings that implements error.
type ValidationErrors []ValidationError

// Error summarizes the first few findings.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ve)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := ve[i]
		fmt.Fprintf(b, "%s at %s", it.Rule, it.FieldID)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsValidationErrors extracts ValidationErrors from an error chain.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	if err == nil {
		return nil, false
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ValidationResult is the indexed outcome of validating one payload against
// a tree. The indexes are computed once at construction so UI code can do
// per-field and per-section lookups without rescanning.
type ValidationResult struct {
	Valid  bool
	Errors ValidationErrors

	// ByField groups findings by FieldID.
	ByField map[string]ValidationErrors
	// FieldsWithErrors lists the offending FieldIDs, sorted.
	FieldsWithErrors []string
	// SectionsWithErrors lists the offending sections, sorted.
	SectionsWithErrors []string
}

func newValidationResult(errs ValidationErrors) *ValidationResult {
	res := &ValidationResult{
		Valid:   len(errs) == 0,
		Errors:  errs,
		ByField: map[string]ValidationErrors{},
	}
	sections := map[string]bool{}
	for _, e := range errs {
		res.ByField[e.FieldID] = append(res.ByField[e.FieldID], e)
		if e.Section != "" {
			sections[e.Section] = true
		}
	}
	for id := range res.ByField {
		res.FieldsWithErrors = append(res.FieldsWithErrors, id)
	}
	sort.Strings(res.FieldsWithErrors)
	for s := range sections {
		res.SectionsWithErrors = append(res.SectionsWithErrors, s)
	}
	sort.Strings(res.SectionsWithErrors)
	return res
}

// FieldErrors returns the findings recorded against one field identifier.
func (r *ValidationResult) FieldErrors(fieldID string) ValidationErrors {
	if r == nil {
		return nil
	}
	return r.ByField[fieldID]
}

// HasFieldError reports whether the identifier has at least one finding.
func (r *ValidationResult) HasFieldError(fieldID string) bool {
	return len(r.FieldErrors(fieldID)) > 0
}

// Err bridges the result into the error domain: nil when valid, the
// ValidationErrors otherwise.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return r.Errors
}
