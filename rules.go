package schemaform

// ValidationRules carries the constraint keywords extracted from a property
// schema. Pointer fields distinguish "absent" from a zero bound; exclusive
// bounds are tracked as flags next to the bound itself, so minimum=5 with
// ExclusiveMinimum means "strictly greater than 5".
type ValidationRules struct {
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MultipleOf       *float64

	MinLength *int
	MaxLength *int
	Pattern   string
	Format    string

	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	Enum     []any
	Const    any
	HasConst bool

	// Custom holds cross-field predicates registered programmatically; they
	// run after the keyword checks and only on non-empty values.
	Custom []CustomRule
}

// CustomRule is a named predicate over a decoded value. Check returns nil
// when the value satisfies the rule; a non-nil error supplies the message
// fragment appended to the field identifier.
type CustomRule struct {
	Name  string
	Check func(value any) error
}

// IsZero reports whether no keyword constraint is set. Custom rules count as
// constraints.
func (r *ValidationRules) IsZero() bool {
	if r == nil {
		return true
	}
	return r.Minimum == nil && r.Maximum == nil &&
		!r.ExclusiveMinimum && !r.ExclusiveMaximum &&
		r.MultipleOf == nil &&
		r.MinLength == nil && r.MaxLength == nil &&
		r.Pattern == "" && r.Format == "" &&
		r.MinItems == nil && r.MaxItems == nil && !r.UniqueItems &&
		len(r.Enum) == 0 && !r.HasConst && len(r.Custom) == 0
}
