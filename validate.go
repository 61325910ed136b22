package schemaform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/jalvaro-lks/industry-core-hub-sub004/i18n"
)

// Validator walks a built tree against candidate data. The zero value is
// ready to use; Logger only affects schema-defect warnings (a pattern that
// does not compile), never the findings themselves.
type Validator struct {
	Logger *zap.Logger
}

// Validate runs the zero Validator. Both signatures are pure functions of
// their inputs and safe to call concurrently.
func Validate(tree *Tree, data any) *ValidationResult {
	return (&Validator{}).Validate(tree, data)
}

// Validate checks data against every root node in document order and
// returns the indexed result. Validation findings are data, never errors:
// a payload with zero findings is valid by definition.
func (v *Validator) Validate(tree *Tree, data any) *ValidationResult {
	log := v.Logger
	if log == nil {
		log = zap.NewNop()
	}
	w := &walker{log: log}
	root, _ := data.(map[string]any)
	if tree != nil {
		for _, n := range tree.Roots().Nodes() {
			val, present := root[n.Key]
			w.node(n, val, present, n.Key, nil)
		}
	}
	return newValidationResult(w.errs)
}

type walker struct {
	log  *zap.Logger
	errs ValidationErrors
}

func (w *walker) add(n *SchemaNode, id, rule string, value any, expected string, indices []int, params map[string]string) {
	code := rule
	if strings.HasPrefix(rule, "custom:") {
		code = RuleCustom
	}
	w.addCode(n, id, rule, code, value, expected, indices, params)
}

// addCode records a finding whose message template key differs from the rule
// kind (exclusive bounds share a rule with their inclusive form).
func (w *walker) addCode(n *SchemaNode, id, rule, code string, value any, expected string, indices []int, params map[string]string) {
	e := ValidationError{
		FieldID:    id,
		SchemaPath: n.ID,
		Rule:       rule,
		Severity:   SeverityError,
		Section:    n.Section,
		Value:      value,
		Expected:   expected,
	}
	if len(indices) > 0 {
		e.ArrayIndices = append([]int(nil), indices...)
	}
	e.Message = id + " " + i18n.T(code, params)
	w.errs = append(w.errs, e)
}

// node validates one tree node against its value. id carries concrete array
// indices; indices lists them outermost first.
func (w *walker) node(n *SchemaNode, val any, present bool, id string, indices []int) {
	if n == nil {
		return
	}
	if !present || isEmptyValue(val) {
		// required-and-empty short-circuits every other rule for the node
		if n.Required {
			w.add(n, id, RuleRequired, nil, "", indices, nil)
		}
		return
	}

	switch n.NodeType {
	case NodeObject:
		m, ok := val.(map[string]any)
		if !ok {
			w.add(n, id, RuleType, val, "object", indices, map[string]string{"expected": "object"})
			return
		}
		for _, c := range n.Properties.Nodes() {
			cv, ok := m[c.Key]
			w.node(c, cv, ok, id+"."+c.Key, indices)
		}
	case NodeArray:
		arr, ok := val.([]any)
		if !ok {
			w.add(n, id, RuleType, val, "array", indices, map[string]string{"expected": "array"})
			return
		}
		w.arrayRules(n, arr, id, indices)
		if n.ItemSchema != nil {
			for i, ev := range arr {
				w.node(n.ItemSchema, ev, true, id+"["+strconv.Itoa(i)+"]", append(indices, i))
			}
		}
	default:
		w.primitive(n, val, id, indices)
	}
	w.customRules(n, val, id, indices)
}

func (w *walker) arrayRules(n *SchemaNode, arr []any, id string, indices []int) {
	r := n.Rules
	if r == nil {
		if n.ArrayConstraints == nil {
			return
		}
		r = &ValidationRules{
			MinItems:    n.ArrayConstraints.MinItems,
			MaxItems:    n.ArrayConstraints.MaxItems,
			UniqueItems: n.ArrayConstraints.UniqueItems,
		}
	}
	if r.MinItems != nil && len(arr) < *r.MinItems {
		w.add(n, id, RuleMinItems, len(arr), fmt.Sprintf(">= %d items", *r.MinItems),
			indices, map[string]string{"limit": strconv.Itoa(*r.MinItems)})
	}
	if r.MaxItems != nil && len(arr) > *r.MaxItems {
		w.add(n, id, RuleMaxItems, len(arr), fmt.Sprintf("<= %d items", *r.MaxItems),
			indices, map[string]string{"limit": strconv.Itoa(*r.MaxItems)})
	}
	if r.UniqueItems {
		// canonical JSON sorts map keys, so equality is key-order independent
		seen := map[string]int{}
		for i, it := range arr {
			key := canonicalJSON(it)
			if _, dup := seen[key]; dup {
				w.add(n, id+"["+strconv.Itoa(i)+"]", RuleUniqueItems, it, "unique items",
					append(indices, i), nil)
				continue
			}
			seen[key] = i
		}
	}
}

func (w *walker) primitive(n *SchemaNode, val any, id string, indices []int) {
	switch n.PrimitiveType {
	case TypeNumber, TypeInteger:
		f, ok := numericValue(val)
		if !ok {
			w.add(n, id, RuleType, val, string(n.PrimitiveType), indices,
				map[string]string{"expected": string(n.PrimitiveType)})
			return
		}
		if n.PrimitiveType == TypeInteger && f != math.Trunc(f) {
			w.add(n, id, RuleType, val, "integer", indices, map[string]string{"expected": "integer"})
			return
		}
		w.numberRules(n, f, val, id, indices)
	case TypeBoolean, TypeCheckbox:
		if _, ok := val.(bool); !ok {
			w.add(n, id, RuleType, val, "boolean", indices, map[string]string{"expected": "boolean"})
			return
		}
		w.constRule(n, val, id, indices)
	case TypeEnum, TypeRadio:
		switch val.(type) {
		case map[string]any, []any:
			w.add(n, id, RuleType, val, "scalar", indices, map[string]string{"expected": "scalar"})
			return
		}
		w.enumRules(n, val, id, indices)
	default:
		s, ok := val.(string)
		if !ok {
			w.add(n, id, RuleType, val, "string", indices, map[string]string{"expected": "string"})
			return
		}
		w.stringRules(n, s, id, indices)
	}
	if n.PrimitiveType != TypeEnum && n.PrimitiveType != TypeRadio {
		w.enumRules(n, val, id, indices)
	}
}

func (w *walker) numberRules(n *SchemaNode, f float64, val any, id string, indices []int) {
	r := n.Rules
	if r == nil {
		return
	}
	if r.Minimum != nil {
		if r.ExclusiveMinimum && f <= *r.Minimum {
			w.addCode(n, id, RuleMinimum, "minimum.exclusive", val,
				fmt.Sprintf("> %v", *r.Minimum), indices,
				map[string]string{"limit": formatNumber(*r.Minimum)})
		} else if !r.ExclusiveMinimum && f < *r.Minimum {
			w.add(n, id, RuleMinimum, val, fmt.Sprintf(">= %v", *r.Minimum), indices,
				map[string]string{"limit": formatNumber(*r.Minimum)})
		}
	}
	if r.Maximum != nil {
		if r.ExclusiveMaximum && f >= *r.Maximum {
			w.addCode(n, id, RuleMaximum, "maximum.exclusive", val,
				fmt.Sprintf("< %v", *r.Maximum), indices,
				map[string]string{"limit": formatNumber(*r.Maximum)})
		} else if !r.ExclusiveMaximum && f > *r.Maximum {
			w.add(n, id, RuleMaximum, val, fmt.Sprintf("<= %v", *r.Maximum), indices,
				map[string]string{"limit": formatNumber(*r.Maximum)})
		}
	}
	if r.MultipleOf != nil && *r.MultipleOf != 0 && !isMultipleOf(f, *r.MultipleOf) {
		w.add(n, id, RuleMultipleOf, val, fmt.Sprintf("multiple of %v", *r.MultipleOf), indices,
			map[string]string{"factor": formatNumber(*r.MultipleOf)})
	}
	w.constRule(n, val, id, indices)
}

func (w *walker) stringRules(n *SchemaNode, s, id string, indices []int) {
	r := n.Rules
	runes := utf8.RuneCountInString(s)
	if r != nil {
		if r.MinLength != nil && runes < *r.MinLength {
			w.add(n, id, RuleMinLength, s, fmt.Sprintf(">= %d characters", *r.MinLength), indices,
				map[string]string{"limit": strconv.Itoa(*r.MinLength)})
		}
		if r.MaxLength != nil && runes > *r.MaxLength {
			w.add(n, id, RuleMaxLength, s, fmt.Sprintf("<= %d characters", *r.MaxLength), indices,
				map[string]string{"limit": strconv.Itoa(*r.MaxLength)})
		}
		if r.Pattern != "" {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				// bad schema authoring must not block submission
				w.log.Warn("invalid schema pattern, rule skipped",
					zap.String("path", n.ID), zap.String("pattern", r.Pattern), zap.Error(err))
			} else if !re.MatchString(s) {
				w.add(n, id, RulePattern, s, r.Pattern, indices,
					map[string]string{"pattern": r.Pattern})
			}
		}
	}
	format := widgetFormat(n)
	if format != "" && !checkFormat(format, s) {
		w.add(n, id, RuleFormat, s, format, indices, map[string]string{"format": format})
	}
	w.constRule(n, s, id, indices)
}

func (w *walker) enumRules(n *SchemaNode, val any, id string, indices []int) {
	r := n.Rules
	if r == nil {
		return
	}
	if len(r.Enum) > 0 {
		want := canonicalJSON(val)
		found := false
		for _, ev := range r.Enum {
			if canonicalJSON(ev) == want {
				found = true
				break
			}
		}
		if !found {
			values := make([]string, len(r.Enum))
			for i, ev := range r.Enum {
				values[i] = fmt.Sprint(ev)
			}
			joined := strings.Join(values, ", ")
			w.add(n, id, RuleEnum, val, joined, indices, map[string]string{"values": joined})
		}
	}
	if n.PrimitiveType == TypeEnum || n.PrimitiveType == TypeRadio {
		w.constRule(n, val, id, indices)
	}
}

func (w *walker) constRule(n *SchemaNode, val any, id string, indices []int) {
	r := n.Rules
	if r == nil || !r.HasConst {
		return
	}
	if canonicalJSON(val) != canonicalJSON(r.Const) {
		w.add(n, id, RuleConst, val, fmt.Sprint(r.Const), indices,
			map[string]string{"value": fmt.Sprint(r.Const)})
	}
}

func (w *walker) customRules(n *SchemaNode, val any, id string, indices []int) {
	if n.Rules == nil {
		return
	}
	for _, cr := range n.Rules.Custom {
		if cr.Check == nil {
			continue
		}
		if err := cr.Check(val); err != nil {
			w.add(n, id, "custom:"+cr.Name, val, "", indices,
				map[string]string{"name": cr.Name, "reason": err.Error()})
		}
	}
}

// widgetFormat maps a widget class back to its wire format name, falling
// back to the raw format keyword for formats without a dedicated widget
// (ipv4, uuid, ...).
func widgetFormat(n *SchemaNode) string {
	switch n.PrimitiveType {
	case TypeDate:
		return "date"
	case TypeDateTime:
		return "date-time"
	case TypeTime:
		return "time"
	case TypeEmail:
		return "email"
	case TypeURL:
		return "uri"
	}
	if n.Rules != nil {
		return n.Rules.Format
	}
	return ""
}

// isEmptyValue implements the uniform emptiness rule: nil, whitespace-only
// strings and empty arrays are empty; 0 and false are not.
func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	}
	return false
}

func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

// isMultipleOf tolerates binary rounding: 0.3 is a multiple of 0.1 even
// though math.Mod(0.3, 0.1) is not exactly zero.
func isMultipleOf(v, m float64) bool {
	q := v / m
	return math.Abs(q-math.Round(q)) < 1e-9
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// canonicalJSON serializes a decoded value with map keys sorted, giving a
// key-order-independent equality key for enum, const and uniqueItems.
func canonicalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("!%v", v)
	}
	return string(b)
}
