// Package report reconciles free-text validation messages against the flat
// field list for UI highlighting. It is the second-pass interpreter: the
// validator's structured findings collapse to plain strings at several
// boundaries (remote submodel responses, legacy endpoints), and this package
// recovers paths, rules and field bindings from those strings.
package report

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
	"github.com/jalvaro-lks/industry-core-hub-sub004/fieldpath"
)

// GeneralSection buckets messages whose path cannot be recovered or matched.
// They are never discarded: the user sees every failure, even imprecisely
// located.
const GeneralSection = "General"

// StructuredError is one normalized message.
type StructuredError struct {
	// Original is the raw message verbatim.
	Original string
	// Display is the user-facing rendition with the field label substituted
	// for the path prefix and an "(item N)" suffix inside arrays.
	Display string
	// Path is the extracted concrete path, indices included; empty for
	// General entries.
	Path string
	// NormalizedPath drops the indices; SchemaPath replaces them with
	// [item].
	NormalizedPath string
	SchemaPath     string
	// FieldID is the matched field's tree identifier, empty when no field
	// matched.
	FieldID      string
	Label        string
	Rule         string
	Section      string
	Severity     schemaform.Severity
	ArrayIndices []int
}

// Report is the indexed outcome of normalizing one message batch. All
// indexes are built once, at construction.
type Report struct {
	Errors []StructuredError
	// ByPath groups entries by concrete path; ByNormalizedPath by the
	// index-stripped path.
	ByPath           map[string][]StructuredError
	ByNormalizedPath map[string][]StructuredError
	// PathsWithErrors includes every failing path plus all its ancestors,
	// indexed and index-stripped alike, for highlighting containers.
	PathsWithErrors []string
	// DirectPaths lists only the exact failing paths.
	DirectPaths []string
	BySection   map[string][]StructuredError
	// General holds the entries without a recoverable path.
	General []StructuredError
}

// HasErrorAt reports whether path or one of its descendants failed.
func (r *Report) HasErrorAt(path string) bool {
	for _, p := range r.PathsWithErrors {
		if p == path {
			return true
		}
	}
	return false
}

// Manager matches raw messages against a field list. Build one per schema
// and reuse it across validation runs; Normalize is read-only.
type Manager struct {
	fields   []schemaform.FormField
	byExact  map[string]int
	byDotted map[string]int
	log      *zap.Logger
}

// Options configures a Manager.
type Options struct {
	// Logger receives unmatched-message debug logs; nil disables them.
	Logger *zap.Logger
}

// New builds a Manager over the flattened field list.
func New(fields []schemaform.FormField, opts Options) *Manager {
	m := &Manager{
		fields:   fields,
		byExact:  map[string]int{},
		byDotted: map[string]int{},
		log:      opts.Logger,
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	for i, f := range fields {
		if _, ok := m.byExact[f.ID]; !ok {
			m.byExact[f.ID] = i
		}
		if _, ok := m.byDotted[f.SchemaPath]; !ok {
			m.byDotted[f.SchemaPath] = i
		}
	}
	return m
}

// pathToken matches a dotted identifier with optional bracketed indices.
const pathToken = `([A-Za-z_][A-Za-z0-9_-]*(?:\[\d+\])?(?:\.[A-Za-z_][A-Za-z0-9_-]*(?:\[\d+\])?)*)`

// extractor pairs one message shape with the rule kind it implies. The
// table is ordered; the first match wins.
type extractor struct {
	re   *regexp.Regexp
	rule string
}

var extractors = []extractor{
	{regexp.MustCompile(`^` + pathToken + ` is required\.?$`), schemaform.RuleRequired},
	{regexp.MustCompile(`^` + pathToken + ` is (?:missing|mandatory)\.?$`), schemaform.RuleRequired},
	{regexp.MustCompile(`^(?:missing required (?:property|field) )'?` + pathToken + `'?$`), schemaform.RuleRequired},
	{regexp.MustCompile(`^` + pathToken + ` must be of type \w+$`), schemaform.RuleType},
	{regexp.MustCompile(`^` + pathToken + ` must be an? (?:object|array|string|number|integer|boolean|scalar)$`), schemaform.RuleType},
	{regexp.MustCompile(`^` + pathToken + ` must be at least -?\d+(?:\.\d+)? characters$`), schemaform.RuleMinLength},
	{regexp.MustCompile(`^` + pathToken + ` must be at most -?\d+(?:\.\d+)? characters$`), schemaform.RuleMaxLength},
	{regexp.MustCompile(`^` + pathToken + ` must be at least -?\d+(?:\.\d+)?$`), schemaform.RuleMinimum},
	{regexp.MustCompile(`^` + pathToken + ` must be greater than -?\d+(?:\.\d+)?$`), schemaform.RuleMinimum},
	{regexp.MustCompile(`^` + pathToken + ` must be at most -?\d+(?:\.\d+)?$`), schemaform.RuleMaximum},
	{regexp.MustCompile(`^` + pathToken + ` must be less than -?\d+(?:\.\d+)?$`), schemaform.RuleMaximum},
	{regexp.MustCompile(`^` + pathToken + ` must be a multiple of -?\d+(?:\.\d+)?$`), schemaform.RuleMultipleOf},
	{regexp.MustCompile(`^` + pathToken + ` must match pattern .+$`), schemaform.RulePattern},
	{regexp.MustCompile(`^` + pathToken + ` must be a valid .+$`), schemaform.RuleFormat},
	{regexp.MustCompile(`^` + pathToken + ` must be one of.*$`), schemaform.RuleEnum},
	{regexp.MustCompile(`^` + pathToken + ` must equal .+$`), schemaform.RuleConst},
	{regexp.MustCompile(`^` + pathToken + ` must have at least \d+ items?$`), schemaform.RuleMinItems},
	{regexp.MustCompile(`^` + pathToken + ` must have at most \d+ items?$`), schemaform.RuleMaxItems},
	{regexp.MustCompile(`^` + pathToken + ` must not contain duplicate items$`), schemaform.RuleUniqueItems},
	{regexp.MustCompile(`^` + pathToken + ` failed check .+$`), schemaform.RuleCustom},
	{regexp.MustCompile(`^(?:field )?'` + pathToken + `' .+$`), ""},
	{regexp.MustCompile(`^` + pathToken + `: .+$`), ""},
	{regexp.MustCompile(`(?i)^(?:error|invalid value)(?: at| in| for)? ` + pathToken + `\b`), ""},
}

// dottedPathRe is the last-resort extractor: the first token in the message
// that looks like a nested path. A bare word is not enough, it must carry a
// dot or an index.
var dottedPathRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_-]*(?:\[\d+\])?(?:\.[A-Za-z_][A-Za-z0-9_-]*(?:\[\d+\])?)+|[A-Za-z_][A-Za-z0-9_-]*\[\d+\]`)

// extractPath recovers the path and rule kind from one raw message.
func extractPath(msg string) (path, rule string) {
	s := strings.TrimSpace(msg)
	for _, ex := range extractors {
		if m := ex.re.FindStringSubmatch(s); m != nil {
			return m[1], ex.rule
		}
	}
	if m := dottedPathRe.FindString(s); m != "" {
		return m, ""
	}
	return "", ""
}

// Normalize turns raw messages into a fully indexed Report.
func (m *Manager) Normalize(messages []string) *Report {
	r := &Report{
		ByPath:           map[string][]StructuredError{},
		ByNormalizedPath: map[string][]StructuredError{},
		BySection:        map[string][]StructuredError{},
	}
	pathSet := map[string]bool{}
	directSet := map[string]bool{}
	for _, raw := range messages {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		se := m.normalizeOne(raw)
		r.Errors = append(r.Errors, se)
		if se.Path == "" {
			r.General = append(r.General, se)
			r.BySection[GeneralSection] = append(r.BySection[GeneralSection], se)
			continue
		}
		r.ByPath[se.Path] = append(r.ByPath[se.Path], se)
		r.ByNormalizedPath[se.NormalizedPath] = append(r.ByNormalizedPath[se.NormalizedPath], se)
		r.BySection[se.Section] = append(r.BySection[se.Section], se)

		directSet[se.Path] = true
		pathSet[se.Path] = true
		pathSet[se.NormalizedPath] = true
		for _, a := range fieldpath.Ancestors(se.Path) {
			pathSet[a] = true
			pathSet[fieldpath.Normalize(a)] = true
		}
	}
	for p := range pathSet {
		r.PathsWithErrors = append(r.PathsWithErrors, p)
	}
	sort.Strings(r.PathsWithErrors)
	for p := range directSet {
		r.DirectPaths = append(r.DirectPaths, p)
	}
	sort.Strings(r.DirectPaths)
	return r
}

func (m *Manager) normalizeOne(raw string) StructuredError {
	path, rule := extractPath(raw)
	se := StructuredError{
		Original: raw,
		Display:  raw,
		Rule:     rule,
		Severity: schemaform.SeverityError,
		Section:  GeneralSection,
	}
	if path == "" {
		m.log.Debug("no path recoverable from validation message", zap.String("message", raw))
		return se
	}
	se.Path = path
	se.NormalizedPath = fieldpath.Normalize(path)
	se.SchemaPath = fieldpath.ToSchemaPath(path)
	se.ArrayIndices = fieldpath.Indices(path)

	f := m.findField(path, se.NormalizedPath, se.SchemaPath)
	if f == nil {
		m.log.Debug("validation message path matched no field",
			zap.String("message", raw), zap.String("path", path))
		return se
	}
	se.FieldID = f.ID
	se.Label = f.Label
	if f.Section != "" {
		se.Section = f.Section
	}
	se.Display = displayMessage(raw, path, f.Label, se.ArrayIndices)
	return se
}

// findField runs the three-tier lookup: exact identifier match, then
// trailing-key match with a compatible parent path, then a last-resort
// case-insensitive key or label match. The loose tiers tolerate
// section-prefix mismatches between path flavors coming from different
// producers.
func (m *Manager) findField(path, normalized, schemaPath string) *schemaform.FormField {
	if i, ok := m.byExact[path]; ok {
		return &m.fields[i]
	}
	if i, ok := m.byExact[schemaPath]; ok {
		return &m.fields[i]
	}
	if i, ok := m.byDotted[normalized]; ok {
		return &m.fields[i]
	}

	lastKey := normalized
	parent := ""
	if i := strings.LastIndexByte(normalized, '.'); i >= 0 {
		lastKey = normalized[i+1:]
		parent = normalized[:i]
	}
	for i := range m.fields {
		f := &m.fields[i]
		if f.Key != lastKey {
			continue
		}
		fparent := ""
		if j := strings.LastIndexByte(f.SchemaPath, '.'); j >= 0 {
			fparent = f.SchemaPath[:j]
		}
		if parent == "" || fparent == "" ||
			strings.HasPrefix(fparent, parent) || strings.HasSuffix(fparent, parent) ||
			strings.HasPrefix(parent, fparent) || strings.HasSuffix(parent, fparent) {
			return f
		}
	}

	lower := strings.ToLower(lastKey)
	for i := range m.fields {
		f := &m.fields[i]
		if strings.ToLower(f.Key) == lower || strings.EqualFold(f.Label, lastKey) {
			return f
		}
	}
	return nil
}

// displayMessage swaps the raw path for the field label and appends the
// 1-based item position when the failure sits inside an array.
func displayMessage(raw, path, label string, indices []int) string {
	out := raw
	if label != "" {
		out = strings.Replace(out, path, label, 1)
	}
	if len(indices) > 0 {
		out += " (item " + strconv.Itoa(indices[len(indices)-1]+1) + ")"
	}
	return out
}
