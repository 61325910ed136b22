package schemaform

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/jalvaro-lks/industry-core-hub-sub004/fieldpath"
)

// DefaultMaxDepth bounds schema recursion. Passport aspect models nest six
// or seven levels deep; anything past fifteen is a cyclic or pathological
// schema.
const DefaultMaxDepth = 15

// Options controls tree building.
type Options struct {
	// MaxDepth is the recursion ceiling; 0 means DefaultMaxDepth. Subtrees
	// past the ceiling are pruned with a Diag warning, not a build failure.
	MaxDepth int
	// OmitOptional drops every property not listed in its parent's required
	// array, producing the minimal form.
	OmitOptional bool
	// Logger receives build degradation warnings; nil means no logging.
	Logger *zap.Logger
}

// Diag carries the non-fatal warnings produced during a build: unresolvable
// refs, pruned subtrees, unsupported constructs. The tree still builds; Diag
// tells the caller what it is missing.
type Diag struct {
	ws []string
}

// HasWarnings reports whether the build degraded anywhere.
func (d *Diag) HasWarnings() bool { return len(d.ws) > 0 }

// Warnings returns the recorded warnings in build order.
func (d *Diag) Warnings() []string { return append([]string(nil), d.ws...) }

func (d *Diag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }

// builder is the per-Build state: the source document for pointer lookups,
// normalized options, and the diagnostics sink.
type builder struct {
	doc  *Document
	opts Options
	diag *Diag
	log  *zap.Logger
}

// Build compiles a schema document into a form tree. The returned Diag is
// never nil. Build fails only for unusable input (nil document); schema
// defects degrade the tree and are reported through Diag.
func Build(doc *Document, opts Options) (*Tree, *Diag, error) {
	d := &Diag{}
	if doc == nil || doc.root == nil {
		return nil, d, fmt.Errorf("schemaform: nil document")
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	b := &builder{doc: doc, opts: opts, diag: d, log: opts.Logger}

	root := doc.root
	if t, ok := root.stringField("type"); ok && t != "object" {
		b.warn("non-object root treated as object", zap.String("type", t))
	}
	tree := newTree()
	props, ok := root.field("properties")
	if !ok || props.kind != docObject {
		return tree, d, nil
	}
	required := stringSet(root.stringItems("required"))
	order := 0
	for _, key := range props.keys {
		if b.opts.OmitOptional && !required[key] {
			continue
		}
		n := b.buildNode(key, props.fields[key], nodeSite{
			ref:      fieldpath.Root().Field(key),
			depth:    0,
			order:    order,
			required: required[key],
		})
		if n == nil {
			continue
		}
		tree.addRoot(key, n)
		order++
	}
	return tree, d, nil
}

func (b *builder) warn(msg string, fields ...zap.Field) {
	b.log.Warn(msg, fields...)
	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, msg)
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, fieldValue(f)))
	}
	b.diag.warnf("%s", strings.Join(parts, " "))
}

func fieldValue(f zap.Field) any {
	if f.Interface != nil {
		return f.Interface
	}
	if f.String != "" {
		return f.String
	}
	return f.Integer
}

// nodeSite is the positional context a node is built at.
type nodeSite struct {
	ref      fieldpath.Ref
	parentID string
	depth    int
	order    int
	section  string
	required bool
}

// buildNode compiles one property schema. A nil return means the property
// degrades to absent: unresolvable ref, depth overflow, or empty schema.
func (b *builder) buildNode(key string, ps *docValue, site nodeSite) *SchemaNode {
	id := site.ref.String()
	if site.depth > b.opts.MaxDepth {
		b.warn("schema depth limit exceeded, pruning subtree",
			zap.String("path", id), zap.Int("depth", site.depth))
		return nil
	}
	resolved := b.resolveSchema(ps, id, nil)
	if resolved == nil {
		return nil
	}

	label, _ := resolved.stringField("title")
	if label == "" {
		label = humanizeKey(key)
	}
	section := site.section
	if site.depth == 0 {
		section = label
	}
	desc, _ := resolved.stringField("description")
	urn, _ := resolved.stringField("x-samm-aspect-model-urn")

	nb := NewNode(id).
		Key(key).
		Parent(site.parentID).
		Label(label).
		Description(desc).
		URN(urn).
		Required(site.required).
		Depth(site.depth).
		Order(site.order).
		Section(section).
		TopLevel(site.depth == 0)
	if desc != "" && len(desc) <= 160 {
		nb.HelpText(desc)
	}

	rules := extractRules(resolved)
	nb.Rules(rules)

	switch resolvedType(resolved) {
	case "object":
		b.buildObject(nb, resolved, id, site)
	case "array":
		b.buildArray(nb, resolved, id, site, rules)
	default:
		pt := inferPrimitiveType(resolved)
		nb.Primitive(pt)
		nb.Placeholder(placeholderFor(pt))
	}
	n, err := nb.Build()
	if err != nil {
		// only reachable through builder misuse; label and id are set above
		panic(err)
	}
	return n
}

func (b *builder) buildObject(nb *NodeBuilder, resolved *docValue, id string, site nodeSite) {
	nb.Object()
	nb.Collapsed(site.depth >= 2)
	props, ok := resolved.field("properties")
	if !ok || props.kind != docObject {
		return
	}
	required := stringSet(resolved.stringItems("required"))
	order := 0
	for _, key := range props.keys {
		if b.opts.OmitOptional && !required[key] {
			continue
		}
		child := b.buildNode(key, props.fields[key], nodeSite{
			ref:      fieldpath.At(id).Field(key),
			parentID: id,
			depth:    site.depth + 1,
			order:    order,
			section:  childSection(site, nb),
			required: required[key],
		})
		if child == nil {
			continue
		}
		nb.Property(key, child)
		order++
	}
}

func (b *builder) buildArray(nb *NodeBuilder, resolved *docValue, id string, site nodeSite, rules *ValidationRules) {
	nb.Array()
	nb.Collapsed(site.depth >= 2)
	if rules != nil {
		nb.Constraints(&ArrayConstraints{
			MinItems:    rules.MinItems,
			MaxItems:    rules.MaxItems,
			UniqueItems: rules.UniqueItems,
		})
	}
	items, ok := resolved.field("items")
	if !ok {
		return
	}
	if items.kind == docArray {
		b.warn("tuple-form items is unsupported, array left open", zap.String("path", id))
		return
	}
	item := b.buildNode("item", items, nodeSite{
		ref:      fieldpath.At(id).Item(),
		parentID: id,
		depth:    site.depth + 1,
		section:  childSection(site, nb),
		required: true,
	})
	if item != nil {
		nb.Item(item)
	}
}

func childSection(site nodeSite, nb *NodeBuilder) string {
	if site.depth == 0 {
		return nb.n.Label
	}
	return site.section
}

// resolveSchema flattens $ref, allOf and oneOf/anyOf into one plain schema
// value. visiting guards ref cycles; a cyclic or unresolvable ref degrades
// to nil with a warning.
func (b *builder) resolveSchema(ps *docValue, path string, visiting map[string]bool) *docValue {
	if ps == nil || ps.kind != docObject {
		return nil
	}
	if ref, ok := ps.stringField("$ref"); ok {
		if visiting == nil {
			visiting = map[string]bool{}
		}
		if visiting[ref] {
			b.warn("cyclic $ref, pruning", zap.String("path", path), zap.String("ref", ref))
			return nil
		}
		if !strings.HasPrefix(ref, "#") {
			b.warn("external $ref is unsupported", zap.String("path", path), zap.String("ref", ref))
			return nil
		}
		target, ok := b.doc.resolvePointer(ref)
		if !ok {
			b.warn("unresolvable $ref", zap.String("path", path), zap.String("ref", ref))
			return nil
		}
		visiting[ref] = true
		resolved := b.resolveSchema(target, path, visiting)
		delete(visiting, ref)
		if resolved == nil {
			return nil
		}
		// sibling keywords at the ref site win over the target's
		return mergeSchemas(withoutField(ps, "$ref"), resolved)
	}
	if all, ok := ps.field("allOf"); ok && all.kind == docArray {
		merged := withoutField(ps, "allOf")
		for _, frag := range all.items {
			r := b.resolveSchema(frag, path, visiting)
			if r == nil {
				continue
			}
			merged = mergeSchemas(merged, r)
		}
		return merged
	}
	for _, kw := range []string{"oneOf", "anyOf"} {
		branches, ok := ps.field(kw)
		if !ok || branches.kind != docArray || len(branches.items) == 0 {
			continue
		}
		picked, extra := firstNonNullBranch(branches.items)
		if extra {
			b.diag.warnf("%s at %s has multiple branches, taking the first", kw, path)
		}
		r := b.resolveSchema(picked, path, visiting)
		if r == nil {
			return nil
		}
		return mergeSchemas(withoutField(ps, kw), r)
	}
	return ps
}

// firstNonNullBranch picks the first branch that is not a bare
// {"type":"null"} wrapper and reports whether other non-null branches were
// skipped.
func firstNonNullBranch(branches []*docValue) (*docValue, bool) {
	var picked *docValue
	nonNull := 0
	for _, br := range branches {
		if isNullSchema(br) {
			continue
		}
		nonNull++
		if picked == nil {
			picked = br
		}
	}
	if picked == nil {
		picked = branches[0]
	}
	return picked, nonNull > 1
}

func isNullSchema(v *docValue) bool {
	if v == nil || v.kind != docObject || len(v.keys) != 1 {
		return false
	}
	t, ok := v.stringField("type")
	return ok && t == "null"
}

// mergeSchemas unions two schema objects. Scalar keywords from a win;
// properties maps union with first-seen key order; required arrays union
// with duplicates dropped.
func mergeSchemas(a, c *docValue) *docValue {
	out := newDocObject()
	for _, k := range a.keys {
		out.set(k, a.fields[k])
	}
	for _, k := range c.keys {
		switch k {
		case "properties":
			out.set(k, mergeProperties(out.fields["properties"], c.fields[k]))
		case "required":
			out.set(k, mergeRequired(out.fields["required"], c.fields[k]))
		default:
			if _, exists := out.fields[k]; !exists {
				out.set(k, c.fields[k])
			}
		}
	}
	return out
}

func mergeProperties(a, c *docValue) *docValue {
	if a == nil || a.kind != docObject {
		return c
	}
	if c == nil || c.kind != docObject {
		return a
	}
	out := newDocObject()
	for _, k := range a.keys {
		out.set(k, a.fields[k])
	}
	for _, k := range c.keys {
		if _, exists := out.fields[k]; !exists {
			out.set(k, c.fields[k])
		}
	}
	return out
}

func mergeRequired(a, c *docValue) *docValue {
	out := &docValue{kind: docArray}
	seen := map[string]bool{}
	for _, src := range []*docValue{a, c} {
		if src == nil || src.kind != docArray {
			continue
		}
		for _, it := range src.items {
			s, ok := it.scalar.(string)
			if !ok || seen[s] {
				continue
			}
			seen[s] = true
			out.items = append(out.items, it)
		}
	}
	return out
}

func withoutField(v *docValue, drop string) *docValue {
	out := newDocObject()
	for _, k := range v.keys {
		if k == drop {
			continue
		}
		out.set(k, v.fields[k])
	}
	return out
}

// resolvedType classifies a resolved schema: the type keyword, or the first
// non-"null" entry of a type array. Typeless schemas with properties count
// as objects, with items as arrays, else string.
func resolvedType(v *docValue) string {
	if t, ok := v.stringField("type"); ok {
		return t
	}
	if tc, ok := v.field("type"); ok && tc.kind == docArray {
		for _, it := range tc.items {
			if s, ok := it.scalar.(string); ok && s != "null" {
				return s
			}
		}
	}
	if _, ok := v.field("properties"); ok {
		return "object"
	}
	if _, ok := v.field("items"); ok {
		return "array"
	}
	return "string"
}

// inferPrimitiveType derives the widget class. Precedence: enum size, then
// boolean, then format hints, then the long-text heuristic, then the raw
// JSON type.
func inferPrimitiveType(v *docValue) PrimitiveType {
	if ec, ok := v.field("enum"); ok && ec.kind == docArray && len(ec.items) > 0 {
		if len(ec.items) <= 3 {
			return TypeRadio
		}
		return TypeEnum
	}
	t := resolvedType(v)
	if t == "boolean" {
		return TypeCheckbox
	}
	if format, ok := v.stringField("format"); ok {
		switch format {
		case "date":
			return TypeDate
		case "date-time":
			return TypeDateTime
		case "time":
			return TypeTime
		case "email", "idn-email":
			return TypeEmail
		case "uri", "uri-reference", "url":
			return TypeURL
		case "password":
			return TypePassword
		}
	}
	if t == "string" {
		maxLen, hasMax := v.intField("maxLength")
		desc, _ := v.stringField("description")
		if (hasMax && maxLen > 200) || len(desc) > 200 {
			return TypeTextarea
		}
		return TypeString
	}
	switch t {
	case "number":
		return TypeNumber
	case "integer":
		return TypeInteger
	}
	return TypeString
}

// placeholderFor is the fixed placeholder table per widget class.
func placeholderFor(pt PrimitiveType) string {
	switch pt {
	case TypeDate:
		return "YYYY-MM-DD"
	case TypeDateTime:
		return "YYYY-MM-DDThh:mm:ssZ"
	case TypeTime:
		return "hh:mm:ss"
	case TypeEmail:
		return "name@example.com"
	case TypeURL:
		return "https://"
	case TypeNumber, TypeInteger:
		return "0"
	default:
		return ""
	}
}

// extractRules copies every constraint keyword present on the schema
// verbatim. The result is nil when no keyword is present; no defaults are
// invented.
func extractRules(v *docValue) *ValidationRules {
	r := &ValidationRules{}
	if f, ok := v.floatField("minimum"); ok {
		r.Minimum = &f
	}
	if f, ok := v.floatField("maximum"); ok {
		r.Maximum = &f
	}
	if b, ok := v.boolField("exclusiveMinimum"); ok {
		r.ExclusiveMinimum = b
	} else if f, ok := v.floatField("exclusiveMinimum"); ok {
		// draft-06 numeric form
		r.Minimum = &f
		r.ExclusiveMinimum = true
	}
	if b, ok := v.boolField("exclusiveMaximum"); ok {
		r.ExclusiveMaximum = b
	} else if f, ok := v.floatField("exclusiveMaximum"); ok {
		r.Maximum = &f
		r.ExclusiveMaximum = true
	}
	if f, ok := v.floatField("multipleOf"); ok {
		r.MultipleOf = &f
	}
	if i, ok := v.intField("minLength"); ok {
		r.MinLength = &i
	}
	if i, ok := v.intField("maxLength"); ok {
		r.MaxLength = &i
	}
	if s, ok := v.stringField("pattern"); ok {
		r.Pattern = s
	}
	if s, ok := v.stringField("format"); ok {
		r.Format = s
	}
	if i, ok := v.intField("minItems"); ok {
		r.MinItems = &i
	}
	if i, ok := v.intField("maxItems"); ok {
		r.MaxItems = &i
	}
	if b, ok := v.boolField("uniqueItems"); ok {
		r.UniqueItems = b
	}
	if ec, ok := v.field("enum"); ok && ec.kind == docArray {
		for _, it := range ec.items {
			r.Enum = append(r.Enum, it.Interface())
		}
	}
	if cc, ok := v.field("const"); ok {
		r.Const = cc.Interface()
		r.HasConst = true
	}
	if r.IsZero() {
		return nil
	}
	return r
}

func stringSet(ss []string) map[string]bool {
	out := make(map[string]bool, len(ss))
	for _, s := range ss {
		out[s] = true
	}
	return out
}

// humanizeKey turns a property key into a display label:
// "manufacturerPartId" -> "Manufacturer Part Id".
func humanizeKey(key string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteByte(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteByte(' ')
		}
		if b.Len() == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	out := b.String()
	// uppercase letters following the spaces inserted above
	parts := strings.Fields(out)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
