package fieldpath

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	indexRe     = regexp.MustCompile(`\[\d+\]`)
	indexCapRe  = regexp.MustCompile(`\[(\d+)\]`)
	anyMarkerRe = regexp.MustCompile(`\[(?:\d+|item)\]`)
)

// ErrArrayPathNotFound is returned by ReplaceArrayIndex when the identifier
// has no indexed segment at the given array path.
var ErrArrayPathNotFound = errors.New("fieldpath: no indexed segment at array path")

// Normalize strips every concrete array index, mapping a data path onto the
// dotted form used for schema comparison. It is idempotent.
func Normalize(id string) string {
	return indexRe.ReplaceAllString(id, "")
}

// ToSchemaPath replaces every concrete array index with the [item]
// placeholder, mapping a data path onto its schema path. Identifiers already
// carrying [item] pass through unchanged; the operation is idempotent.
func ToSchemaPath(id string) string {
	return indexRe.ReplaceAllString(id, "[item]")
}

// Dotted strips concrete indices and [item] placeholders alike, reducing any
// identifier flavor to its plain dotted property path.
func Dotted(id string) string {
	return anyMarkerRe.ReplaceAllString(id, "")
}

// SchemaEquivalent reports whether two identifiers address the same schema
// node once concrete indices and [item] placeholders are stripped from both.
func SchemaEquivalent(a, b string) bool {
	return Dotted(a) == Dotted(b)
}

// Indices returns every concrete array index in order of appearance. Unlike
// Parse it is total: unparseable identifiers yield whatever bracketed
// numbers they contain.
func Indices(id string) []int {
	ms := indexCapRe.FindAllStringSubmatch(id, -1)
	if len(ms) == 0 {
		return nil
	}
	out := make([]int, 0, len(ms))
	for _, m := range ms {
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Matches reports whether an identifier matches a pattern in which '*'
// stands for exactly one array index. All other pattern characters match
// literally; a pattern without wildcards is a plain equality test.
func Matches(id, pattern string) bool {
	if !strings.ContainsRune(pattern, '*') {
		return id == pattern
	}
	expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, `\d+`) + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return re.MatchString(id)
}

// Parent returns the identifier with its last segment (and that segment's
// index, when present) removed, or "" for root-level identifiers.
func Parent(id string) string {
	p, err := Parse(id)
	if err != nil || len(p.Segments) <= 1 {
		return ""
	}
	p.Segments = p.Segments[:len(p.Segments)-1]
	p.Indices = p.Indices[:len(p.Indices)-1]
	return p.Generate()
}

// Ancestors returns every proper ancestor identifier, nearest first. The
// result is empty for root-level identifiers.
func Ancestors(id string) []string {
	var out []string
	for cur := Parent(id); cur != ""; cur = Parent(cur) {
		out = append(out, cur)
	}
	return out
}

// IsDescendantOf reports whether id lies strictly below ancestor. A bare
// string prefix is not enough: the next character must open a new segment,
// so "username" is not a descendant of "user".
func IsDescendantOf(id, ancestor string) bool {
	if ancestor == "" {
		return id != ""
	}
	if len(id) <= len(ancestor) || !strings.HasPrefix(id, ancestor) {
		return false
	}
	switch id[len(ancestor)] {
	case '.', '[':
		return true
	}
	return false
}

// ReplaceArrayIndex rewrites the index of the indexed segment addressed by
// arrayPath (its dotted path, indices ignored) and returns the new
// identifier. It fails with ErrArrayPathNotFound when id has no indexed
// segment there, and propagates parse failures of id itself.
func ReplaceArrayIndex(id, arrayPath string, newIndex int) (string, error) {
	if newIndex < 0 {
		return "", errors.New("fieldpath: negative array index")
	}
	p, err := Parse(id)
	if err != nil {
		return "", err
	}
	want := Normalize(arrayPath)
	for i := range p.Segments {
		if p.Indices[i] == nil {
			continue
		}
		if strings.Join(p.Segments[:i+1], ".") == want {
			v := newIndex
			p.Indices[i] = &v
			return p.Generate(), nil
		}
	}
	return "", ErrArrayPathNotFound
}
