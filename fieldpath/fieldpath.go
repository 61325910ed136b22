// Package fieldpath implements the canonical field-identifier algebra shared
// by the schema tree, the validator, and the error manager: dotted property
// segments with bracketed array indices ("identification.codes[2].value") on
// the data side, and the bracketed [item] placeholder on the schema side.
//
// Identifiers address at most one array hop per property segment, matching
// the tree builder's single [item] expansion per array node. Property names
// must not contain '.', '[' or ']'; this is a precondition of Generate and
// is not enforced there, while Parse rejects any identifier that cannot be
// tokenized unambiguously.
package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of an identifier: a property key or an array index.
// Build segments with Key and Index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a property-name segment.
func Key(name string) Segment { return Segment{key: name} }

// Index returns an array-index segment. Negative indices are programmer
// misuse and panic.
func Index(i int) Segment {
	if i < 0 {
		panic(fmt.Sprintf("fieldpath: negative array index %d", i))
	}
	return Segment{index: i, isIndex: true}
}

// IsIndex reports whether the segment is an array index.
func (s Segment) IsIndex() bool { return s.isIndex }

// String renders the segment the way Generate would.
func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// Generate concatenates segments into a canonical identifier. Property
// segments are joined by '.'; index segments are appended bare, so
// [Key(a) Index(0) Key(b)] renders "a[0].b". An empty list renders "".
func Generate(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.key)
	}
	return b.String()
}

// ParsedIdentifier is the structured view of one identifier. It is derived
// and ephemeral: recompute it per lookup rather than caching it.
type ParsedIdentifier struct {
	// Segments holds the property names, without indices.
	Segments []string
	// Indices parallels Segments; an entry is nil when the segment carries
	// no array index.
	Indices []*int
	// ArrayPaths lists the dotted path of every indexed segment, outermost
	// first ("user.emails" for "user.emails[0].value").
	ArrayPaths []string
	// SchemaPath is the dotted join of Segments with every index dropped.
	SchemaPath string
}

// Generate renders the parsed identifier back to its canonical string.
func (p ParsedIdentifier) Generate() string {
	segs := make([]Segment, 0, len(p.Segments)*2)
	for i, s := range p.Segments {
		segs = append(segs, Key(s))
		if p.Indices[i] != nil {
			segs = append(segs, Index(*p.Indices[i]))
		}
	}
	return Generate(segs)
}

// MalformedPathError reports an identifier that could not be tokenized.
type MalformedPathError struct {
	Input  string
	Offset int
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("fieldpath: malformed identifier %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}

func malformed(input string, offset int, reason string) error {
	return &MalformedPathError{Input: input, Offset: offset, Reason: reason}
}

// Parse tokenizes an identifier into its structured form. It fails with a
// *MalformedPathError on unbalanced brackets, non-numeric or negative
// indices, empty segments, indices with no preceding property, and more
// than one index on a single segment. The empty identifier parses to the
// zero ParsedIdentifier.
func Parse(id string) (ParsedIdentifier, error) {
	var p ParsedIdentifier
	if id == "" {
		return p, nil
	}
	i, n := 0, len(id)
	for i < n {
		start := i
		for i < n && id[i] != '.' && id[i] != '[' && id[i] != ']' {
			i++
		}
		if i == start {
			switch id[i] {
			case '[':
				return ParsedIdentifier{}, malformed(id, i, "array index with no preceding property")
			case ']':
				return ParsedIdentifier{}, malformed(id, i, "unexpected ']'")
			default:
				return ParsedIdentifier{}, malformed(id, i, "empty segment")
			}
		}
		p.Segments = append(p.Segments, id[start:i])
		p.Indices = append(p.Indices, nil)

		if i < n && id[i] == '[' {
			open := i
			j := i + 1
			for j < n && id[j] != ']' {
				j++
			}
			if j == n {
				return ParsedIdentifier{}, malformed(id, open, "unterminated array index")
			}
			num := id[open+1 : j]
			if !allDigits(num) {
				return ParsedIdentifier{}, malformed(id, open+1, "non-numeric array index")
			}
			v, err := strconv.Atoi(num)
			if err != nil {
				return ParsedIdentifier{}, malformed(id, open+1, "array index out of range")
			}
			p.Indices[len(p.Indices)-1] = &v
			p.ArrayPaths = append(p.ArrayPaths, strings.Join(p.Segments, "."))
			i = j + 1
			if i < n && id[i] == '[' {
				return ParsedIdentifier{}, malformed(id, i, "more than one index on a segment")
			}
		}

		if i >= n {
			break
		}
		switch id[i] {
		case '.':
			i++
			if i == n {
				return ParsedIdentifier{}, malformed(id, i-1, "trailing dot")
			}
		case ']':
			return ParsedIdentifier{}, malformed(id, i, "unexpected ']'")
		default:
			return ParsedIdentifier{}, malformed(id, i, "expected '.' after array index")
		}
	}
	p.SchemaPath = strings.Join(p.Segments, ".")
	return p, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Ref builds identifiers incrementally without re-parsing, one segment per
// call. The zero Ref is the tree root.
type Ref struct {
	id string
}

// Root returns the root Ref, rendering the empty identifier.
func Root() Ref { return Ref{} }

// At returns a Ref anchored at an existing identifier.
func At(id string) Ref { return Ref{id: id} }

// Field appends a property segment. Appending the empty name is a no-op.
func (r Ref) Field(name string) Ref {
	if name == "" {
		return r
	}
	if r.id == "" {
		return Ref{id: name}
	}
	return Ref{id: r.id + "." + name}
}

// Index appends a concrete array index to the trailing segment. Negative
// indices are programmer misuse and panic.
func (r Ref) Index(i int) Ref {
	if i < 0 {
		panic(fmt.Sprintf("fieldpath: negative array index %d", i))
	}
	return Ref{id: r.id + "[" + strconv.Itoa(i) + "]"}
}

// Item appends the schema-side [item] placeholder to the trailing segment.
func (r Ref) Item() Ref {
	return Ref{id: r.id + "[item]"}
}

// String returns the identifier built so far.
func (r Ref) String() string { return r.id }
