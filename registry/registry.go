// Package registry is an explicit, constructed lookup table from semantic
// URN patterns to handlers. It replaces the process-wide mutable add-on
// registry: the composing component builds one and passes it by reference,
// nothing mutates it afterwards.
package registry

import (
	"regexp"
	"sort"
	"strings"
)

// Entry binds one URN pattern to a handler. '*' in the pattern matches any
// run of characters; all other characters match literally and the whole URN
// must match.
type Entry[T any] struct {
	Pattern  string
	Priority int
	Handler  T
}

// Registry resolves URNs against an ordered entry list. Higher priority
// wins; equal priorities keep construction order.
type Registry[T any] struct {
	entries []Entry[T]
	res     []*regexp.Regexp
}

// New builds a registry. Entries with patterns that fail to compile are
// kept but never match; a '*'-only pattern matches everything.
func New[T any](entries ...Entry[T]) *Registry[T] {
	r := &Registry[T]{entries: append([]Entry[T](nil), entries...)}
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority > r.entries[j].Priority
	})
	r.res = make([]*regexp.Regexp, len(r.entries))
	for i, e := range r.entries {
		expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(e.Pattern), `\*`, `.*`) + "$"
		re, err := regexp.Compile(expr)
		if err != nil {
			continue
		}
		r.res[i] = re
	}
	return r
}

// Resolve returns the handler of the first matching entry.
func (r *Registry[T]) Resolve(urn string) (T, bool) {
	for i, re := range r.res {
		if re != nil && re.MatchString(urn) {
			return r.entries[i].Handler, true
		}
	}
	var zero T
	return zero, false
}

// Entries returns the resolution order.
func (r *Registry[T]) Entries() []Entry[T] {
	return append([]Entry[T](nil), r.entries...)
}

// Len reports the number of entries.
func (r *Registry[T]) Len() int { return len(r.entries) }
