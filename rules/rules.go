// Package rules builds cross-field predicates attached to a node through
// ValidationRules.Custom. The validator runs them after the keyword checks
// and only on non-empty values; a failing rule surfaces as a finding with
// rule kind "custom:<name>".
package rules

import (
	"fmt"
	"strings"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
	"github.com/jalvaro-lks/industry-core-hub-sub004/fieldpath"
)

// Custom wraps a bare predicate under a rule name.
func Custom(name string, check func(value any) error) schemaform.CustomRule {
	return schemaform.CustomRule{Name: name, Check: check}
}

// AtLeastOne requires the collection at collectionPath (a dotted identifier
// relative to the checked value, "" for the value itself) to hold at least
// one element. A missing or non-collection value passes; emptiness is the
// required rule's business, not this one's.
func AtLeastOne(collectionPath string) schemaform.CustomRule {
	return schemaform.CustomRule{
		Name: "atLeastOne",
		Check: func(v any) error {
			val, ok := ValueAt(v, collectionPath)
			if !ok {
				return nil
			}
			arr, ok := val.([]any)
			if !ok {
				return nil
			}
			if len(arr) == 0 {
				return fmt.Errorf("at least 1 item is required at %q", collectionPath)
			}
			return nil
		},
	}
}

// UniqueBy requires the elements of the collection at collectionPath to
// carry distinct values at keyPath (relative to each element). Keys
// stringify before comparison; keep the key a single scalar type, since
// mixed-type keys may stringify identically and false-positive.
func UniqueBy(collectionPath, keyPath string) schemaform.CustomRule {
	return schemaform.CustomRule{
		Name: "uniqueBy",
		Check: func(v any) error {
			val, ok := ValueAt(v, collectionPath)
			if !ok {
				return nil
			}
			arr, ok := val.([]any)
			if !ok {
				return nil
			}
			seen := map[string]int{}
			for i, elem := range arr {
				kv, ok := ValueAt(elem, keyPath)
				if !ok {
					continue
				}
				key := fmt.Sprint(kv)
				if first, dup := seen[key]; dup {
					return fmt.Errorf("duplicate %s %q at items %d and %d", keyPath, key, first, i)
				}
				seen[key] = i
			}
			return nil
		},
	}
}

// And passes only when every rule passes; the first failure wins.
func And(name string, rs ...schemaform.CustomRule) schemaform.CustomRule {
	return schemaform.CustomRule{
		Name: name,
		Check: func(v any) error {
			for _, r := range rs {
				if r.Check == nil {
					continue
				}
				if err := r.Check(v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Or passes when at least one rule passes. With zero rules it passes.
func Or(name string, rs ...schemaform.CustomRule) schemaform.CustomRule {
	return schemaform.CustomRule{
		Name: name,
		Check: func(v any) error {
			var errs []string
			for _, r := range rs {
				if r.Check == nil {
					continue
				}
				err := r.Check(v)
				if err == nil {
					return nil
				}
				errs = append(errs, err.Error())
			}
			if len(errs) == 0 {
				return nil
			}
			return fmt.Errorf("no alternative passed: %s", strings.Join(errs, "; "))
		},
	}
}

// ValueAt navigates decoded data (map[string]any / []any) by a dotted
// identifier with optional concrete indices ("items[2].sku"). The empty
// path addresses v itself. It reports false for malformed paths, missing
// keys and out-of-range indices.
func ValueAt(v any, path string) (any, bool) {
	if path == "" {
		return v, true
	}
	p, err := fieldpath.Parse(path)
	if err != nil {
		return nil, false
	}
	cur := v
	for i, seg := range p.Segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
		if p.Indices[i] != nil {
			arr, ok := cur.([]any)
			if !ok {
				return nil, false
			}
			idx := *p.Indices[i]
			if idx >= len(arr) {
				return nil, false
			}
			cur = arr[idx]
		}
	}
	return cur, true
}
