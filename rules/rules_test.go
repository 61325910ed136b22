package rules_test

import (
	"errors"
	"testing"

	"github.com/jalvaro-lks/industry-core-hub-sub004/rules"
)

func TestValueAt(t *testing.T) {
	data := map[string]any{
		"order": map[string]any{
			"items": []any{
				map[string]any{"sku": "a"},
				map[string]any{"sku": "b"},
			},
		},
	}
	v, ok := rules.ValueAt(data, "order.items[1].sku")
	if !ok || v != "b" {
		t.Fatalf("unexpected value: %v %v", v, ok)
	}
	if v, ok := rules.ValueAt(data, ""); !ok || v == nil {
		t.Fatalf("empty path should address the value itself")
	}
	if _, ok := rules.ValueAt(data, "order.items[9].sku"); ok {
		t.Fatalf("out-of-range index must miss")
	}
	if _, ok := rules.ValueAt(data, "order..items"); ok {
		t.Fatalf("malformed path must miss")
	}
}

func TestAtLeastOne(t *testing.T) {
	r := rules.AtLeastOne("items")
	if err := r.Check(map[string]any{"items": []any{"x"}}); err != nil {
		t.Fatalf("non-empty collection must pass: %v", err)
	}
	if err := r.Check(map[string]any{"items": []any{}}); err == nil {
		t.Fatalf("empty collection must fail")
	}
	// missing or non-collection values are not this rule's business
	if err := r.Check(map[string]any{}); err != nil {
		t.Fatalf("missing collection must pass: %v", err)
	}
	if err := r.Check(map[string]any{"items": "not-a-list"}); err != nil {
		t.Fatalf("non-collection must pass: %v", err)
	}
}

func TestUniqueBy(t *testing.T) {
	r := rules.UniqueBy("items", "sku")
	ok := map[string]any{"items": []any{
		map[string]any{"sku": "a"},
		map[string]any{"sku": "b"},
	}}
	if err := r.Check(ok); err != nil {
		t.Fatalf("distinct keys must pass: %v", err)
	}
	dup := map[string]any{"items": []any{
		map[string]any{"sku": "a"},
		map[string]any{"sku": "b"},
		map[string]any{"sku": "a"},
	}}
	if err := r.Check(dup); err == nil {
		t.Fatalf("duplicate keys must fail")
	}
}

func TestCombinators(t *testing.T) {
	pass := rules.Custom("pass", func(any) error { return nil })
	fail := rules.Custom("fail", func(any) error { return errors.New("nope") })

	if err := rules.And("both", pass, fail).Check(nil); err == nil {
		t.Fatalf("And with a failing rule must fail")
	}
	if err := rules.And("both", pass, pass).Check(nil); err != nil {
		t.Fatalf("And with passing rules must pass: %v", err)
	}
	if err := rules.Or("either", fail, pass).Check(nil); err != nil {
		t.Fatalf("Or with a passing rule must pass: %v", err)
	}
	if err := rules.Or("either", fail, fail).Check(nil); err == nil {
		t.Fatalf("Or with only failing rules must fail")
	}
	if err := rules.Or("empty").Check(nil); err != nil {
		t.Fatalf("empty Or must pass: %v", err)
	}
}
