package schemaform_test

import (
	"errors"
	"strings"
	"testing"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
	"github.com/jalvaro-lks/industry-core-hub-sub004/rules"
)

func singleError(t *testing.T, res *schemaform.ValidationResult) schemaform.ValidationError {
	t.Helper()
	if res.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", res.Errors)
	}
	return res.Errors[0]
}

func TestValidate_RequiredMissing(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`)
	e := singleError(t, schemaform.Validate(tree, map[string]any{}))
	if e.Rule != schemaform.RuleRequired || e.FieldID != "name" {
		t.Fatalf("unexpected error: %+v", e)
	}
	if !strings.Contains(e.Message, "name is required") {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestValidate_RequiredEmptyShortCircuits(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string", "minLength": 3}}
	}`)
	// whitespace-only is empty: exactly one error, and it is required, not
	// minLength
	e := singleError(t, schemaform.Validate(tree, map[string]any{"name": "   "}))
	if e.Rule != schemaform.RuleRequired {
		t.Fatalf("expected required, got %+v", e)
	}
}

func TestValidate_ZeroAndFalseAreNotEmpty(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"required": ["count", "active"],
		"properties": {
			"count": {"type": "number"},
			"active": {"type": "boolean"}
		}
	}`)
	res := schemaform.Validate(tree, map[string]any{"count": 0.0, "active": false})
	if !res.Valid {
		t.Fatalf("0 and false must pass required: %v", res.Errors)
	}
}

func TestValidate_OptionalEmptySkipped(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {"nickname": {"type": "string", "minLength": 3}}
	}`)
	res := schemaform.Validate(tree, map[string]any{})
	if !res.Valid {
		t.Fatalf("absent optional field must pass: %v", res.Errors)
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {"name": {"type": "string", "minLength": 3}}
	}`)
	e := singleError(t, schemaform.Validate(tree, map[string]any{"name": 42.0}))
	if e.Rule != schemaform.RuleType {
		t.Fatalf("expected type error, got %+v", e)
	}
}

func TestValidate_NumericBounds(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {
			"incl": {"type": "number", "minimum": 5},
			"excl": {"type": "number", "minimum": 5, "exclusiveMinimum": true}
		}
	}`)
	res := schemaform.Validate(tree, map[string]any{"incl": 5.0, "excl": 5.0})
	e := singleError(t, res)
	if e.FieldID != "excl" || e.Rule != schemaform.RuleMinimum {
		t.Fatalf("exclusive bound not distinguished: %+v", e)
	}
	if !strings.Contains(e.Message, "greater than 5") {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestValidate_MultipleOf(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {"step": {"type": "number", "multipleOf": 0.1}}
	}`)
	// 0.3 is not representable exactly; the check must tolerate rounding
	if res := schemaform.Validate(tree, map[string]any{"step": 0.3}); !res.Valid {
		t.Fatalf("0.3 should be a multiple of 0.1: %v", res.Errors)
	}
	if res := schemaform.Validate(tree, map[string]any{"step": 0.35}); res.Valid {
		t.Fatalf("0.35 should fail multipleOf 0.1")
	}
}

func TestValidate_StringRules(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {
			"code": {"type": "string", "minLength": 2, "maxLength": 4, "pattern": "^[A-Z]+$"}
		}
	}`)
	if res := schemaform.Validate(tree, map[string]any{"code": "AB"}); !res.Valid {
		t.Fatalf("AB should pass: %v", res.Errors)
	}
	e := singleError(t, schemaform.Validate(tree, map[string]any{"code": "ab"}))
	if e.Rule != schemaform.RulePattern {
		t.Fatalf("expected pattern error, got %+v", e)
	}
	e = singleError(t, schemaform.Validate(tree, map[string]any{"code": "A"}))
	if e.Rule != schemaform.RuleMinLength {
		t.Fatalf("expected minLength error, got %+v", e)
	}
}

func TestValidate_InvalidPatternSkipped(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {"code": {"type": "string", "pattern": "([unclosed"}}
	}`)
	// bad schema authoring degrades gracefully: the submission still passes
	if res := schemaform.Validate(tree, map[string]any{"code": "anything"}); !res.Valid {
		t.Fatalf("broken pattern must be skipped: %v", res.Errors)
	}
}

func TestValidate_Formats(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {
			"mail": {"type": "string", "format": "email"},
			"day": {"type": "string", "format": "date"},
			"site": {"type": "string", "format": "uri"},
			"host": {"type": "string", "format": "ipv4"},
			"ref": {"type": "string", "format": "x-vendor-custom"}
		}
	}`)
	ok := map[string]any{
		"mail": "a@b.example",
		"day":  "2024-06-01",
		"site": "https://example.com/x",
		"host": "192.168.0.1",
		"ref":  "whatever",
	}
	if res := schemaform.Validate(tree, ok); !res.Valid {
		t.Fatalf("valid formats rejected: %v", res.Errors)
	}
	bad := map[string]any{
		"mail": "not-an-email",
		"day":  "01.06.2024",
		"site": "://broken",
		"host": "999.0.0.1",
	}
	res := schemaform.Validate(tree, bad)
	if res.Valid || len(res.Errors) != 4 {
		t.Fatalf("expected 4 format errors, got %v", res.Errors)
	}
	for _, e := range res.Errors {
		if e.Rule != schemaform.RuleFormat {
			t.Fatalf("expected format rule, got %+v", e)
		}
	}
}

func TestValidate_EnumMembership(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {
			"grade": {"type": "string", "enum": ["a", "b", "c", "d", "e"]}
		}
	}`)
	if res := schemaform.Validate(tree, map[string]any{"grade": "c"}); !res.Valid {
		t.Fatalf("member rejected: %v", res.Errors)
	}
	e := singleError(t, schemaform.Validate(tree, map[string]any{"grade": "z"}))
	if e.Rule != schemaform.RuleEnum {
		t.Fatalf("expected enum error, got %+v", e)
	}
}

func TestValidate_MinItems(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {
			"tags": {"type": "array", "items": {"type": "string"}, "minItems": 2}
		}
	}`)
	e := singleError(t, schemaform.Validate(tree, map[string]any{"tags": []any{"a"}}))
	if e.Rule != schemaform.RuleMinItems || e.FieldID != "tags" {
		t.Fatalf("unexpected error: %+v", e)
	}
}

func TestValidate_ArrayIndexPropagation(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {
			"materials": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["name"],
					"properties": {
						"name": {"type": "string"},
						"share": {"type": "number", "minimum": 0}
					}
				}
			}
		}
	}`)
	data := map[string]any{
		"materials": []any{
			map[string]any{"name": "steel", "share": 0.7},
			map[string]any{"name": "zinc", "share": -1.0},
			map[string]any{"name": "chrome", "share": 0.1},
		},
	}
	e := singleError(t, schemaform.Validate(tree, data))
	if e.FieldID != "materials[1].share" {
		t.Fatalf("index not propagated: %+v", e)
	}
	if e.SchemaPath != "materials[item].share" {
		t.Fatalf("schema path wrong: %+v", e)
	}
	if len(e.ArrayIndices) != 1 || e.ArrayIndices[0] != 1 {
		t.Fatalf("array indices wrong: %+v", e)
	}
}

func TestValidate_UniqueItemsKeyOrderIndependent(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {
			"parts": {
				"type": "array",
				"uniqueItems": true,
				"items": {
					"type": "object",
					"properties": {
						"id": {"type": "string"},
						"qty": {"type": "number"}
					}
				}
			}
		}
	}`)
	// same structural value; Go map iteration order is irrelevant either
	// way, equality must be structural
	data := map[string]any{
		"parts": []any{
			map[string]any{"id": "x", "qty": 1.0},
			map[string]any{"qty": 1.0, "id": "x"},
		},
	}
	e := singleError(t, schemaform.Validate(tree, data))
	if e.Rule != schemaform.RuleUniqueItems {
		t.Fatalf("expected uniqueItems, got %+v", e)
	}
	if e.FieldID != "parts[1]" {
		t.Fatalf("duplicate position wrong: %+v", e)
	}
}

func TestValidate_ResultIndexes(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"required": ["name", "age"],
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "number"}
		}
	}`)
	res := schemaform.Validate(tree, map[string]any{})
	if res.Valid || len(res.Errors) != 2 {
		t.Fatalf("expected 2 errors: %v", res.Errors)
	}
	if !res.HasFieldError("name") || !res.HasFieldError("age") {
		t.Fatalf("ByField index incomplete: %v", res.ByField)
	}
	if len(res.FieldsWithErrors) != 2 || res.FieldsWithErrors[0] != "age" {
		t.Fatalf("FieldsWithErrors not sorted: %v", res.FieldsWithErrors)
	}
	if len(res.SectionsWithErrors) != 2 {
		t.Fatalf("sections: %v", res.SectionsWithErrors)
	}
	var ve schemaform.ValidationErrors
	if !errors.As(res.Err(), &ve) || len(ve) != 2 {
		t.Fatalf("Err() should carry the findings")
	}
}

func TestValidate_CustomRules(t *testing.T) {
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {
			"order": {
				"type": "object",
				"properties": {
					"items": {
						"type": "array",
						"items": {
							"type": "object",
							"properties": {"sku": {"type": "string"}}
						}
					}
				}
			}
		}
	}`)
	if err := tree.AttachRule("order", rules.UniqueBy("items", "sku")); err != nil {
		t.Fatalf("attach err: %v", err)
	}
	if err := tree.AttachRule("missing", rules.AtLeastOne("")); err == nil {
		t.Fatalf("attaching to a missing node must fail")
	}
	data := map[string]any{
		"order": map[string]any{
			"items": []any{
				map[string]any{"sku": "a"},
				map[string]any{"sku": "a"},
			},
		},
	}
	e := singleError(t, schemaform.Validate(tree, data))
	if e.Rule != "custom:uniqueBy" || e.FieldID != "order" {
		t.Fatalf("unexpected custom finding: %+v", e)
	}
}

func TestValidate_NilTreeAndData(t *testing.T) {
	if res := schemaform.Validate(nil, nil); !res.Valid {
		t.Fatalf("nil tree must validate")
	}
	tree, _ := mustBuild(t, `{
		"type": "object",
		"properties": {"name": {"type": "string"}}
	}`)
	if res := schemaform.Validate(tree, nil); !res.Valid {
		t.Fatalf("optional-only schema must accept nil data: %v", res.Errors)
	}
}
