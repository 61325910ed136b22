package schemaform_test

import (
	"testing"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
)

func TestDocumentFromJSON_Malformed(t *testing.T) {
	if _, err := schemaform.DocumentFromJSON([]byte(`{"type": "object"`)); err == nil {
		t.Fatalf("truncated JSON must fail")
	}
	if _, err := schemaform.DocumentFromJSON([]byte(`[1, 2]`)); err == nil {
		t.Fatalf("non-object root must fail")
	}
	if _, err := schemaform.DocumentFromJSON([]byte(`{} trailing`)); err == nil {
		t.Fatalf("trailing data must fail")
	}
}

func TestDocumentFromYAML_Malformed(t *testing.T) {
	if _, err := schemaform.DocumentFromYAML([]byte("- a\n- b\n")); err == nil {
		t.Fatalf("sequence root must fail")
	}
	if _, err := schemaform.DocumentFromYAML([]byte(": broken: [")); err == nil {
		t.Fatalf("broken YAML must fail")
	}
}

func TestDocumentFromValue_SortedFallbackOrder(t *testing.T) {
	doc, err := schemaform.DocumentFromValue(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"zeta":  map[string]any{"type": "string"},
			"alpha": map[string]any{"type": "string"},
		},
	})
	if err != nil {
		t.Fatalf("document err: %v", err)
	}
	tree, _, err := schemaform.Build(doc, schemaform.Options{})
	if err != nil {
		t.Fatalf("build err: %v", err)
	}
	keys := tree.Roots().Keys()
	if len(keys) != 2 || keys[0] != "alpha" || keys[1] != "zeta" {
		t.Fatalf("plain maps fall back to sorted order, got %v", keys)
	}
}

func TestDocument_Interface(t *testing.T) {
	doc, err := schemaform.DocumentFromJSON([]byte(`{
		"type": "object",
		"x-samm-aspect-model-urn": "urn:samm:io.catenax.pass:1.0.0#Pass",
		"properties": {"name": {"type": "string"}}
	}`))
	if err != nil {
		t.Fatalf("document err: %v", err)
	}
	root, ok := doc.Interface().(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", doc.Interface())
	}
	if root["x-samm-aspect-model-urn"] != "urn:samm:io.catenax.pass:1.0.0#Pass" {
		t.Fatalf("annotation lost: %v", root)
	}
}

func TestDocument_EscapedPointerTokens(t *testing.T) {
	// ~0 and ~1 decode to ~ and / inside pointer tokens
	tree, diag := mustBuild(t, `{
		"type": "object",
		"properties": {
			"odd": {"$ref": "#/definitions/a~1b"}
		},
		"definitions": {
			"a/b": {"type": "string"}
		}
	}`)
	if diag.HasWarnings() {
		t.Fatalf("escaped pointer should resolve: %v", diag.Warnings())
	}
	if _, ok := tree.Lookup("odd"); !ok {
		t.Fatalf("node missing")
	}
}

func TestDocument_ComponentsSchemasPointer(t *testing.T) {
	tree, diag := mustBuild(t, `{
		"type": "object",
		"properties": {
			"part": {"$ref": "#/components/schemas/Part"}
		},
		"components": {
			"schemas": {
				"Part": {
					"type": "object",
					"properties": {"id": {"type": "string"}}
				}
			}
		}
	}`)
	if diag.HasWarnings() {
		t.Fatalf("components pointer should resolve: %v", diag.Warnings())
	}
	if _, ok := tree.Lookup("part.id"); !ok {
		t.Fatalf("resolved child missing")
	}
}

func TestDocument_CyclicRefPrunes(t *testing.T) {
	tree, diag := mustBuild(t, `{
		"type": "object",
		"properties": {
			"node": {"$ref": "#/definitions/Node"}
		},
		"definitions": {
			"Node": {
				"type": "object",
				"properties": {
					"next": {"$ref": "#/definitions/Node"}
				}
			}
		}
	}`)
	// the outer ref resolves; the self-reference inside prunes with a
	// warning instead of looping
	if _, ok := tree.Lookup("node"); !ok {
		t.Fatalf("outer ref should resolve")
	}
	if !diag.HasWarnings() {
		t.Fatalf("cycle must be reported")
	}
}
