package report_test

import (
	"strings"
	"testing"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
	"github.com/jalvaro-lks/industry-core-hub-sub004/report"
)

func passportFields(t *testing.T) []schemaform.FormField {
	t.Helper()
	doc, err := schemaform.DocumentFromJSON([]byte(`{
		"type": "object",
		"required": ["identification"],
		"properties": {
			"identification": {
				"type": "object",
				"required": ["type"],
				"properties": {
					"type": {
						"type": "object",
						"properties": {
							"manufacturerPartId": {"type": "string"}
						}
					}
				}
			},
			"materials": {
				"type": "object",
				"properties": {
					"materialComposition": {
						"type": "object",
						"properties": {
							"content": {
								"type": "array",
								"items": {
									"type": "object",
									"properties": {
										"concentration": {"type": "number", "minimum": 0}
									}
								}
							}
						}
					}
				}
			}
		}
	}`))
	if err != nil {
		t.Fatalf("document err: %v", err)
	}
	tree, _, err := schemaform.Build(doc, schemaform.Options{})
	if err != nil {
		t.Fatalf("build err: %v", err)
	}
	return schemaform.Flatten(tree)
}

func TestNormalize_RequiredMessage(t *testing.T) {
	m := report.New(passportFields(t), report.Options{})
	r := m.Normalize([]string{"identification.type.manufacturerPartId is required"})
	if len(r.Errors) != 1 || len(r.General) != 0 {
		t.Fatalf("unexpected report: %+v", r)
	}
	e := r.Errors[0]
	if e.Path != "identification.type.manufacturerPartId" {
		t.Fatalf("path: %q", e.Path)
	}
	if e.Rule != schemaform.RuleRequired {
		t.Fatalf("rule: %q", e.Rule)
	}
	if e.FieldID != "identification.type.manufacturerPartId" {
		t.Fatalf("field: %q", e.FieldID)
	}
	if e.Section != "Identification" {
		t.Fatalf("section: %q", e.Section)
	}
	if !strings.Contains(e.Display, "Manufacturer Part Id") {
		t.Fatalf("label not substituted: %q", e.Display)
	}
}

func TestNormalize_ArrayMessage(t *testing.T) {
	m := report.New(passportFields(t), report.Options{})
	raw := "materials.materialComposition.content[0].concentration must be at least 0"
	r := m.Normalize([]string{raw})
	e := r.Errors[0]
	if e.Path != "materials.materialComposition.content[0].concentration" {
		t.Fatalf("path: %q", e.Path)
	}
	if e.NormalizedPath != "materials.materialComposition.content.concentration" {
		t.Fatalf("normalized: %q", e.NormalizedPath)
	}
	if e.SchemaPath != "materials.materialComposition.content[item].concentration" {
		t.Fatalf("schema path: %q", e.SchemaPath)
	}
	if len(e.ArrayIndices) != 1 || e.ArrayIndices[0] != 0 {
		t.Fatalf("indices: %v", e.ArrayIndices)
	}
	if e.Rule != schemaform.RuleMinimum {
		t.Fatalf("rule: %q", e.Rule)
	}
	if e.FieldID != "materials.materialComposition.content[item].concentration" {
		t.Fatalf("field: %q", e.FieldID)
	}
	if !strings.HasSuffix(e.Display, "(item 1)") {
		t.Fatalf("item suffix missing: %q", e.Display)
	}
}

func TestNormalize_DirectAndAncestorPaths(t *testing.T) {
	m := report.New(passportFields(t), report.Options{})
	raw := "materials.materialComposition.content[1].concentration must be at least 0"
	r := m.Normalize([]string{raw})
	wantDirect := "materials.materialComposition.content[1].concentration"
	if len(r.DirectPaths) != 1 || r.DirectPaths[0] != wantDirect {
		t.Fatalf("direct paths: %v", r.DirectPaths)
	}
	if !r.HasErrorAt(wantDirect) {
		t.Fatalf("exact path missing from PathsWithErrors")
	}
	// the un-indexed ancestor is present for container highlighting
	if !r.HasErrorAt("materials.materialComposition.content") {
		t.Fatalf("ancestor missing: %v", r.PathsWithErrors)
	}
	if !r.HasErrorAt("materials") {
		t.Fatalf("top ancestor missing: %v", r.PathsWithErrors)
	}
	if r.HasErrorAt("identification") {
		t.Fatalf("unrelated path flagged")
	}
}

func TestNormalize_GeneralBucket(t *testing.T) {
	m := report.New(passportFields(t), report.Options{})
	r := m.Normalize([]string{
		"something went wrong",
		"identification.type.manufacturerPartId is required",
	})
	if len(r.Errors) != 2 {
		t.Fatalf("no message may be discarded: %+v", r.Errors)
	}
	if len(r.General) != 1 || r.General[0].Original != "something went wrong" {
		t.Fatalf("general bucket: %+v", r.General)
	}
	if len(r.BySection[report.GeneralSection]) != 1 {
		t.Fatalf("general section index: %+v", r.BySection)
	}
	if r.General[0].Path != "" || r.General[0].Section != report.GeneralSection {
		t.Fatalf("general entry malformed: %+v", r.General[0])
	}
}

func TestNormalize_UnmatchedPathStaysGeneralSection(t *testing.T) {
	m := report.New(passportFields(t), report.Options{})
	r := m.Normalize([]string{"ghost.subfield.unknown is required"})
	e := r.Errors[0]
	if e.Path != "ghost.subfield.unknown" {
		t.Fatalf("path extraction failed: %+v", e)
	}
	if e.FieldID != "" || e.Section != report.GeneralSection {
		t.Fatalf("unmatched path must keep the General section: %+v", e)
	}
	// the path still indexes, so the UI can show the raw location
	if len(r.ByPath["ghost.subfield.unknown"]) != 1 {
		t.Fatalf("unmatched path not indexed: %+v", r.ByPath)
	}
}

func TestNormalize_TrailingKeyFallback(t *testing.T) {
	m := report.New(passportFields(t), report.Options{})
	// a producer that drops the section prefix still matches by trailing key
	r := m.Normalize([]string{"type.manufacturerPartId is required"})
	e := r.Errors[0]
	if e.FieldID != "identification.type.manufacturerPartId" {
		t.Fatalf("loose match failed: %+v", e)
	}
	if e.Section != "Identification" {
		t.Fatalf("section: %q", e.Section)
	}
}

func TestNormalize_ColonAndQuotedShapes(t *testing.T) {
	m := report.New(passportFields(t), report.Options{})
	r := m.Normalize([]string{
		"identification.type.manufacturerPartId: value rejected",
		"field 'identification.type.manufacturerPartId' has a problem",
	})
	for _, e := range r.Errors {
		if e.Path != "identification.type.manufacturerPartId" {
			t.Fatalf("path extraction failed: %+v", e)
		}
		if e.Rule != "" {
			t.Fatalf("no rule is implied by these shapes: %+v", e)
		}
	}
}

func TestNormalize_EmptyAndBlankMessagesSkipped(t *testing.T) {
	m := report.New(passportFields(t), report.Options{})
	r := m.Normalize([]string{"", "   "})
	if len(r.Errors) != 0 {
		t.Fatalf("blank messages are not findings: %+v", r.Errors)
	}
}
