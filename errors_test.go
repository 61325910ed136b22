package schemaform_test

import (
	"fmt"
	"strings"
	"testing"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
)

func TestValidationErrors_Summary(t *testing.T) {
	var ve schemaform.ValidationErrors
	for i := 0; i < 5; i++ {
		ve = append(ve, schemaform.ValidationError{
			FieldID: fmt.Sprintf("f%d", i),
			Rule:    schemaform.RuleRequired,
		})
	}
	msg := ve.Error()
	if !strings.Contains(msg, "required at f0") || !strings.Contains(msg, "total 5") {
		t.Fatalf("unexpected summary: %q", msg)
	}
	if strings.Contains(msg, "f4") {
		t.Fatalf("summary should truncate: %q", msg)
	}
}

func TestAsValidationErrors(t *testing.T) {
	ve := schemaform.ValidationErrors{{FieldID: "x", Rule: schemaform.RuleEnum}}
	wrapped := fmt.Errorf("submit: %w", ve)
	got, ok := schemaform.AsValidationErrors(wrapped)
	if !ok || len(got) != 1 || got[0].FieldID != "x" {
		t.Fatalf("unwrap failed: %v %v", got, ok)
	}
	if _, ok := schemaform.AsValidationErrors(nil); ok {
		t.Fatalf("nil must not unwrap")
	}
	if _, ok := schemaform.AsValidationErrors(fmt.Errorf("plain")); ok {
		t.Fatalf("foreign error must not unwrap")
	}
}
