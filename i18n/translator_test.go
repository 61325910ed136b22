package i18n

import "testing"

func TestTranslator_DefaultAndGerman(t *testing.T) {
	// default is en
	if msg := T("required", nil); msg != "is required" {
		t.Fatalf("expected english message, got %q", msg)
	}

	SetLanguage("de")
	if msg := T("required", nil); msg != "ist erforderlich" {
		t.Fatalf("expected german message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_ParamSubstitution(t *testing.T) {
	got := T("minimum", map[string]string{"limit": "5"})
	if got != "must be at least 5" {
		t.Fatalf("unexpected message: %q", got)
	}
	got = T("minimum.exclusive", map[string]string{"limit": "5"})
	if got != "must be greater than 5" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestTranslator_UnknownRulePassesThrough(t *testing.T) {
	if got := T("custom:vatNumber", nil); got != "custom:vatNumber" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestTranslator_CustomTranslator(t *testing.T) {
	SetTranslator(staticTranslator{})
	defer SetTranslator(nil)
	if got := T("required", nil); got != "static" {
		t.Fatalf("unexpected message: %q", got)
	}
}

type staticTranslator struct{}

func (staticTranslator) Message(string, map[string]string) string { return "static" }
