// Package schemaform turns JSON-Schema documents into typed form-field trees
// and validates submission data against them:
//
// - A deterministic tree model (SchemaNode) with stable dot/bracket identifiers
// - Build from ordered documents (Document) with $ref/allOf/oneOf resolution
// - Validation producing a structured, indexed ValidationResult
// - Widget inference (enum/radio/checkbox/date/textarea/...) for renderers
//
// Design policy:
// - Keep only public APIs in the root package; path algebra lives in fieldpath/.
// - Place reconciliation of free-text errors under report/, message catalogs
//   under i18n/, cross-field predicates under rules/, and the CLI under
//   cmd/schemaform.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := schemaform.DocumentFromJSON(raw)
//	tree, diag, err := schemaform.Build(doc, schemaform.Options{})
//	res := schemaform.Validate(tree, payload)
//	if !res.Valid {
//	    for _, ve := range res.Errors { ... }
//	}
package schemaform
