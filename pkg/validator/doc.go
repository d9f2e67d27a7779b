// Package validator provides declarative, rule-based validation for untrusted
// form input. Rules are composed per submission and executed all at once via
// Apply, which returns ValidationErrors keyed by field name. Services return
// ValidationErrors through their normal error path; HTTP handlers translate
// them into field -> messages maps without touching any backing store.
package validator
