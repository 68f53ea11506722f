// Package orchestrator wires the variant → form → collect → render →
// dispatch pipeline behind a single entry point, and renders the matching
// input forms.
package orchestrator
