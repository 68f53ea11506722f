// Package model defines the field schema consumed by renderers and
// collectors. A FormModel lists the editable certificate fields of one
// variant in print order; each Field carries the literal label printed on
// the certificate, an attribute friendly id and the "Enter {label}..."
// placeholder. ValueMap holds the strings a user typed, keyed by label.
// Builders reside in internal/model but return the types defined here.
package model
