// Package uischema loads optional UI overlays that adjust how certificate
// forms are presented: page title, intro text, field captions and input
// placeholders. Overlays never rename fields, so the labels printed on the
// certificate and used as value keys stay fixed. The orchestrator applies
// them through WithUIDecorators.
package uischema
