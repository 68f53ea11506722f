package model

import internalmodel "github.com/goliatone/go-coagen/internal/model"

type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
type ValueMap = internalmodel.ValueMap

// Placeholder formats the "Enter {label}..." hint used by every input.
func Placeholder(label string) string {
	return internalmodel.Placeholder(label)
}

// FieldID derives the HTML id used for a label, e.g. "Batch No." becomes
// "batch-no".
func FieldID(label string) string {
	return internalmodel.FieldID(label)
}
