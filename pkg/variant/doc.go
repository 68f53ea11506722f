// Package variant loads certificate variant definitions. A variant decides
// which fields are editable, which optional sections are printed and the
// column widths, row heights and font sizes of every section. Definitions are
// JSON or YAML documents read from an fs.FS; the built-in "full" and
// "compact" variants ship embedded in the binary.
package variant
