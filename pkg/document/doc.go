// Package document records a fixed-layout page as an ordered list of drawing
// operations. A Document is produced by a Context, which owns the cursor and
// font state explicitly instead of hiding it in a drawing library; once the
// Context hands the Document out, nothing can append to it. Serializers
// replay the operations against a concrete PDF backend.
package document
