// Package emit renders binding plans into Java source files.
//
// Rendering uses one fixed text/template per binding style followed by a
// layout pass that normalizes blank lines, so output is byte-for-byte
// reproducible for a given plan.
//
// Writes are idempotent: each file's xxhash is compared with the file already
// on disk and identical content is never rewritten. Changed files are written
// through a temporary file and renamed into place, so a failed write never
// leaves a partial file behind.
package emit
