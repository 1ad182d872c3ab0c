// Package diagnostic provides structured errors and warnings collected while
// validating a schema before any bindings are produced.
//
// Key capabilities:
//   - Duplicate type and field reports
//   - Dangling type reference reports
//   - Naming warnings (reserved words, lower-case type names)
//   - Source locations (line, type, field) for every entry
package diagnostic
