// Package pipeline runs one generation request: load the schema, map it to
// a binding plan and emit Java sources.
//
// Stages run in order with no feedback between them. The context is checked
// between stages; a stage that has started always finishes.
package pipeline
