// Package binding maps a schema.Model to a Plan of Java rendering
// descriptors for one binding style.
//
// Styles:
//   - plain: POJOs without annotations
//   - jaxb-style: JAXB annotated classes (javax or jakarta namespace)
//   - jackson-style: Jackson annotated classes
//
// Primitive types resolve through a per-style RuleTable. Tables can be
// overridden per style; a primitive missing from the table of the requested
// style fails with *UnsupportedTypeError. The default jaxb-style table has no
// entry for binary.
//
// Mapping is deterministic: one Descriptor per type in schema order, fields in
// declaration order, imports sorted.
package binding
