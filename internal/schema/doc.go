// Package schema loads schema descriptions into an immutable in-memory Model.
//
// Three input formats are supported:
//
//   - text: a small DSL
//   - yaml: a document decoded with gopkg.in/yaml.v3
//   - json: the same document decoded with github.com/goccy/go-json
//
// # Text DSL
//
//	# comments start with '#' or '//'
//	type Person {
//	    name: string;
//	    age: int
//	    email: string? @name("email_address")
//	    tags: string[]
//	    home: Address @required
//	}
//
// The type keyword is case-insensitive. Fields are separated by ';' or newlines.
// A type reference is a name, optionally followed by "[]" (list) and then
// "?" (optional).
//
// # Annotations
//
//   - @name("x"): serialized name override
//   - @attribute: render as an XML attribute (jaxb-style only)
//   - @required: mark the field as required in the binding
//
// # Document format
//
//	types:
//	  - name: Person
//	    fields:
//	      - name: email
//	        type: string?
//	        serializedName: email_address
//
// # Validation
//
// Loading fails fast with a *SchemaParseError on malformed input, duplicate
// type or field names, names that would collide once converted to Java, and
// references to types that are neither defined nor primitive.
package schema
