// Package config holds generator settings and the layers they are read from.
//
// Precedence, lowest to highest:
//  1. Defaults
//  2. Settings file (codgen.yaml)
//  3. Environment (CODGEN_*)
//  4. Command-line flags (applied by the caller with Merge)
//
// Example settings file:
//
//	schema: schema/person.schema
//	bindingStyle: jackson-style
//	outputDir: build/generated
//	packageName: org.example.model
//	typeOverrides:
//	  jaxb-style:
//	    binary: byte[]
package config
