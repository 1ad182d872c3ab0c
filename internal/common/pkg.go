package common

import (
	"path"
	"strings"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PackageDir returns the slash-separated directory for a dotted package name
// (e.g., "org.example.model" -> "org/example/model").
// Returns empty string if pkg is empty.
func PackageDir(pkg string) string {
	if pkg == "" {
		return ""
	}

	return path.Join(strings.Split(pkg, ".")...)
}
