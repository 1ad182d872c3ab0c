package binding

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Style -linecomment -output=style_string.go

// Style selects the binding convention used for generated classes.
type Style int

const (
	StylePlain   Style = iota // plain
	StyleJAXB                 // jaxb-style
	StyleJackson              // jackson-style
)

// Styles returns all binding styles.
func Styles() []Style {
	return []Style{StylePlain, StyleJAXB, StyleJackson}
}

// ParseStyle parses a style selector. An empty selector means StylePlain.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return StylePlain, nil
	case "jaxb-style", "jaxb":
		return StyleJAXB, nil
	case "jackson-style", "jackson":
		return StyleJackson, nil
	default:
		return 0, fmt.Errorf("unknown binding style %q (want plain, jaxb-style or jackson-style)", s)
	}
}
