package store

import (
	"regexp"
	"strings"
)

// DefaultRelType is used when sanitization leaves nothing of the original
// relationship type.
const DefaultRelType = "RELATED_TO"

var relTypePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// SanitizeRelType turns a free-form LLM relationship type into an identifier
// safe to splice into a Cypher pattern: uppercased, every run of characters
// outside [A-Z0-9_] collapsed to a single underscore, leading and trailing
// underscores stripped. Empty results fall back to DefaultRelType.
// The transform is idempotent.
func SanitizeRelType(s string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToUpper(s) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		default:
			if !underscore {
				b.WriteByte('_')
				underscore = true
			}
		}
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		return DefaultRelType
	}
	return out
}

// ValidRelType reports whether s is safe to embed in a query template.
// Everything SanitizeRelType returns passes; this is the last check before
// string splicing.
func ValidRelType(s string) bool {
	return relTypePattern.MatchString(s)
}
