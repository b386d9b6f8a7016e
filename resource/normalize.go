package resource

import "strings"

// Normalize canonicalizes a raw resource name into its lookup Key: trims
// surrounding whitespace, strips surrounding double quotes, folds
// non-breaking spaces into regular spaces, trims again, lower-cases.
// Total and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) Key {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.TrimSpace(s)
	return Key(strings.ToLower(s))
}
