package strand

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// Join appends a display ID to a namespace with a single separator.
func Join(namespace, displayID string) string {
	return strings.TrimSuffix(namespace, "/") + "/" + displayID
}

// Namespace returns the identity with its final path segment removed.
// An identity with no separator is its own namespace.
func Namespace(identity string) string {
	i := strings.LastIndex(identity, "/")
	if i < 0 {
		return identity
	}
	return identity[:i]
}

// LocalName returns the final path segment of an identity.
func LocalName(identity string) string {
	i := strings.LastIndex(identity, "/")
	if i < 0 {
		return identity
	}
	return identity[i+1:]
}

// DeriveDisplayID returns the display ID of the variant produced by
// binding a template's variable slots to the given candidates, in
// canonical variable order. The mapping is a pure function of its
// inputs: the template's display ID followed by each chosen candidate's
// display ID, underscore-separated. Two assignments collide only if
// they choose identical candidates, which is exactly the deduplication
// the expansion engine wants.
func DeriveDisplayID(templateDisplayID string, chosen ...string) string {
	var b strings.Builder
	b.WriteString(templateDisplayID)
	for _, c := range chosen {
		b.WriteString("_")
		b.WriteString(c)
	}
	return b.String()
}

// DeriveIdentity returns the full identity for a derived variant: the
// derived display ID rooted in the given namespace.
func DeriveIdentity(namespace, templateDisplayID string, chosen ...string) string {
	return Join(namespace, DeriveDisplayID(templateDisplayID, chosen...))
}

// SanitizeDisplayID converts a free-form name into an identifier-safe
// display ID: words are underscore-joined and any character outside
// [A-Za-z0-9_] is dropped. A leading digit is prefixed with an
// underscore so the result is usable as an identifier in downstream
// tooling.
func SanitizeDisplayID(name string) string {
	id := inflect.Underscore(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '.':
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		return out
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}
