// Package export serializes resolved documents and expansion results
// back out of the engine. It is the outbound collaborator: the engine
// itself never touches a file format, and callers that need a
// different representation can walk the entity model directly.
package export

import (
	"fmt"
	"sort"
	"strings"
)

// Format identifies an output serialization.
type Format string

const (
	// FormatYAML writes a YAML rendering of the document snapshot.
	FormatYAML Format = "yaml"
	// FormatJSON writes a JSON rendering of the document snapshot.
	FormatJSON Format = "json"
	// FormatMsgpack writes a compact binary snapshot for machine consumers.
	FormatMsgpack Format = "msgpack"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatYAML: {
		Name:        FormatYAML,
		Extension:   ".yaml",
		Description: "YAML rendering of the resolved document",
	},
	FormatJSON: {
		Name:        FormatJSON,
		Extension:   ".json",
		Description: "JSON document snapshot",
	},
	FormatMsgpack: {
		Name:        FormatMsgpack,
		Extension:   ".msgpack",
		Description: "MessagePack binary document snapshot",
	},
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("strand: unknown export format %q (supported: %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// FormatNames returns the supported format names in stable order.
func FormatNames() []string {
	names := make([]string, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
