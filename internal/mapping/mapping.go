// Package mapping translates opaque survey field identifiers into stable
// semantic names.
//
// Survey authoring assigns every question an opaque identifier; recreating a
// question changes its identifier. The mapping table is read-only
// configuration that must be kept in sync with the live survey schema. Stale
// entries degrade to pass-through of the raw identifier, never to dropped
// answers.
package mapping

import (
	"fmt"
	"strconv"
	"strings"
)

// AnswerSet is a set of survey answers keyed by field identifier. Values may
// be strings, numbers, string arrays, or nested records, as JSON decodes
// them.
type AnswerSet map[string]any

// Mapping is an immutable table from opaque field identifier to semantic
// name. Construct one per survey schema and pass it in explicitly; it is not
// process-global.
type Mapping struct {
	names map[string]string
}

// New creates a Mapping from an identifier-to-semantic-name table. The table
// is copied; later mutation of the argument does not affect the Mapping.
func New(names map[string]string) Mapping {
	copied := make(map[string]string, len(names))
	for id, name := range names {
		copied[id] = name
	}
	return Mapping{names: copied}
}

// SemanticName returns the semantic name for a field identifier, if mapped.
func (m Mapping) SemanticName(id string) (string, bool) {
	name, ok := m.names[id]
	return name, ok
}

// Len returns the number of mapped identifiers.
func (m Mapping) Len() int {
	return len(m.names)
}

// Apply translates raw answers into semantically named answers. Every entry
// in raw is emitted: mapped identifiers under their semantic name, unmapped
// identifiers unchanged so unrecognized questions remain inspectable
// downstream. Pure; raw is never modified.
func (m Mapping) Apply(raw AnswerSet) AnswerSet {
	mapped := make(AnswerSet, len(raw))
	for id, value := range raw {
		if name, ok := m.names[id]; ok {
			mapped[name] = value
			continue
		}
		mapped[id] = value
	}
	return mapped
}

// String returns the answer for key coerced to a trimmed string. Numbers are
// rendered without a trailing ".0", string arrays are comma-joined, and
// absent answers yield "".
func (a AnswerSet) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(coerce(v))
}

// Has reports whether the answer for key is present and non-empty.
func (a AnswerSet) Has(key string) bool {
	return a.String(key) != ""
}

func coerce(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, coerce(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(t, ", ")
	default:
		return fmt.Sprint(t)
	}
}
