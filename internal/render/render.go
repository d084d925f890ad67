// Package render substitutes named placeholders in a document template.
//
// Templates use a double-brace grammar: {{name}}. Substitution scans for the
// placeholder pattern explicitly rather than running blind text replacement,
// so a substituted value containing "$" or brace characters can never be
// re-expanded or collide with template syntax.
package render

import "regexp"

// Missing is substituted for placeholders with no corresponding value; no
// literal {{name}} may survive into rendered output.
const Missing = "N/A"

var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Render replaces every placeholder occurrence in template with its value.
// Replacement is global per key. Keys present in values but absent from the
// template are ignored.
func Render(template string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := values[name]; ok {
			return value
		}
		return Missing
	})
}

// Placeholders returns the distinct placeholder names in template, in order
// of first appearance.
func Placeholders(template string) []string {
	seen := make(map[string]struct{})
	var names []string

	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
