package htmldom

import "strings"

type declaration struct {
	prop  string
	value string
}

// parseStyle splits an inline style attribute into declarations, keeping
// their order. Values containing ';' inside quotes or parentheses are not
// something the engine writes, so a plain split is enough.
func parseStyle(s string) []declaration {
	var out []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" {
			continue
		}
		out = append(out, declaration{prop: prop, value: value})
	}
	return out
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value
	}
	return strings.Join(parts, "; ") + ";"
}
