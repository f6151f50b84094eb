// Package hashstate stores the catalog selection in the URL fragment as
// "#tab=<id>&filter=<token>", both values percent-encoded.
package hashstate

import (
	"net/url"
	"strings"
)

// Default values for missing keys.
const (
	DefaultTab    = "all"
	DefaultFilter = "*"
)

// Fragment is a decoded fragment. Values are taken verbatim; deciding
// whether the tab exists is the caller's job.
type Fragment struct {
	Tab    string `json:"tab" yaml:"tab"`
	Filter string `json:"filter" yaml:"filter"`
}

// Parse decodes a fragment, with or without the leading '#'. Pairs are
// split on '&' only and the first occurrence of a key wins. Unknown keys
// are ignored, and a missing or empty key takes its default. A value whose
// percent escapes do not decode is kept as written, so a mistyped token
// stays a token instead of turning into the default.
func Parse(fragment string) Fragment {
	var f Fragment
	var seenTab, seenFilter bool
	for _, pair := range strings.Split(strings.TrimPrefix(fragment, "#"), "&") {
		key, value, _ := strings.Cut(pair, "=")
		switch unescape(key) {
		case "tab":
			if !seenTab {
				f.Tab, seenTab = unescape(value), true
			}
		case "filter":
			if !seenFilter {
				f.Filter, seenFilter = unescape(value), true
			}
		}
	}
	if f.Tab == "" {
		f.Tab = DefaultTab
	}
	if f.Filter == "" {
		f.Filter = DefaultFilter
	}
	return f
}

func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return strings.ReplaceAll(s, "+", " ")
}

// Format encodes f, including the leading '#'.
func Format(f Fragment) string {
	return "#tab=" + EscapeComponent(f.Tab) + "&filter=" + EscapeComponent(f.Filter)
}

// componentFixups turns url.QueryEscape output into what a browser's
// encodeURIComponent produces, which leaves !'()* alone and writes
// spaces as %20.
var componentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s the way encodeURIComponent does.
func EscapeComponent(s string) string {
	return componentFixups.Replace(url.QueryEscape(s))
}
