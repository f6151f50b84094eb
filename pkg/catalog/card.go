// Package catalog builds the read-only card registry the filter engine works on.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kittclouds/rarestones/pkg/dom"
)

// Card is a snapshot of one card element taken at registry build time.
type Card struct {
	// DisplayIndex is the card's position at build time. It never changes,
	// so "original order" stays defined after any number of re-sorts.
	DisplayIndex int      `json:"displayIndex" yaml:"displayIndex"`
	Rarity       int      `json:"rarity" yaml:"rarity"`
	Groups       []string `json:"groups,omitempty" yaml:"groups,omitempty"`
	Flags        []string `json:"flags,omitempty" yaml:"flags,omitempty"`
	Reading      string   `json:"reading,omitempty" yaml:"reading,omitempty"`
	SortKey      string   `json:"sortKey,omitempty" yaml:"sortKey,omitempty"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty"`

	// Element is the live node the card was read from.
	Element dom.Element `json:"-" yaml:"-"`
}

// InGroup reports whether value is one of the card's group tokens.
func (c Card) InGroup(value string) bool { return contains(c.Groups, value) }

// HasFlag reports whether value is one of the card's flag tokens.
func (c Card) HasFlag(value string) bool { return contains(c.Flags, value) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Tokenize splits a group/flag attribute on whitespace, ASCII commas and
// the ideographic comma. Duplicates are dropped; first-seen order is kept.
func Tokenize(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '、' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// ParseRarity reads the leading decimal digits of raw after optional
// whitespace. Anything without a leading digit is 0.
func ParseRarity(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	s = strings.TrimPrefix(s, "+")
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			break
		}
	}
	return n
}

// NormalizeReading lower-cases s and strips long-vowel marks, full- and
// half-width.
func NormalizeReading(s string) string {
	if s == "" {
		return ""
	}
	s = cases.Lower(language.Und).String(s)
	return strings.Map(func(r rune) rune {
		if r == 'ー' || r == 'ｰ' {
			return -1
		}
		return r
	}, s)
}
