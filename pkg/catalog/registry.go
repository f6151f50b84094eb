package catalog

import (
	"strings"

	"github.com/kittclouds/rarestones/pkg/dom"
)

// Attributes names the card metadata attributes.
type Attributes struct {
	Rarity  string `yaml:"rarity"`
	Group   string `yaml:"group"`
	Flag    string `yaml:"flag"`
	Reading string `yaml:"reading"`
	Name    string `yaml:"name"`
}

// DefaultAttributes match the markup the catalog pages ship with.
func DefaultAttributes() Attributes {
	return Attributes{
		Rarity:  "data-rare",
		Group:   "data-group",
		Flag:    "data-flag",
		Reading: "data-yomi",
		Name:    "data-name",
	}
}

// Registry is the fixed, ordered set of cards. The engine reorders and
// hides cards but never adds or removes them.
type Registry struct {
	cards []Card
}

// Build snapshots the direct children of container that carry cardClass,
// in document order, and assigns DisplayIndex from 0. Missing or malformed
// metadata falls back to defaults; Build never fails.
func Build(container dom.Element, cardClass string, attrs Attributes) *Registry {
	var cards []Card
	if container == nil {
		return &Registry{}
	}
	for _, el := range container.Children() {
		if !el.HasClass(cardClass) {
			continue
		}
		c := read(el, attrs)
		c.DisplayIndex = len(cards)
		cards = append(cards, c)
	}
	return &Registry{cards: cards}
}

// NewRegistry wraps already-built cards, re-numbering DisplayIndex by
// slice position.
func NewRegistry(cards []Card) *Registry {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := range out {
		out[i].DisplayIndex = i
	}
	return &Registry{cards: out}
}

func read(el dom.Element, attrs Attributes) Card {
	get := func(name string) string {
		v, _ := el.Attr(name)
		return v
	}
	reading := get(attrs.Reading)
	c := Card{
		Rarity:  ParseRarity(get(attrs.Rarity)),
		Groups:  Tokenize(get(attrs.Group)),
		Flags:   Tokenize(get(attrs.Flag)),
		Reading: reading,
		SortKey: NormalizeReading(reading),
		Element: el,
	}
	c.Label = firstNonEmpty(get(attrs.Name), reading, get("id"), strings.TrimSpace(el.Text()))
	return c
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Len returns the number of cards.
func (r *Registry) Len() int { return len(r.cards) }

// Cards returns the cards in DisplayIndex order. The slice is a copy.
func (r *Registry) Cards() []Card {
	out := make([]Card, len(r.cards))
	copy(out, r.cards)
	return out
}

// At returns the card with the given DisplayIndex.
func (r *Registry) At(i int) Card { return r.cards[i] }
