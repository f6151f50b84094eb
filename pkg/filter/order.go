package filter

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kittclouds/rarestones/pkg/catalog"
)

// Orderer produces the display order of the visible cards.
// It holds a collator and is not safe for concurrent use.
type Orderer struct {
	col *collate.Collator
}

// NewOrderer compares sort keys with the collation rules of tag.
func NewOrderer(tag language.Tag) *Orderer {
	return &Orderer{col: collate.New(tag)}
}

// Order returns a sorted copy of visible.
//
// Outside the rarity tab cards go back to DisplayIndex order. On the
// rarity tab, with token "*", rarity descends first and the sort key
// breaks ties; with a concrete token every visible card shares one rarity,
// so only the sort key applies. Remaining ties keep DisplayIndex order.
func (o *Orderer) Order(visible []catalog.Card, tab TabDefinition, token string) []catalog.Card {
	out := make([]catalog.Card, len(visible))
	copy(out, visible)

	if tab.Kind != KindRarity {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DisplayIndex < out[j].DisplayIndex
		})
		return out
	}

	byRarity := token == AnyRarity || token == ""
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if byRarity && a.Rarity != b.Rarity {
			return a.Rarity > b.Rarity
		}
		if c := o.col.CompareString(a.SortKey, b.SortKey); c != 0 {
			return c < 0
		}
		return a.DisplayIndex < b.DisplayIndex
	})
	return out
}
