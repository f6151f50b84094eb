package filter

import (
	"strconv"

	"github.com/kittclouds/rarestones/pkg/catalog"
)

// Matches reports whether card is visible under tab. token only applies to
// the rarity tab: "*" matches every card, anything else must equal the
// card's rarity written in decimal. A token that is not a rarity ("x",
// "05") therefore matches nothing; no attempt is made to guess intent.
func Matches(card catalog.Card, tab TabDefinition, token string) bool {
	switch tab.Kind {
	case KindGroup:
		return card.InGroup(tab.Value)
	case KindFlag:
		return card.HasFlag(tab.Value)
	case KindRarity:
		return token == AnyRarity || strconv.Itoa(card.Rarity) == token
	default:
		return true
	}
}

// Matches resolves tabID (unknown ids fail open to the fallback tab) and
// evaluates the predicate.
func (ts *TabSet) Matches(card catalog.Card, tabID, token string) bool {
	return Matches(card, ts.Resolve(tabID), token)
}

// Visible returns the cards that match, keeping their input order.
func Visible(cards []catalog.Card, tab TabDefinition, token string) []catalog.Card {
	out := make([]catalog.Card, 0, len(cards))
	for _, c := range cards {
		if Matches(c, tab, token) {
			out = append(out, c)
		}
	}
	return out
}
