package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rarestones/pkg/dom"
	"github.com/kittclouds/rarestones/pkg/htmldom"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"meteor", []string{"meteor"}},
		{"meteor inquartz", []string{"meteor", "inquartz"}},
		{"meteor,inquartz", []string{"meteor", "inquartz"}},
		{"meteor、inquartz", []string{"meteor", "inquartz"}},
		{" meteor ,\tinquartz 、 rarecolor ", []string{"meteor", "inquartz", "rarecolor"}},
		{"hq hq", []string{"hq"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Tokenize(tt.raw), "raw=%q", tt.raw)
	}
}

func TestParseRarity(t *testing.T) {
	tests := map[string]int{
		"":     0,
		"5":    5,
		" 3 ":  3,
		"4★":   4,
		"12":   12,
		"abc":  0,
		"-2":   0,
		"★5":   0,
		"+1":   1,
		"07":   7,
		"3.9":  3,
		"\n2x": 2,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseRarity(raw), "raw=%q", raw)
	}
}

func TestNormalizeReading(t *testing.T) {
	assert.Equal(t, "", NormalizeReading(""))
	assert.Equal(t, "abc", NormalizeReading("ABC"))
	assert.Equal(t, "めてお", NormalizeReading("めーてお"))
	assert.Equal(t, "ｽﾀ", NormalizeReading("ｽｰﾀｰ"))
	assert.Equal(t, "くおつ", NormalizeReading("くおーつー"))
}

const grid = `<div id="og-grid">
  <div class="card" data-rare="5" data-group="meteor inquartz" data-yomi="ターコイズ" data-name="Turquoise">t</div>
  <div class="card" data-flag="hq、uv">plain</div>
  <p>not a card</p>
  <div class="wrap"><div class="card" data-rare="9">nested</div></div>
  <div class="card" data-rare="oops" data-group="," id="third"></div>
</div>`

func TestBuild(t *testing.T) {
	doc, err := htmldom.ParseString(grid)
	require.NoError(t, err)
	container := dom.Find(doc.Root(), dom.ByID("og-grid"))
	require.NotNil(t, container)

	reg := Build(container, "card", DefaultAttributes())
	require.Equal(t, 3, reg.Len())

	cards := reg.Cards()
	for i, c := range cards {
		assert.Equal(t, i, c.DisplayIndex)
		assert.NotNil(t, c.Element)
	}

	assert.Equal(t, 5, cards[0].Rarity)
	assert.Equal(t, []string{"meteor", "inquartz"}, cards[0].Groups)
	assert.Equal(t, "ターコイズ", cards[0].Reading)
	assert.Equal(t, "タコイズ", cards[0].SortKey)
	assert.Equal(t, "Turquoise", cards[0].Label)
	assert.True(t, cards[0].InGroup("meteor"))
	assert.False(t, cards[0].HasFlag("hq"))

	assert.Equal(t, 0, cards[1].Rarity)
	assert.Empty(t, cards[1].Groups)
	assert.Equal(t, []string{"hq", "uv"}, cards[1].Flags)
	assert.Equal(t, "", cards[1].SortKey)
	assert.Equal(t, "plain", cards[1].Label)

	assert.Equal(t, 0, cards[2].Rarity)
	assert.Empty(t, cards[2].Groups)
	assert.Equal(t, "third", cards[2].Label)
}

func TestBuildFreezesDisplayIndex(t *testing.T) {
	doc, err := htmldom.ParseString(grid)
	require.NoError(t, err)
	container := dom.Find(doc.Root(), dom.ByID("og-grid"))

	reg := Build(container, "card", DefaultAttributes())
	first := reg.At(0)

	// Reorder the live DOM; the snapshot keeps its indexes.
	container.AppendChild(first.Element)
	assert.Equal(t, 0, reg.At(0).DisplayIndex)
	assert.True(t, reg.At(0).Element.Same(first.Element))
}

func TestBuildEmpty(t *testing.T) {
	doc, err := htmldom.ParseString(`<div id="og-grid"></div>`)
	require.NoError(t, err)
	reg := Build(dom.Find(doc.Root(), dom.ByID("og-grid")), "card", DefaultAttributes())
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Cards())
}
