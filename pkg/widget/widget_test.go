package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rarestones/pkg/catalog"
	"github.com/kittclouds/rarestones/pkg/dom"
	"github.com/kittclouds/rarestones/pkg/filter"
	"github.com/kittclouds/rarestones/pkg/hashstate"
	"github.com/kittclouds/rarestones/pkg/htmldom"
	"github.com/kittclouds/rarestones/pkg/selection"
)

const catalogPage = `<!doctype html>
<html><body>
<section class="og">
  <div class="tabs" role="tablist">
    <button class="tab-btn" role="tab" data-tab="all" aria-selected="true">すべて</button>
    <button class="tab-btn" role="tab" data-tab="meteor"><span class="label">隕石</span></button>
    <button class="tab-btn" role="tab" data-tab="rare">レア度</button>
    <button class="tab-btn" role="tab" data-tab="hq">高品質</button>
    <button class="tab-btn" role="tab">壊れたタブ</button>
  </div>
  <div id="sel-rare" class="rare-selector">
    <div id="chips-rare">
      <button class="chip" data-filter="*">すべて</button>
      <button class="chip" data-filter="5"><b>★5</b></button>
      <button class="chip" data-filter="2">★2</button>
    </div>
  </div>
  <div class="og-explain">
    <p class="explain-block is-active" data-tab="all">all</p>
    <p class="explain-block" data-tab="rare">rare</p>
  </div>
  <div id="og-grid">
    <div class="card" id="b" data-rare="5" data-yomi="b" data-group="meteor">B</div>
    <div class="card" id="a" data-rare="5" data-yomi="a" data-flag="hq">A</div>
    <div class="card" id="c" data-rare="2" data-yomi="c" data-group="meteor,inquartz">C</div>
  </div>
</section>
</body></html>`

type frames struct{ fns []func() }

func (f *frames) RequestFrame(fn func()) { f.fns = append(f.fns, fn) }

func (f *frames) flush() {
	fns := f.fns
	f.fns = nil
	for _, fn := range fns {
		fn()
	}
}

type harness struct {
	w      *Widget
	doc    *htmldom.Document
	loc    *hashstate.MemoryLocation
	frames *frames
}

func newHarness(t *testing.T, page, hash string) *harness {
	t.Helper()
	doc, err := htmldom.ParseString(page)
	require.NoError(t, err)
	loc := hashstate.NewMemoryLocation(hash)
	fr := &frames{}
	w, err := Bind(doc.Root(), DefaultConfig(), fr, loc, nil)
	require.NoError(t, err)
	return &harness{w: w, doc: doc, loc: loc, frames: fr}
}

func (h *harness) byID(id string) dom.Element {
	return dom.Find(h.doc.Root(), dom.ByID(id))
}

func (h *harness) tab(id string) dom.Element {
	return dom.Find(h.doc.Root(), dom.All(dom.ByClass("tab-btn"), dom.ByAttr("data-tab", id)))
}

func (h *harness) chip(token string) dom.Element {
	return dom.Find(h.doc.Root(), dom.All(dom.ByClass("chip"), dom.ByAttr("data-filter", token)))
}

func (h *harness) block(tab string) dom.Element {
	return dom.Find(h.doc.Root(), dom.All(dom.ByClass("explain-block"), dom.ByAttr("data-tab", tab)))
}

// shown lists the ids of displayed cards in DOM order.
func (h *harness) shown() []string {
	var out []string
	for _, c := range h.byID("og-grid").Children() {
		if c.Style("display") == "none" {
			continue
		}
		id, _ := c.Attr("id")
		out = append(out, id)
	}
	return out
}

func labels(cards []catalog.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Label
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "og-grid", cfg.Selectors.Grid)
	assert.Equal(t, "data-yomi", cfg.Attributes.Reading)
	assert.Equal(t, "data-cards-src", cfg.Attributes.CardsSrc)
	assert.Equal(t, 40*time.Millisecond, cfg.Animation.Step)
	assert.Equal(t, filter.DefaultTabs(), cfg.Tabs)
}

func TestLoadConfigOverlay(t *testing.T) {
	cfg, err := LoadConfig([]byte(`
animation:
  step: 25ms
offlineCache: true
tabs:
  - id: everything
    kind: all
  - id: stars
    kind: rarity
`))
	require.NoError(t, err)
	assert.Equal(t, 25*time.Millisecond, cfg.Animation.Step)
	assert.Equal(t, "translateY(8px)", cfg.Animation.Offset, "unset keys keep defaults")
	assert.Len(t, cfg.Tabs, 2)
	assert.True(t, cfg.OfflineCache)
	assert.False(t, DefaultConfig().OfflineCache, "stale cards are opt-in")

	_, err = LoadConfig([]byte("tabs:\n  - id: only\n    kind: flag\n    value: hq\n"))
	assert.ErrorIs(t, err, filter.ErrInvalidTabs)

	_, err = LoadConfig([]byte("locale: \"!!\"\n"))
	assert.Error(t, err)

	_, err = LoadConfig([]byte("tabs: [\n"))
	assert.Error(t, err)
}

func TestBindErrors(t *testing.T) {
	doc, err := htmldom.ParseString(`<div class="og"><div id="og-grid"></div></div>`)
	require.NoError(t, err)
	_, err = Bind(doc.Root(), DefaultConfig(), &frames{}, hashstate.NewMemoryLocation(""), nil)
	assert.ErrorIs(t, err, ErrNoCards)

	doc, err = htmldom.ParseString(`<div id="og-grid"><div class="card"></div></div>`)
	require.NoError(t, err)
	_, err = Bind(doc.Root(), DefaultConfig(), &frames{}, hashstate.NewMemoryLocation(""), nil)
	assert.ErrorIs(t, err, ErrMissingElement)

	doc, err = htmldom.ParseString(`<div class="og"></div>`)
	require.NoError(t, err)
	_, err = Bind(doc.Root(), DefaultConfig(), &frames{}, hashstate.NewMemoryLocation(""), nil)
	assert.ErrorIs(t, err, ErrMissingElement)
}

func TestGridOutsideRoot(t *testing.T) {
	doc, err := htmldom.ParseString(`<div class="og"></div><div id="og-grid"><div class="card" id="x"></div></div>`)
	require.NoError(t, err)
	w, err := Bind(doc.Root(), DefaultConfig(), &frames{}, hashstate.NewMemoryLocation(""), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Registry().Len())
}

func TestStartRendersInitialState(t *testing.T) {
	h := newHarness(t, catalogPage, "")
	st := h.w.Start()

	assert.Equal(t, selection.State{Tab: "all", Filter: "*"}, st)
	assert.Equal(t, "#tab=all&filter=*", h.loc.Hash())
	assert.Equal(t, []string{"b", "a", "c"}, h.shown())

	v, _ := h.tab("all").Attr("aria-selected")
	assert.Equal(t, "true", v)
	v, _ = h.tab("rare").Attr("aria-selected")
	assert.Equal(t, "false", v)

	assert.False(t, h.byID("sel-rare").HasClass("is-active"))
	assert.Equal(t, "none", h.byID("sel-rare").Style("display"))
	assert.True(t, h.block("all").HasClass("is-active"))
	assert.False(t, h.block("rare").HasClass("is-active"))

	// Staged until the frame runs.
	assert.Equal(t, "0", h.byID("a").Style("opacity"))
	h.frames.flush()
	assert.Equal(t, "1", h.byID("a").Style("opacity"))
	assert.Equal(t, "40ms", h.byID("a").Style("transition-delay"))
	assert.Equal(t, "80ms", h.byID("c").Style("transition-delay"))
}

func TestEndToEndThroughClicks(t *testing.T) {
	h := newHarness(t, catalogPage, "")
	h.w.Start()
	h.frames.flush()

	// Click the rarity tab button.
	require.True(t, h.w.HandleClick(h.tab("rare")))
	assert.Equal(t, []string{"a", "b", "c"}, h.shown())
	assert.Equal(t, []string{"a", "b", "c"}, labels(h.w.Visible()))
	assert.True(t, h.byID("sel-rare").HasClass("is-active"))
	assert.Equal(t, "", h.byID("sel-rare").Style("display"))
	assert.True(t, h.chip("*").HasClass("is-active"))
	assert.True(t, h.block("rare").HasClass("is-active"))
	assert.False(t, h.block("all").HasClass("is-active"))
	assert.Equal(t, "#tab=rare&filter=*", h.loc.Hash())

	// Click on the <b> inside the ★5 chip.
	star5 := h.chip("5").Children()[0]
	require.True(t, h.w.HandleClick(star5))
	assert.Equal(t, []string{"a", "b"}, h.shown())
	assert.Equal(t, "none", h.byID("c").Style("display"))
	assert.True(t, h.chip("5").HasClass("is-active"))
	assert.False(t, h.chip("*").HasClass("is-active"))
	assert.Equal(t, "#tab=rare&filter=5", h.loc.Hash())

	// Back to all restores the original order.
	require.True(t, h.w.HandleClick(h.tab("all")))
	assert.Equal(t, []string{"b", "a", "c"}, h.shown())
	h.frames.flush()
	assert.Equal(t, "0ms", h.byID("b").Style("transition-delay"))
	assert.Equal(t, 4, h.loc.Len())
}

func TestTabClickOnNestedSpan(t *testing.T) {
	h := newHarness(t, catalogPage, "")
	h.w.Start()

	span := h.tab("meteor").Children()[0]
	require.True(t, h.w.HandleClick(span))
	assert.Equal(t, "meteor", h.w.State().Tab)
	assert.Equal(t, []string{"b", "c"}, h.shown())
}

func TestClicksOutsideControls(t *testing.T) {
	h := newHarness(t, catalogPage, "")
	h.w.Start()
	pushes := h.loc.Pushes()

	assert.False(t, h.w.HandleClick(h.byID("a")), "card is not a control")
	assert.False(t, h.w.HandleClick(h.byID("chips-rare")), "chip container itself")

	broken := dom.FindAll(h.doc.Root(), dom.ByClass("tab-btn"))[4]
	assert.False(t, h.w.HandleClick(broken), "tab without data-tab")

	// Chip clicks outside the rarity tab hit a control but change nothing.
	assert.True(t, h.w.HandleClick(h.chip("5")))
	assert.Equal(t, "all", h.w.State().Tab)
	assert.Equal(t, pushes, h.loc.Pushes())
}

func TestResolveClickOnlyReads(t *testing.T) {
	h := newHarness(t, catalogPage, "")
	h.w.Start()
	pushes := h.loc.Pushes()

	c, ok := h.w.ResolveClick(h.tab("meteor").Children()[0])
	require.True(t, ok)
	assert.Equal(t, Click{Kind: TabClick, Value: "meteor"}, c)
	assert.Equal(t, "all", h.w.State().Tab, "resolving does not switch")
	assert.Equal(t, pushes, h.loc.Pushes())

	chip, ok := h.w.ResolveClick(h.chip("5").Children()[0])
	require.True(t, ok)
	assert.Equal(t, Click{Kind: ChipClick, Value: "5"}, chip)

	_, ok = h.w.ResolveClick(h.byID("a"))
	assert.False(t, ok)

	assert.True(t, h.w.Dispatch(c))
	assert.Equal(t, "meteor", h.w.State().Tab)
	assert.Equal(t, pushes+1, h.loc.Pushes())
	assert.False(t, h.w.Dispatch(c), "same tab again")
	assert.False(t, h.w.Dispatch(Click{}))
}

func TestSameTabClickLeavesDOMAlone(t *testing.T) {
	h := newHarness(t, catalogPage, "#tab=hq&filter=*")
	h.w.Start()
	h.frames.flush()

	var before []string
	for _, c := range h.byID("og-grid").Children() {
		before = append(before, c.(*htmldom.Element).OuterHTML())
	}
	pushes := h.loc.Pushes()

	h.w.HandleClick(h.tab("hq"))
	assert.Empty(t, h.frames.fns, "no reveal scheduled")
	assert.Equal(t, pushes, h.loc.Pushes())
	for i, c := range h.byID("og-grid").Children() {
		assert.Equal(t, before[i], c.(*htmldom.Element).OuterHTML())
	}
}

func TestDeepLinkAndBackNavigation(t *testing.T) {
	h := newHarness(t, catalogPage, "#tab=rare&filter=2")
	h.w.Start()
	assert.Equal(t, []string{"c"}, h.shown())
	assert.True(t, h.chip("2").HasClass("is-active"))

	h.w.ClickTab("meteor")
	require.True(t, h.loc.Back())
	require.True(t, h.w.HashChanged())
	assert.Equal(t, selection.State{Tab: "rare", Filter: "2"}, h.w.State())
	assert.Equal(t, []string{"c"}, h.shown())
	assert.True(t, h.chip("2").HasClass("is-active"))
	assert.True(t, h.byID("sel-rare").HasClass("is-active"))
}

func TestNavigateProgrammatically(t *testing.T) {
	h := newHarness(t, catalogPage, "")
	h.w.Start()

	require.True(t, h.w.Navigate(hashstate.Fragment{Tab: "rare", Filter: "5"}))
	assert.Equal(t, []string{"a", "b"}, h.shown())
	assert.Equal(t, "#tab=rare&filter=5", h.loc.Hash())
}

func TestStaleFrameSkipsHiddenCards(t *testing.T) {
	h := newHarness(t, catalogPage, "")
	h.w.Start()

	// Second change lands before the first frame fires.
	h.w.ClickTab("hq")
	h.frames.flush()

	assert.Equal(t, "none", h.byID("b").Style("display"))
	assert.Equal(t, "0", h.byID("b").Style("opacity"))
	assert.Equal(t, "1", h.byID("a").Style("opacity"))
	assert.Equal(t, "0ms", h.byID("a").Style("transition-delay"))
}
