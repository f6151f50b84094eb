// Package widget binds a catalog page to the selection machine: it finds
// the grid, tabs, rarity chips and explanatory blocks, and renders the
// machine's output onto them.
package widget

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/kittclouds/rarestones/pkg/catalog"
	"github.com/kittclouds/rarestones/pkg/dom"
	"github.com/kittclouds/rarestones/pkg/filter"
	"github.com/kittclouds/rarestones/pkg/hashstate"
	"github.com/kittclouds/rarestones/pkg/reveal"
	"github.com/kittclouds/rarestones/pkg/selection"
)

var (
	// ErrNoCards means the grid holds no cards; nothing gets wired.
	ErrNoCards = selection.ErrNoCards
	// ErrMissingElement means the root or the grid is not on the page.
	ErrMissingElement = errors.New("required element not found")
)

const ariaSelected = "aria-selected"

// Widget is one bound catalog.
type Widget struct {
	cfg    Config
	logger *zap.Logger

	root     dom.Element
	grid     dom.Element
	selector dom.Element
	tabs     []dom.Element
	chips    []dom.Element
	blocks   []dom.Element

	registry *catalog.Registry
	animator *reveal.Animator
	machine  *selection.Machine
	visible  []catalog.Card
}

// FindParts locates the widget root and the card grid below page. The grid
// is looked up inside the root first and then anywhere on the page.
func FindParts(page dom.Element, sel Selectors) (root, grid dom.Element, err error) {
	root = page
	if !page.HasClass(sel.Root) {
		root = dom.Find(page, dom.ByClass(sel.Root))
	}
	if root == nil {
		return nil, nil, fmt.Errorf("%w: root .%s", ErrMissingElement, sel.Root)
	}
	grid = dom.Find(root, dom.ByID(sel.Grid))
	if grid == nil {
		grid = dom.Find(page, dom.ByID(sel.Grid))
	}
	if grid == nil {
		return nil, nil, fmt.Errorf("%w: grid #%s", ErrMissingElement, sel.Grid)
	}
	return root, grid, nil
}

// Bind reads the cards already in the grid and wires the parts of page.
// The cards must be in place: Bind returns ErrNoCards for an empty grid.
func Bind(page dom.Element, cfg Config, sched reveal.Scheduler, loc hashstate.Location, logger *zap.Logger) (*Widget, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tabSet, err := cfg.TabSet()
	if err != nil {
		return nil, err
	}
	root, grid, err := FindParts(page, cfg.Selectors)
	if err != nil {
		return nil, err
	}

	sel := cfg.Selectors
	w := &Widget{
		cfg:      cfg,
		logger:   logger,
		root:     root,
		grid:     grid,
		registry: catalog.Build(grid, sel.Card, cfg.Attributes.Attributes),
		tabs:     dom.FindAll(root, dom.All(dom.ByClass(sel.Tab), dom.ByAttr("role", "tab"))),
		selector: dom.Find(root, dom.ByID(sel.RaritySelector)),
	}
	if w.registry.Len() == 0 {
		logger.Warn("no cards in grid, catalog not started", zap.String("grid", sel.Grid))
		return nil, ErrNoCards
	}
	w.chips = dom.FindAll(w.selector, dom.ByClass(sel.Chip))
	for _, box := range dom.FindAll(root, dom.ByClass(sel.Explain)) {
		w.blocks = append(w.blocks, dom.FindAll(box, dom.ByClass(sel.ExplainBlock))...)
	}
	w.animator = reveal.New(grid, sched, cfg.Animation)

	w.machine, err = selection.New(w.registry, tabSet, cfg.Orderer(), hashstate.NewSynchronizer(loc), w, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("widget bound",
		zap.Int("cards", w.registry.Len()),
		zap.Int("tabs", len(w.tabs)),
		zap.Int("chips", len(w.chips)),
		zap.Int("explainBlocks", len(w.blocks)))
	return w, nil
}

// Start applies the initial state from the address.
func (w *Widget) Start() selection.State { return w.machine.Start() }

// ClickTab forwards a tab click.
func (w *Widget) ClickTab(id string) bool { return w.machine.ClickTab(id) }

// ClickChip forwards a rarity chip click.
func (w *Widget) ClickChip(token string) bool { return w.machine.ClickChip(token) }

// HashChanged forwards an address change.
func (w *Widget) HashChanged() bool { return w.machine.HashChanged() }

// Navigate writes f into the address and applies it.
func (w *Widget) Navigate(f hashstate.Fragment) bool { return w.machine.Navigate(f) }

// State is the current selection.
func (w *Widget) State() selection.State { return w.machine.State() }

// Visible returns the cards currently shown, in display order.
func (w *Widget) Visible() []catalog.Card {
	out := make([]catalog.Card, len(w.visible))
	copy(out, w.visible)
	return out
}

// Registry returns the bound cards.
func (w *Widget) Registry() *catalog.Registry { return w.registry }

// Root returns the widget root element.
func (w *Widget) Root() dom.Element { return w.root }

// ClickKind tells which control a click landed on.
type ClickKind int

const (
	TabClick ClickKind = iota + 1
	ChipClick
)

// Click is a click resolved to a control: the tab id or the chip token.
type Click struct {
	Kind  ClickKind
	Value string
}

// ResolveClick maps target to the tab or chip it landed in. It only reads
// the page, so a host can call it inside the event callback and cancel the
// default action when ok is true, then Dispatch the click later.
func (w *Widget) ResolveClick(target dom.Element) (c Click, ok bool) {
	sel := w.cfg.Selectors
	if tab := dom.Closest(target, w.isTab, nil); tab != nil && dom.Contains(w.root, tab) {
		id, has := tab.Attr(w.cfg.Attributes.Tab)
		if !has || id == "" {
			return Click{}, false
		}
		return Click{Kind: TabClick, Value: id}, true
	}
	if w.selector == nil || !dom.Contains(w.selector, target) {
		return Click{}, false
	}
	chip := dom.Closest(target, dom.ByClass(sel.Chip), w.selector)
	if chip == nil {
		return Click{}, false
	}
	return Click{Kind: ChipClick, Value: w.chipToken(chip)}, true
}

// Dispatch applies a resolved click and reports whether the state changed.
func (w *Widget) Dispatch(c Click) bool {
	switch c.Kind {
	case TabClick:
		return w.machine.ClickTab(c.Value)
	case ChipClick:
		return w.machine.ClickChip(c.Value)
	}
	return false
}

// HandleClick resolves and dispatches in one step. It reports whether
// target belonged to one of the widget's controls.
func (w *Widget) HandleClick(target dom.Element) bool {
	c, ok := w.ResolveClick(target)
	if !ok {
		return false
	}
	w.Dispatch(c)
	return true
}

func (w *Widget) isTab(e dom.Element) bool {
	if !e.HasClass(w.cfg.Selectors.Tab) {
		return false
	}
	role, _ := e.Attr("role")
	return role == "tab"
}

func (w *Widget) chipToken(chip dom.Element) string {
	if v, ok := chip.Attr(w.cfg.Attributes.Filter); ok && v != "" {
		return v
	}
	return filter.AnyRarity
}

// Render implements selection.View.
func (w *Widget) Render(ordered []catalog.Card) {
	w.visible = append(w.visible[:0], ordered...)
	w.animator.Reveal(w.registry.Cards(), ordered)
}

// SelectTab implements selection.View.
func (w *Widget) SelectTab(id string) {
	for _, t := range w.tabs {
		v, _ := t.Attr(w.cfg.Attributes.Tab)
		t.SetAttr(ariaSelected, strconv.FormatBool(v == id))
	}
}

// ShowRaritySelector implements selection.View.
func (w *Widget) ShowRaritySelector(show bool) {
	if w.selector == nil {
		return
	}
	w.selector.ToggleClass(w.cfg.Selectors.Active, show)
	if show {
		w.selector.SetStyle(reveal.PropDisplay, "")
	} else {
		w.selector.SetStyle(reveal.PropDisplay, "none")
	}
}

// SelectChip implements selection.View.
func (w *Widget) SelectChip(token string) {
	for _, c := range w.chips {
		c.ToggleClass(w.cfg.Selectors.Active, w.chipToken(c) == token)
	}
}

// SelectExplain implements selection.View.
func (w *Widget) SelectExplain(id string) {
	for _, b := range w.blocks {
		v, _ := b.Attr(w.cfg.Attributes.Tab)
		b.ToggleClass(w.cfg.Selectors.Active, v == id)
	}
}

var _ selection.View = (*Widget)(nil)
