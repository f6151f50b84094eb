// Package selection owns the catalog's {tab, filter} state and applies
// every transition: tab clicks, rarity chip clicks and address changes.
//
// All transitions go through one apply step, which recomputes the visible
// cards, updates the indicators and, when the transition asks for it,
// writes the address. Each of those happens exactly once per transition.
package selection

import (
	"errors"

	"go.uber.org/zap"

	"github.com/kittclouds/rarestones/pkg/catalog"
	"github.com/kittclouds/rarestones/pkg/filter"
	"github.com/kittclouds/rarestones/pkg/hashstate"
)

// ErrNoCards is returned when there is nothing to filter.
var ErrNoCards = errors.New("no cards found")

// State is the current selection. Filter only means something on the
// rarity tab; on every other tab it is "*".
type State struct {
	Tab    string `json:"tab" yaml:"tab"`
	Filter string `json:"filter" yaml:"filter"`
}

func (s State) fragment() hashstate.Fragment {
	return hashstate.Fragment{Tab: s.Tab, Filter: s.Filter}
}

// View receives the machine's output.
type View interface {
	// Render shows exactly the given cards, in order, and hides the rest.
	Render(ordered []catalog.Card)
	SelectTab(id string)
	ShowRaritySelector(show bool)
	SelectChip(token string)
	SelectExplain(id string)
}

// Normalize turns a decoded fragment into a valid State. An unknown tab
// falls back to the all tab with "*"; the rarity tab keeps the given
// filter (an empty one becomes "*"); every other tab gets "*".
func Normalize(tabs *filter.TabSet, f hashstate.Fragment) State {
	if !tabs.Known(f.Tab) {
		return State{Tab: tabs.Fallback(), Filter: filter.AnyRarity}
	}
	if tabs.IsRarity(f.Tab) && f.Filter != "" {
		return State{Tab: f.Tab, Filter: f.Filter}
	}
	return State{Tab: f.Tab, Filter: filter.AnyRarity}
}

type write int

const (
	writeNone write = iota
	writeReplace
	writePush
)

// Machine is the selection state machine. It is not safe for concurrent
// use; the host calls it from a single event loop.
type Machine struct {
	tabs    *filter.TabSet
	orderer *filter.Orderer
	cards   []catalog.Card
	sync    *hashstate.Synchronizer
	view    View
	logger  *zap.Logger

	state   State
	started bool
}

// New creates a Machine over the registry. It fails with ErrNoCards when
// the registry is empty, so no handlers get wired to an empty catalog.
func New(reg *catalog.Registry, tabs *filter.TabSet, orderer *filter.Orderer, sync *hashstate.Synchronizer, view View, logger *zap.Logger) (*Machine, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, ErrNoCards
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		tabs:    tabs,
		orderer: orderer,
		cards:   reg.Cards(),
		sync:    sync,
		view:    view,
		logger:  logger,
	}, nil
}

// State returns the current selection.
func (m *Machine) State() State { return m.state }

// Start derives the initial state from the address the same way a hash
// change does. When the address has no fragment at all, the resulting
// state is written back with a history replace, so the first Back press
// leaves the page instead of landing on its own default.
func (m *Machine) Start() State {
	empty := m.sync.Empty()
	next := m.normalize(m.sync.Read())
	m.started = true

	w := writeNone
	if empty {
		w = writeReplace
	}
	m.apply(next, w)
	m.logger.Info("catalog ready",
		zap.Int("cards", len(m.cards)),
		zap.String("tab", next.Tab),
		zap.String("filter", next.Filter))
	return next
}

// ClickTab switches to tab id. Clicking the active tab does nothing.
// Entering the rarity tab always resets the filter to "*".
func (m *Machine) ClickTab(id string) bool {
	if !m.started {
		return false
	}
	next := m.normalize(hashstate.Fragment{Tab: id, Filter: filter.AnyRarity})
	if next.Tab == m.state.Tab {
		return false
	}
	m.apply(next, writePush)
	return true
}

// ClickChip sets the rarity filter. Chips are inert outside the rarity
// tab, which also covers stale handlers firing after a tab switch.
func (m *Machine) ClickChip(token string) bool {
	if !m.started || !m.tabs.IsRarity(m.state.Tab) {
		return false
	}
	if token == "" {
		token = filter.AnyRarity
	}
	m.apply(State{Tab: m.state.Tab, Filter: token}, writePush)
	return true
}

// HashChanged re-reads the address after external navigation. The
// rarity tab accepts the filter from the address verbatim, so a deep
// link to one rarity works. The address is never written back. A change
// that lands on the current state, such as the event raised by the
// machine's own write, is ignored.
func (m *Machine) HashChanged() bool {
	if !m.started {
		return false
	}
	next := m.normalize(m.sync.Read())
	if next == m.state {
		return false
	}
	m.apply(next, writeNone)
	return true
}

// Navigate writes f as a navigating address change and then applies it
// as if the browser had reported the hash change.
func (m *Machine) Navigate(f hashstate.Fragment) bool {
	if !m.started {
		return false
	}
	m.sync.Write(f, false)
	return m.HashChanged()
}

func (m *Machine) normalize(f hashstate.Fragment) State {
	s := Normalize(m.tabs, f)
	if s.Tab != f.Tab {
		m.logger.Warn("unknown tab, falling back",
			zap.String("tab", f.Tab),
			zap.String("fallback", s.Tab))
	}
	return s
}

func (m *Machine) apply(next State, w write) {
	m.state = next

	def := m.tabs.Resolve(next.Tab)
	visible := filter.Visible(m.cards, def, next.Filter)
	ordered := m.orderer.Order(visible, def, next.Filter)
	m.view.Render(ordered)

	rarity := m.tabs.IsRarity(next.Tab)
	m.view.SelectTab(next.Tab)
	m.view.ShowRaritySelector(rarity)
	if rarity {
		m.view.SelectChip(next.Filter)
	}
	m.view.SelectExplain(next.Tab)

	switch w {
	case writePush:
		m.sync.Write(next.fragment(), false)
	case writeReplace:
		m.sync.Write(next.fragment(), true)
	}

	m.logger.Debug("selection applied",
		zap.String("tab", next.Tab),
		zap.String("filter", next.Filter),
		zap.Int("visible", len(ordered)))
}
