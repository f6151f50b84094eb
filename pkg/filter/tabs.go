// Package filter decides which cards a tab shows and in what order.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the predicate a tab applies.
type Kind int

const (
	KindAll Kind = iota
	KindGroup
	KindFlag
	KindRarity
)

var kindNames = map[Kind]string{
	KindAll:    "all",
	KindGroup:  "group",
	KindFlag:   "flag",
	KindRarity: "rarity",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a config name to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return KindAll, fmt.Errorf("unknown tab kind %q", s)
}

func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// AnyRarity is the rarity token meaning "no rarity restriction".
const AnyRarity = "*"

// TabDefinition binds a tab id to its predicate.
type TabDefinition struct {
	ID    string `json:"id" yaml:"id"`
	Kind  Kind   `json:"kind" yaml:"kind"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// ErrInvalidTabs reports an unusable tab configuration.
var ErrInvalidTabs = errors.New("invalid tab configuration")

// TabSet is the fixed set of known tabs.
type TabSet struct {
	tabs     []TabDefinition
	byID     map[string]int
	fallback string
	rarity   string
}

// NewTabSet validates defs: ids are unique and non-empty, exactly one tab
// has KindAll (the fallback for unknown ids), at most one has KindRarity,
// and group/flag tabs carry a value.
func NewTabSet(defs []TabDefinition) (*TabSet, error) {
	ts := &TabSet{
		tabs: make([]TabDefinition, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	copy(ts.tabs, defs)

	for i, d := range ts.tabs {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: tab %d has no id", ErrInvalidTabs, i)
		}
		if _, dup := ts.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate tab id %q", ErrInvalidTabs, d.ID)
		}
		ts.byID[d.ID] = i

		switch d.Kind {
		case KindAll:
			if ts.fallback != "" {
				return nil, fmt.Errorf("%w: tabs %q and %q are both kind all", ErrInvalidTabs, ts.fallback, d.ID)
			}
			ts.fallback = d.ID
		case KindRarity:
			if ts.rarity != "" {
				return nil, fmt.Errorf("%w: tabs %q and %q are both kind rarity", ErrInvalidTabs, ts.rarity, d.ID)
			}
			ts.rarity = d.ID
		case KindGroup, KindFlag:
			if d.Value == "" {
				return nil, fmt.Errorf("%w: %s tab %q needs a value", ErrInvalidTabs, d.Kind, d.ID)
			}
		default:
			return nil, fmt.Errorf("%w: tab %q has %s", ErrInvalidTabs, d.ID, d.Kind)
		}
	}
	if ts.fallback == "" {
		return nil, fmt.Errorf("%w: no tab of kind all", ErrInvalidTabs)
	}
	return ts, nil
}

// DefaultTabs is the catalog's stock tab set.
func DefaultTabs() []TabDefinition {
	return []TabDefinition{
		{ID: "all", Kind: KindAll},
		{ID: "inquartz", Kind: KindGroup, Value: "inquartz"},
		{ID: "meteor", Kind: KindGroup, Value: "meteor"},
		{ID: "rare", Kind: KindRarity},
		{ID: "rarecolor", Kind: KindGroup, Value: "rarecolor"},
		{ID: "hq", Kind: KindFlag, Value: "hq"},
		{ID: "star", Kind: KindFlag, Value: "star"},
		{ID: "uv", Kind: KindFlag, Value: "uv"},
	}
}

// Default returns the TabSet for DefaultTabs.
func Default() *TabSet {
	ts, err := NewTabSet(DefaultTabs())
	if err != nil {
		panic(err)
	}
	return ts
}

// Known reports whether id names a configured tab.
func (ts *TabSet) Known(id string) bool {
	_, ok := ts.byID[id]
	return ok
}

// Resolve returns the definition for id. Unknown ids resolve to the
// fallback tab, so callers always get a usable predicate.
func (ts *TabSet) Resolve(id string) TabDefinition {
	if i, ok := ts.byID[id]; ok {
		return ts.tabs[i]
	}
	return ts.tabs[ts.byID[ts.fallback]]
}

// Fallback is the id of the KindAll tab.
func (ts *TabSet) Fallback() string { return ts.fallback }

// RarityTab is the id of the KindRarity tab, or "" when there is none.
func (ts *TabSet) RarityTab() string { return ts.rarity }

// IsRarity reports whether id is the rarity tab.
func (ts *TabSet) IsRarity(id string) bool {
	return ts.rarity != "" && id == ts.rarity
}

// Tabs returns the definitions in configuration order.
func (ts *TabSet) Tabs() []TabDefinition {
	out := make([]TabDefinition, len(ts.tabs))
	copy(out, ts.tabs)
	return out
}
