package widget

import (
	_ "embed"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/kittclouds/rarestones/pkg/catalog"
	"github.com/kittclouds/rarestones/pkg/filter"
	"github.com/kittclouds/rarestones/pkg/reveal"
)

//go:embed default.yaml
var defaultYAML []byte

// Selectors locate the widget's parts. Root, card, tab, chip, explain and
// explainBlock are class names; grid and raritySelector are ids.
type Selectors struct {
	Root           string `yaml:"root"`
	Grid           string `yaml:"grid"`
	Card           string `yaml:"card"`
	Tab            string `yaml:"tab"`
	RaritySelector string `yaml:"raritySelector"`
	Chip           string `yaml:"chip"`
	Explain        string `yaml:"explain"`
	ExplainBlock   string `yaml:"explainBlock"`
	Active         string `yaml:"active"`
}

// Attributes names the data attributes read from the page.
type Attributes struct {
	catalog.Attributes `yaml:",inline"`

	Tab      string `yaml:"tab"`
	Filter   string `yaml:"filter"`
	CardsSrc string `yaml:"cardsSrc"`
}

// Config is the full widget configuration. OfflineCache lets the browser
// build serve the last good card markup when the card source fails; it is
// off by default, and then a load failure leaves the catalog unstarted.
type Config struct {
	Selectors    Selectors              `yaml:"selectors"`
	Attributes   Attributes             `yaml:"attributes"`
	Animation    reveal.Style           `yaml:"animation"`
	Locale       string                 `yaml:"locale"`
	OfflineCache bool                   `yaml:"offlineCache"`
	Tabs         []filter.TabDefinition `yaml:"tabs"`
}

// DefaultConfig returns the embedded stock configuration.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("widget: embedded config: %v", err))
	}
	return cfg
}

// LoadConfig overlays data on the default configuration. Keys missing from
// data keep their default; a tabs list replaces the default list whole.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the tab set and the locale.
func (c Config) Validate() error {
	if _, err := filter.NewTabSet(c.Tabs); err != nil {
		return err
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("config locale %q: %w", c.Locale, err)
	}
	if c.Selectors.Grid == "" || c.Selectors.Card == "" {
		return fmt.Errorf("config: grid and card selectors are required")
	}
	if c.Animation.Step < 0 {
		return fmt.Errorf("config: negative animation step %s", c.Animation.Step)
	}
	return nil
}

// TabSet builds the validated tab set.
func (c Config) TabSet() (*filter.TabSet, error) {
	return filter.NewTabSet(c.Tabs)
}

// Orderer builds the orderer for the configured locale. An unparsable
// locale falls back to the root collation.
func (c Config) Orderer() *filter.Orderer {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		tag = language.Und
	}
	return filter.NewOrderer(tag)
}
