package main

import (
	"fmt"
	"strings"

	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	"github.com/kittclouds/rarestones/pkg/catalog"
	"github.com/kittclouds/rarestones/pkg/filter"
	"github.com/kittclouds/rarestones/pkg/hashstate"
	"github.com/kittclouds/rarestones/pkg/selection"
)

// OrderResult is the visible card list for one address.
type OrderResult struct {
	Fragment string          `json:"fragment" yaml:"fragment"`
	State    selection.State `json:"state" yaml:"state"`
	Total    int             `json:"total" yaml:"total"`
	Cards    []catalog.Card  `json:"cards" yaml:"cards"`
}

// TabsResult lists the configured tabs.
type TabsResult struct {
	Fallback string                 `json:"fallback" yaml:"fallback"`
	Rarity   string                 `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Tabs     []filter.TabDefinition `json:"tabs" yaml:"tabs"`
}

// HashResult is a fragment together with the state it resolves to.
type HashResult struct {
	Fragment string             `json:"fragment" yaml:"fragment"`
	Parsed   hashstate.Fragment `json:"parsed" yaml:"parsed"`
	State    selection.State    `json:"state" yaml:"state"`
}

func orderCmd(opts *options) *cobra.Command {
	var fragment string

	cmd := &cobra.Command{
		Use:   "order PAGE",
		Short: "List the cards visible for an address fragment",
		Long: `Binds the catalog on PAGE, applies the fragment, and lists the
visible cards in display order.

Examples:
  catalogctl order site/index.html
  catalogctl order site/index.html --hash '#tab=rare&filter=5' -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openPage(cmd.Context(), opts, args[0], fragment)
			if err != nil {
				return err
			}
			result := OrderResult{
				Fragment: s.location.Hash(),
				State:    s.widget.State(),
				Total:    s.widget.Registry().Len(),
				Cards:    s.widget.Visible(),
			}
			return outputResult(cmd.OutOrStdout(), result, opts.output)
		},
	}

	cmd.Flags().StringVar(&fragment, "hash", "", "Address fragment, e.g. '#tab=rare&filter=*'")
	return cmd
}

func renderCmd(opts *options) *cobra.Command {
	var fragment string

	cmd := &cobra.Command{
		Use:   "render PAGE",
		Short: "Print the page as the engine leaves it",
		Long: `Binds the catalog on PAGE, applies the fragment, runs the reveal
animation to completion, and prints the resulting HTML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openPage(cmd.Context(), opts, args[0], fragment)
			if err != nil {
				return err
			}
			return s.doc.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&fragment, "hash", "", "Address fragment, e.g. '#tab=meteor'")
	return cmd
}

func tabsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "List the configured tabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := configTabs(opts)
			if err != nil {
				return err
			}
			result := TabsResult{
				Fallback: ts.Fallback(),
				Rarity:   ts.RarityTab(),
				Tabs:     ts.Tabs(),
			}
			return outputResult(cmd.OutOrStdout(), result, opts.output)
		},
	}
}

func hashCmd(opts *options) *cobra.Command {
	var parse bool

	cmd := &cobra.Command{
		Use:   "hash TAB [FILTER] | hash --parse FRAGMENT",
		Short: "Encode or decode an address fragment",
		Long: `Encodes TAB and FILTER into the fragment the catalog writes, or with
--parse decodes FRAGMENT. Either way the state the catalog would settle on
is shown alongside.

Examples:
  catalogctl hash rare 5
  catalogctl hash --parse '#tab=bogus&filter=3'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := configTabs(opts)
			if err != nil {
				return err
			}
			var f hashstate.Fragment
			if parse {
				if len(args) != 1 {
					return fmt.Errorf("--parse takes exactly one fragment")
				}
				f = hashstate.Parse(args[0])
			} else {
				f = hashstate.Fragment{Tab: args[0], Filter: hashstate.DefaultFilter}
				if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
					f.Filter = args[1]
				}
			}
			result := HashResult{
				Fragment: hashstate.Format(f),
				Parsed:   f,
				State:    selection.Normalize(ts, f),
			}
			return outputResult(cmd.OutOrStdout(), result, opts.output)
		},
	}

	cmd.Flags().BoolVar(&parse, "parse", false, "Decode a fragment instead of encoding one")
	return cmd
}

func configTabs(opts *options) (*filter.TabSet, error) {
	cfg, err := opts.loadConfig(osfs.NewFS())
	if err != nil {
		return nil, err
	}
	return cfg.TabSet()
}
