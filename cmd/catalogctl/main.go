// Command catalogctl runs the catalog engine against static HTML pages:
// it reports the visible cards for an address fragment, renders the page
// as the browser would leave it, and encodes or decodes fragments.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kittclouds/rarestones/internal/loader"
	"github.com/kittclouds/rarestones/pkg/hashstate"
	"github.com/kittclouds/rarestones/pkg/htmldom"
	"github.com/kittclouds/rarestones/pkg/reveal"
	"github.com/kittclouds/rarestones/pkg/widget"
)

var version = "0.3.0"

// options are the persistent flags shared by every subcommand.
type options struct {
	output  string
	config  string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect rare stone catalog pages offline",
		Long: `catalogctl binds the catalog filter engine to a static HTML page
and reports what a visitor would see for a given address fragment.

Cards referenced through data-cards-src are read relative to the page.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "YAML file overriding the stock configuration")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log engine activity to stderr")

	rootCmd.AddCommand(orderCmd(opts))
	rootCmd.AddCommand(renderCmd(opts))
	rootCmd.AddCommand(tabsCmd(opts))
	rootCmd.AddCommand(hashCmd(opts))

	return rootCmd
}

func (o *options) logger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !o.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// loadConfig reads the stock configuration, overlaid with --config.
func (o *options) loadConfig(fsys *osfs.FS) (widget.Config, error) {
	if o.config == "" {
		return widget.DefaultConfig(), nil
	}
	data, _, err := readHostFile(fsys, o.config)
	if err != nil {
		return widget.Config{}, err
	}
	return widget.LoadConfig(data)
}

// readHostFile reads a host path through fsys and returns the file's
// directory in fsys path form.
func readHostFile(fsys *osfs.FS, name string) ([]byte, string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, "", err
	}
	p, err := fsys.FromOSPath(abs)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", name, err)
	}
	data, err := hackpadfs.ReadFile(fsys, p)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", name, err)
	}
	return data, path.Dir(p), nil
}

// session is one page bound to the engine.
type session struct {
	doc      *htmldom.Document
	widget   *widget.Widget
	location *hashstate.MemoryLocation
}

// openPage parses page, loads external cards, and starts the widget at
// fragment. Reveal frames run as soon as they are requested.
func openPage(ctx context.Context, opts *options, page, fragment string) (*session, error) {
	fsys := osfs.NewFS()
	cfg, err := opts.loadConfig(fsys)
	if err != nil {
		return nil, err
	}
	logger := opts.logger()

	data, dir, err := readHostFile(fsys, page)
	if err != nil {
		return nil, err
	}
	doc, err := htmldom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", page, err)
	}
	_, grid, err := widget.FindParts(doc.Root(), cfg.Selectors)
	if err != nil {
		return nil, err
	}
	l := loader.New(&loader.FSSource{FS: fsys, Dir: dir}, cfg.Attributes.CardsSrc, logger)
	if _, err := l.Load(ctx, grid); err != nil {
		return nil, err
	}

	loc := hashstate.NewMemoryLocation(fragment)
	immediate := reveal.SchedulerFunc(func(fn func()) { fn() })
	w, err := widget.Bind(doc.Root(), cfg, immediate, loc, logger)
	if err != nil {
		return nil, err
	}
	w.Start()
	return &session{doc: doc, widget: w, location: loc}, nil
}
