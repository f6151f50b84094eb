//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/indexeddb"
	"go.uber.org/zap"

	"github.com/kittclouds/rarestones/internal/jsdom"
	"github.com/kittclouds/rarestones/internal/loader"
	"github.com/kittclouds/rarestones/pkg/hashstate"
	"github.com/kittclouds/rarestones/pkg/widget"
)

// Version info
const Version = "0.3.0"

// loadTimeout bounds the external card markup fetch.
const loadTimeout = 30 * time.Second

// Global state. Everything that touches the widget runs on the main
// goroutine, fed through events.
var (
	logger  *zap.Logger
	events  = make(chan func(), 64)
	current *widget.Widget
	unbind  []func()
)

func main() {
	logger = newLogger()

	// Register exports
	js.Global().Set("RareStones", js.ValueOf(map[string]interface{}{
		"version": js.FuncOf(getVersion),
		"init":    js.FuncOf(initialize),
		"state":   js.FuncOf(getState),
		"select":  js.FuncOf(selectState),
	}))
	logger.Info("WASM ready", zap.String("version", Version))

	if jsdom.Ready() {
		go boot(nil)
	} else {
		var stop func()
		stop = jsdom.Listen(js.Global().Get("document"), "DOMContentLoaded", func(js.Value) {
			stop()
			go boot(nil)
		})
	}

	for fn := range events {
		fn()
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		println("[RareStones] logger:", err.Error())
		return zap.NewNop()
	}
	return l.Named("rarestones")
}

func enqueue(fn func()) {
	events <- fn
}

// boot loads the card markup (this blocks on the network, so it runs off
// the main goroutine) and then binds the widget on the main goroutine.
func boot(configYAML []byte) {
	cfg, err := widget.LoadConfig(configYAML)
	if err != nil {
		logger.Error("invalid config", zap.Error(err))
		return
	}
	page := jsdom.Document()
	_, grid, err := widget.FindParts(page, cfg.Selectors)
	if err != nil {
		logger.Warn("catalog markup not on this page", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	var src loader.Source = &loader.HTTPSource{Base: jsdom.BaseURL()}
	if cfg.OfflineCache {
		if cache := openCache(ctx); cache != nil {
			src = &loader.CachedSource{Source: src, Cache: cache, Logger: logger}
		}
	}
	l := loader.New(src, cfg.Attributes.CardsSrc, logger)
	if _, err := l.Load(ctx, grid); err != nil {
		return
	}

	enqueue(func() { start(cfg) })
}

// openCache opens the IndexedDB-backed card cache. Failure only disables
// the offline fallback.
func openCache(ctx context.Context) hackpadfs.FS {
	fs, err := indexeddb.NewFS(ctx, "rarestones", indexeddb.Options{})
	if err != nil {
		logger.Warn("card cache unavailable", zap.Error(err))
		return nil
	}
	return fs
}

func start(cfg widget.Config) {
	teardown()

	sched := jsdom.FrameScheduler{Dispatch: enqueue}
	w, err := widget.Bind(jsdom.Document(), cfg, sched, jsdom.Location{}, logger)
	if err != nil {
		logger.Warn("catalog not started", zap.Error(err))
		return
	}
	w.Start()
	current = w

	root := w.Root().(*jsdom.Element).Value()
	unbind = append(unbind,
		jsdom.Listen(root, "click", func(ev js.Value) {
			target := jsdom.EventTarget(ev)
			if target == nil {
				return
			}
			c, ok := w.ResolveClick(target)
			if !ok {
				return
			}
			// Tabs may be links; their own navigation would clobber the hash.
			ev.Call("preventDefault")
			enqueue(func() { w.Dispatch(c) })
		}),
		jsdom.Listen(js.Global(), "hashchange", func(js.Value) {
			enqueue(func() { w.HashChanged() })
		}),
	)
}

func teardown() {
	for _, fn := range unbind {
		fn()
	}
	unbind = nil
	current = nil
}

// getVersion returns the module version
func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initialize re-binds the catalog, optionally with a YAML config override.
// Args: [configYAML string] (optional)
func initialize(this js.Value, args []js.Value) interface{} {
	var configYAML []byte
	if len(args) > 0 && args[0].Type() == js.TypeString {
		configYAML = []byte(args[0].String())
	}
	if _, err := widget.LoadConfig(configYAML); err != nil {
		return errorResult(err.Error())
	}
	go boot(configYAML)
	return successResult("initializing")
}

// getState returns the current {tab, filter} as JSON.
func getState(this js.Value, args []js.Value) interface{} {
	if current == nil {
		return errorResult("catalog not started")
	}
	jsonBytes, err := json.Marshal(current.State())
	if err != nil {
		return errorResult(err.Error())
	}
	return string(jsonBytes)
}

// selectState navigates to a tab and filter, adding a history entry.
// Args: [tab string, filter string (optional)]
func selectState(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("select requires 1+ args: tab, [filter]")
	}
	w := current
	if w == nil {
		return errorResult("catalog not started")
	}
	f := hashstate.Fragment{Tab: args[0].String(), Filter: hashstate.DefaultFilter}
	if len(args) > 1 && args[1].Type() == js.TypeString && args[1].String() != "" {
		f.Filter = args[1].String()
	}
	enqueue(func() { w.Navigate(f) })
	return successResult("navigating")
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
