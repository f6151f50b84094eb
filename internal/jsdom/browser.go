//go:build js && wasm

package jsdom

import (
	"net/url"
	"syscall/js"

	"github.com/kittclouds/rarestones/pkg/dom"
)

// Document returns document.documentElement.
func Document() dom.Element {
	return Wrap(js.Global().Get("document").Get("documentElement"))
}

// Ready reports whether the document has finished parsing.
func Ready() bool {
	return js.Global().Get("document").Get("readyState").String() != "loading"
}

// BaseURL is the document's base URL, used to resolve relative sources.
func BaseURL() *url.URL {
	u, err := url.Parse(js.Global().Get("document").Get("baseURI").String())
	if err != nil {
		return nil
	}
	return u
}

// Location is window.location plus history.replaceState.
type Location struct{}

func (Location) Hash() string {
	return js.Global().Get("location").Get("hash").String()
}

// Push assigns location.hash, which adds a history entry and fires
// hashchange.
func (Location) Push(fragment string) {
	js.Global().Get("location").Set("hash", fragment)
}

// Replace rewrites the current entry without navigating or firing
// hashchange.
func (Location) Replace(fragment string) {
	js.Global().Get("history").Call("replaceState", js.Null(), "", fragment)
}

// FrameScheduler runs callbacks through requestAnimationFrame.
type FrameScheduler struct {
	// Dispatch, when set, receives the callback instead of running it on
	// the JS callback stack, so all engine work stays on one goroutine.
	Dispatch func(fn func())
}

func (s FrameScheduler) RequestFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cb.Release()
		if s.Dispatch != nil {
			s.Dispatch(fn)
		} else {
			fn()
		}
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}

// Listen adds an event listener and returns a function removing it.
func Listen(target js.Value, event string, fn func(ev js.Value)) func() {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	target.Call("addEventListener", event, cb)
	return func() {
		target.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

// EventTarget returns the element an event was dispatched to. Text node
// targets are mapped to their parent element.
func EventTarget(ev js.Value) dom.Element {
	t := ev.Get("target")
	if t.IsNull() || t.IsUndefined() {
		return nil
	}
	if t.Get("nodeType").Int() != 1 {
		t = t.Get("parentElement")
	}
	return Wrap(t)
}
