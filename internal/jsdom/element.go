//go:build js && wasm

// Package jsdom implements the engine's DOM contract on live browser
// objects through syscall/js.
package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/kittclouds/rarestones/pkg/dom"
)

// Element wraps one browser Element.
type Element struct {
	v js.Value
}

// Wrap returns the dom.Element view of v, or nil when v is null/undefined.
func Wrap(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{v: v}
}

// Value exposes the underlying js.Value.
func (e *Element) Value() js.Value { return e.v }

func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *Element) SetAttr(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *Element) ToggleClass(name string, on bool) {
	e.v.Get("classList").Call("toggle", name, on)
}

func (e *Element) Style(prop string) string {
	return e.v.Get("style").Call("getPropertyValue", prop).String()
}

func (e *Element) SetStyle(prop, value string) {
	style := e.v.Get("style")
	if value == "" {
		style.Call("removeProperty", prop)
		return
	}
	style.Call("setProperty", prop, value)
}

func (e *Element) Children() []dom.Element {
	kids := e.v.Get("children")
	n := kids.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Element{v: kids.Index(i)})
	}
	return out
}

func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	// appendChild relocates a node that already has a parent.
	e.v.Call("appendChild", c.v)
}

func (e *Element) Parent() dom.Element {
	return Wrap(e.v.Get("parentElement"))
}

func (e *Element) Same(other dom.Element) bool {
	o, ok := other.(*Element)
	return ok && o.v.Equal(e.v)
}

func (e *Element) SetInnerHTML(markup string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("set innerHTML: %v", r)
		}
	}()
	e.v.Set("innerHTML", markup)
	return nil
}

func (e *Element) Text() string {
	return e.v.Get("textContent").String()
}

var _ dom.Element = (*Element)(nil)
