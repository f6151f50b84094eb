// Package htmldom implements dom.Element over golang.org/x/net/html nodes.
// It lets the engine run natively: the CLI works on saved pages and the
// tests drive the full widget without a browser.
package htmldom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kittclouds/rarestones/pkg/dom"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: n}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the <html> element.
func (d *Document) Root() dom.Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return Wrap(c)
		}
	}
	return nil
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Element wraps one *html.Node of type ElementNode.
type Element struct {
	n *html.Node
}

// Wrap returns the dom.Element view of n.
func Wrap(n *html.Node) *Element {
	return &Element{n: n}
}

// Node exposes the underlying node.
func (e *Element) Node() *html.Node { return e.n }

func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) removeAttr(name string) {
	out := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		out = append(out, a)
	}
	e.n.Attr = out
}

func (e *Element) classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes() {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) ToggleClass(name string, on bool) {
	cls := e.classes()
	out := cls[:0]
	for _, c := range cls {
		if c != name {
			out = append(out, c)
		}
	}
	if on {
		out = append(out, name)
	}
	if len(out) == 0 {
		if _, ok := e.Attr("class"); ok {
			e.SetAttr("class", "")
		}
		return
	}
	e.SetAttr("class", strings.Join(out, " "))
}

func (e *Element) Style(prop string) string {
	v, _ := e.Attr("style")
	for _, d := range parseStyle(v) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

func (e *Element) SetStyle(prop, value string) {
	v, _ := e.Attr("style")
	decls := parseStyle(v)
	out := decls[:0]
	replaced := false
	for _, d := range decls {
		if d.prop == prop {
			if value == "" || replaced {
				continue
			}
			d.value = value
			replaced = true
		}
		out = append(out, d)
	}
	if !replaced && value != "" {
		out = append(out, declaration{prop: prop, value: value})
	}
	if len(out) == 0 {
		e.removeAttr("style")
		return
	}
	e.SetAttr("style", formatStyle(out))
}

func (e *Element) Children() []dom.Element {
	var out []dom.Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, Wrap(c))
		}
	}
	return out
}

func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	if c.n.Parent != nil {
		c.n.Parent.RemoveChild(c.n)
	}
	e.n.AppendChild(c.n)
}

func (e *Element) Parent() dom.Element {
	if p := e.n.Parent; p != nil && p.Type == html.ElementNode {
		return Wrap(p)
	}
	return nil
}

func (e *Element) Same(other dom.Element) bool {
	o, ok := other.(*Element)
	return ok && o.n == e.n
}

func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     e.n.Data,
		DataAtom: atom.Lookup([]byte(e.n.Data)),
	})
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	for c := e.n.FirstChild; c != nil; c = e.n.FirstChild {
		e.n.RemoveChild(c)
	}
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

func (e *Element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

// OuterHTML renders the element and its subtree.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, e.n)
	return buf.String()
}

var _ dom.Element = (*Element)(nil)
