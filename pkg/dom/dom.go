// Package dom defines the slice of the DOM the catalog engine touches.
// Two implementations exist: htmldom (parsed HTML, native builds and tests)
// and internal/jsdom (live browser nodes under WASM).
package dom

// Element is one element node.
type Element interface {
	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)
	SetAttr(name, value string)

	HasClass(name string) bool
	// ToggleClass adds the class when on is true and removes it otherwise.
	ToggleClass(name string, on bool)

	// Style reads one inline style property ("" when unset).
	Style(prop string) string
	// SetStyle writes one inline style property. An empty value removes it.
	SetStyle(prop, value string)

	// Children returns the direct element children in document order.
	Children() []Element
	// AppendChild moves child to the end of this element, detaching it
	// from its current parent first.
	AppendChild(child Element)
	// Parent returns the parent element, or nil at the top of the tree.
	Parent() Element
	// Same reports whether other wraps the same underlying node.
	Same(other Element) bool

	SetInnerHTML(markup string) error
	Text() string
}

// Matcher selects elements during a tree walk.
type Matcher func(Element) bool

// ByClass matches elements carrying the class.
func ByClass(name string) Matcher {
	return func(e Element) bool { return e.HasClass(name) }
}

// ByID matches the element with the given id attribute.
func ByID(id string) Matcher {
	return func(e Element) bool {
		v, ok := e.Attr("id")
		return ok && v == id
	}
}

// ByAttr matches elements whose attribute equals value.
func ByAttr(name, value string) Matcher {
	return func(e Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

// HasAttr matches elements carrying the attribute, whatever its value.
func HasAttr(name string) Matcher {
	return func(e Element) bool {
		_, ok := e.Attr(name)
		return ok
	}
}

// All matches when every matcher does.
func All(ms ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range ms {
			if !m(e) {
				return false
			}
		}
		return true
	}
}

// FindAll walks the descendants of root in document order (root excluded)
// and returns every match.
func FindAll(root Element, m Matcher) []Element {
	var out []Element
	var walk func(Element)
	walk = func(e Element) {
		for _, c := range e.Children() {
			if m(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// Find returns the first descendant of root that matches, or nil.
func Find(root Element, m Matcher) Element {
	if root == nil {
		return nil
	}
	for _, c := range root.Children() {
		if m(c) {
			return c
		}
		if found := Find(c, m); found != nil {
			return found
		}
	}
	return nil
}

// Closest returns e or its nearest ancestor that matches, stopping before
// boundary (which is never returned). Returns nil when nothing matches.
func Closest(e Element, m Matcher, boundary Element) Element {
	for e != nil {
		if boundary != nil && e.Same(boundary) {
			return nil
		}
		if m(e) {
			return e
		}
		e = e.Parent()
	}
	return nil
}

// Contains reports whether child is parent itself or one of its descendants.
func Contains(parent, child Element) bool {
	for e := child; e != nil; e = e.Parent() {
		if e.Same(parent) {
			return true
		}
	}
	return false
}
