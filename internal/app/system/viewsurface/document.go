// Package viewsurface is the in-process view surface the dashboard drives.
//
// A Document is a tree of named Nodes. Components look elements up by their
// stable id, mutate visibility, classes, text, style and attributes, and
// insert or detach children. The HTTP layer renders a Snapshot of it.
//
// A Document is not safe for concurrent use; it is owned by the event loop.
package viewsurface

import (
	"html/template"
	"sort"
	"strings"
)

// Node is a single element of the view surface.
type Node struct {
	ID      string
	Tag     string
	Text    string
	Hidden  bool
	Width   int
	Height  int
	Markup  template.HTML
	classes map[string]bool
	attrs   map[string]string
	style   map[string]string

	parent   *Node
	children []*Node
}

// NewNode creates a detached node.
func NewNode(id, tag string) *Node {
	return &Node{
		ID:      id,
		Tag:     tag,
		classes: make(map[string]bool),
		attrs:   make(map[string]string),
		style:   make(map[string]string),
	}
}

// AddClass adds class names to the node.
func (n *Node) AddClass(names ...string) {
	for _, name := range names {
		n.classes[name] = true
	}
}

// RemoveClass removes class names from the node.
func (n *Node) RemoveClass(names ...string) {
	for _, name := range names {
		delete(n.classes, name)
	}
}

// ToggleClass sets or clears a class.
func (n *Node) ToggleClass(name string, on bool) {
	if on {
		n.AddClass(name)
	} else {
		n.RemoveClass(name)
	}
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(name string) bool {
	return n.classes[name]
}

// Classes returns the node's classes in sorted order.
func (n *Node) Classes() []string {
	out := make([]string, 0, len(n.classes))
	for c := range n.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ClassAttr returns the classes joined for a class attribute.
func (n *Node) ClassAttr() string {
	return strings.Join(n.Classes(), " ")
}

// SetAttr sets an attribute.
func (n *Node) SetAttr(name, value string) {
	n.attrs[name] = value
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns a copy of the node's attributes.
func (n *Node) Attrs() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// SetStyle sets one style property.
func (n *Node) SetStyle(prop, value string) {
	n.style[prop] = value
}

// Style returns one style property.
func (n *Node) Style(prop string) string {
	return n.style[prop]
}

// StyleAttr renders the style map as an inline style attribute.
func (n *Node) StyleAttr() string {
	props := make([]string, 0, len(n.style))
	for p := range n.style {
		props = append(props, p)
	}
	sort.Strings(props)
	var b strings.Builder
	for i, p := range props {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(n.style[p])
	}
	return b.String()
}

// Parent returns the node's parent, or nil when detached or root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Document is a tree of nodes indexed by id.
type Document struct {
	root *Node
	byID map[string]*Node
}

// NewDocument creates a Document with an empty root.
func NewDocument() *Document {
	root := NewNode("root", "body")
	return &Document{
		root: root,
		byID: map[string]*Node{root.ID: root},
	}
}

// Root returns the root node.
func (d *Document) Root() *Node {
	return d.root
}

// Element looks up a node by id.
func (d *Document) Element(id string) (*Node, bool) {
	n, ok := d.byID[id]
	return n, ok
}

// Append attaches child as the last child of parent and indexes the subtree.
func (d *Document) Append(parent, child *Node) {
	d.detachFromParent(child)
	child.parent = parent
	parent.children = append(parent.children, child)
	d.index(child)
}

// Prepend attaches child as the first child of parent.
func (d *Document) Prepend(parent, child *Node) {
	d.detachFromParent(child)
	child.parent = parent
	parent.children = append([]*Node{child}, parent.children...)
	d.index(child)
}

// Detach removes a node and its subtree from the document.
// Detaching a node that is not attached is a no-op.
func (d *Document) Detach(n *Node) {
	if n == nil || n == d.root {
		return
	}
	d.detachFromParent(n)
	d.unindex(n)
}

func (d *Document) detachFromParent(n *Node) {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (d *Document) index(n *Node) {
	if n.ID != "" {
		d.byID[n.ID] = n
	}
	for _, c := range n.children {
		d.index(c)
	}
}

func (d *Document) unindex(n *Node) {
	if n.ID != "" && d.byID[n.ID] == n {
		delete(d.byID, n.ID)
	}
	for _, c := range n.children {
		d.unindex(c)
	}
}

// WithAttr returns every attached node whose attribute name equals value,
// in document order.
func (d *Document) WithAttr(name, value string) []*Node {
	var out []*Node
	d.walk(d.root, func(n *Node) {
		if v, ok := n.attrs[name]; ok && v == value {
			out = append(out, n)
		}
	})
	return out
}

// HavingAttr returns every attached node that carries the attribute.
func (d *Document) HavingAttr(name string) []*Node {
	var out []*Node
	d.walk(d.root, func(n *Node) {
		if _, ok := n.attrs[name]; ok {
			out = append(out, n)
		}
	})
	return out
}

// Closest returns n or its nearest ancestor carrying the attribute.
func (d *Document) Closest(n *Node, attr string) (*Node, bool) {
	for cur := n; cur != nil; cur = cur.parent {
		if _, ok := cur.attrs[attr]; ok {
			return cur, true
		}
	}
	return nil, false
}

func (d *Document) walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		d.walk(c, fn)
	}
}

// Show clears the hidden flag on the element with the given id.
// It reports whether the element exists.
func (d *Document) Show(id string) bool {
	n, ok := d.byID[id]
	if ok {
		n.Hidden = false
	}
	return ok
}

// Hide sets the hidden flag on the element with the given id.
func (d *Document) Hide(id string) bool {
	n, ok := d.byID[id]
	if ok {
		n.Hidden = true
	}
	return ok
}

// SetText sets the text of the element with the given id.
func (d *Document) SetText(id, text string) bool {
	n, ok := d.byID[id]
	if ok {
		n.Text = text
	}
	return ok
}

// Snapshot returns a deep copy of the document for rendering outside the
// event loop.
func (d *Document) Snapshot() *Document {
	cp := &Document{byID: make(map[string]*Node, len(d.byID))}
	cp.root = cloneNode(d.root, nil)
	cp.index(cp.root)
	return cp
}

func cloneNode(n *Node, parent *Node) *Node {
	c := &Node{
		ID:      n.ID,
		Tag:     n.Tag,
		Text:    n.Text,
		Hidden:  n.Hidden,
		Width:   n.Width,
		Height:  n.Height,
		Markup:  n.Markup,
		classes: make(map[string]bool, len(n.classes)),
		attrs:   make(map[string]string, len(n.attrs)),
		style:   make(map[string]string, len(n.style)),
		parent:  parent,
	}
	for k, v := range n.classes {
		c.classes[k] = v
	}
	for k, v := range n.attrs {
		c.attrs[k] = v
	}
	for k, v := range n.style {
		c.style[k] = v
	}
	c.children = make([]*Node, len(n.children))
	for i, ch := range n.children {
		c.children[i] = cloneNode(ch, c)
	}
	return c
}
