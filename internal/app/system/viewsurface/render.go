// internal/app/system/viewsurface/render.go
package viewsurface

import (
	"html/template"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// HTML renders the subtree rooted at n. Text and attribute values are
// escaped; Markup is written as is. Hidden nodes carry the hidden attribute.
func (n *Node) HTML() template.HTML {
	var b strings.Builder
	render(&b, n)
	return template.HTML(b.String())
}

// HTML renders the document body's children.
func (d *Document) HTML() template.HTML {
	var b strings.Builder
	for _, c := range d.root.children {
		render(&b, c)
	}
	return template.HTML(b.String())
}

// render writes n through html.Render. A strings.Builder never fails and
// void elements are emitted without children, so the error is dropped.
func render(b *strings.Builder, n *Node) {
	_ = html.Render(b, tree(n))
}

// tree converts n and its descendants into an x/net/html element tree.
func tree(n *Node) *html.Node {
	tag := n.Tag
	if tag == "" {
		tag = "div"
	}
	el := &html.Node{Type: html.ElementNode, Data: tag, Attr: attrs(n)}
	if isVoid(tag) {
		return el
	}

	if n.Text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	if n.Markup != "" {
		el.AppendChild(&html.Node{Type: html.RawNode, Data: string(n.Markup)})
	}
	for _, c := range n.children {
		el.AppendChild(tree(c))
	}
	return el
}

// attrs orders id, class and style first, then the rest by name.
func attrs(n *Node) []html.Attribute {
	var out []html.Attribute
	if n.ID != "" {
		out = append(out, html.Attribute{Key: "id", Val: n.ID})
	}
	if c := n.ClassAttr(); c != "" {
		out = append(out, html.Attribute{Key: "class", Val: c})
	}
	if s := n.StyleAttr(); s != "" {
		out = append(out, html.Attribute{Key: "style", Val: s})
	}
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		out = append(out, html.Attribute{Key: k, Val: n.attrs[k]})
	}
	if n.Hidden {
		out = append(out, html.Attribute{Key: "hidden"})
	}
	return out
}

func isVoid(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"keygen", "link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}
