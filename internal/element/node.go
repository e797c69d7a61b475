// Package element is a small DOM-like model: a tree of nodes with inline
// styles, a cascading style sheet that yields computed styles, absolute
// layout, and the serializers the PNG exporter needs (style inlining, SVG
// foreignObject wrapping and data URIs).
package element

import (
	"slices"
	"strings"
)

// Node is one element of the tree. Style holds inline declarations only;
// computed values come from a Sheet.
type Node struct {
	Tag      string
	ID       string
	Classes  []string
	Style    Style
	Text     string
	Children []*Node

	parent *Node
}

// Option configures a node built with New.
type Option func(*Node)

func WithID(id string) Option {
	return func(n *Node) { n.ID = id }
}

func WithClass(classes ...string) Option {
	return func(n *Node) { n.Classes = append(n.Classes, classes...) }
}

// WithStyle parses css and merges it into the inline style.
func WithStyle(css string) Option {
	return func(n *Node) { n.Style.Merge(ParseStyle(css)) }
}

func WithText(s string) Option {
	return func(n *Node) { n.Text = s }
}

func New(tag string, opts ...Option) *Node {
	n := &Node{Tag: strings.ToLower(tag), Style: Style{}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Append adds children to n and returns n so calls can be chained.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

func (n *Node) Parent() *Node { return n.parent }

// Root walks up to the topmost ancestor.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// Clone returns a deep, detached copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	c := &Node{
		Tag:     n.Tag,
		ID:      n.ID,
		Classes: slices.Clone(n.Classes),
		Style:   n.Style.Clone(),
		Text:    n.Text,
	}
	for _, child := range n.Children {
		c.Append(child.Clone())
	}
	return c
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node in document order carrying class, or nil.
func (n *Node) Find(class string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.HasClass(class) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node carrying class in document order.
func (n *Node) FindAll(class string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.HasClass(class) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Len counts the nodes in the subtree.
func (n *Node) Len() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}
