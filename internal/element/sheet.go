package element

import (
	"strings"
)

// Property is a CSS property the model understands and its initial value.
type Property struct {
	Name      string
	Default   string
	Inherited bool
}

// KnownProperties is the set carried by every computed style.
var KnownProperties = []Property{
	{Name: "display", Default: "block"},
	{Name: "position", Default: "absolute"},
	{Name: "left", Default: "0px"},
	{Name: "top", Default: "0px"},
	{Name: "width", Default: "auto"},
	{Name: "height", Default: "auto"},
	{Name: "overflow", Default: "visible"},
	{Name: "background-color", Default: "transparent"},
	{Name: "border-color", Default: "transparent"},
	{Name: "border-width", Default: "0px"},
	{Name: "border-radius", Default: "0px"},
	{Name: "padding-left", Default: "0px"},
	{Name: "padding-top", Default: "0px"},
	{Name: "opacity", Default: "1"},
	{Name: "color", Default: "#000000", Inherited: true},
	{Name: "font-size", Default: "16px", Inherited: true},
	{Name: "font-family", Default: "sans-serif", Inherited: true},
	{Name: "font-weight", Default: "400", Inherited: true},
	{Name: "text-align", Default: "left", Inherited: true},
}

// Rule is a single selector with its declarations. Supported selectors are
// "*", a tag name, ".class" and "#id".
type Rule struct {
	Selector string
	Style    Style
}

func (r Rule) specificity() int {
	switch {
	case r.Selector == "*":
		return 0
	case strings.HasPrefix(r.Selector, "#"):
		return 100
	case strings.HasPrefix(r.Selector, "."):
		return 10
	default:
		return 1
	}
}

func (r Rule) matches(n *Node) bool {
	sel := strings.TrimSpace(r.Selector)
	switch {
	case sel == "*":
		return true
	case strings.HasPrefix(sel, "#"):
		return n.ID != "" && n.ID == sel[1:]
	case strings.HasPrefix(sel, "."):
		return n.HasClass(sel[1:])
	default:
		return strings.EqualFold(n.Tag, sel)
	}
}

// Sheet is an ordered list of rules. Later rules win over earlier ones of
// the same specificity; inline styles win over every rule.
type Sheet struct {
	Rules []Rule
}

func NewSheet() *Sheet { return &Sheet{} }

// Add appends a rule parsed from css and returns the sheet.
func (s *Sheet) Add(selector, css string) *Sheet {
	s.Rules = append(s.Rules, Rule{Selector: selector, Style: ParseStyle(css)})
	return s
}

// Compute resolves the full style of n given the computed style of its
// parent (nil for the root).
func (s *Sheet) Compute(n *Node, parent Style) Style {
	out := make(Style, len(KnownProperties))
	for _, p := range KnownProperties {
		if p.Inherited && parent != nil {
			if v, ok := parent[p.Name]; ok {
				out[p.Name] = v
				continue
			}
		}
		out[p.Name] = p.Default
	}

	if s != nil {
		// Stable pass per specificity level keeps source order for ties.
		for _, level := range []int{0, 1, 10, 100} {
			for _, r := range s.Rules {
				if r.specificity() == level && r.matches(n) {
					out.Merge(r.Style)
				}
			}
		}
	}
	out.Merge(n.Style)
	return out
}

// Snapshot is the computed style of every node in a tree.
type Snapshot map[*Node]Style

// Snapshot computes styles for root and all its descendants.
func (s *Sheet) Snapshot(root *Node) Snapshot {
	snap := Snapshot{}
	var visit func(n *Node, parent Style)
	visit = func(n *Node, parent Style) {
		st := s.Compute(n, parent)
		snap[n] = st
		for _, c := range n.Children {
			visit(c, st)
		}
	}
	visit(root, nil)
	return snap
}
