package element

import "math"

// Rect is an absolute box in CSS pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Empty() bool     { return r.W <= 0 || r.H <= 0 }

// Layout holds the absolute box of every node of a tree.
type Layout map[*Node]Rect

// ComputeLayout places every node at its parent's origin offset by its
// computed left/top. Width and height come from the computed style; "auto"
// reads as zero.
func ComputeLayout(root *Node, snap Snapshot) Layout {
	l := Layout{}
	var visit func(n *Node, ox, oy float64)
	visit = func(n *Node, ox, oy float64) {
		st := snap[n]
		r := Rect{
			X: ox + st.Px("left"),
			Y: oy + st.Px("top"),
			W: st.Px("width"),
			H: st.Px("height"),
		}
		l[n] = r
		for _, c := range n.Children {
			visit(c, r.X, r.Y)
		}
	}
	visit(root, 0, 0)
	return l
}

// ScrollSize is the full content extent of n measured from its origin: the
// larger of its own box and the farthest descendant edge. Nodes without
// children have no scroll extent and report 0, 0.
func (l Layout) ScrollSize(n *Node) (w, h float64) {
	if len(n.Children) == 0 {
		return 0, 0
	}
	box := l[n]
	w, h = box.W, box.H
	for _, c := range n.Children {
		c.Walk(func(d *Node) bool {
			r := l[d]
			w = math.Max(w, r.Right()-box.X)
			h = math.Max(h, r.Bottom()-box.Y)
			return true
		})
	}
	return w, h
}
