package element

// Document pairs a tree with the sheet that styles it. Root is the body.
type Document struct {
	Root  *Node
	Sheet *Sheet
}

func NewDocument(root *Node, sheet *Sheet) *Document {
	if sheet == nil {
		sheet = NewSheet()
	}
	return &Document{Root: root, Sheet: sheet}
}

func (d *Document) Body() *Node { return d.Root }

// Snapshot computes styles for the whole document.
func (d *Document) Snapshot() Snapshot {
	return d.Sheet.Snapshot(d.Root)
}

// Layout computes boxes for the whole document.
func (d *Document) Layout() Layout {
	return ComputeLayout(d.Root, d.Snapshot())
}

// Tree returns the computed styles and layout of the whole tree containing
// n, which need not be attached to the document.
func (d *Document) Tree(n *Node) (Snapshot, Layout) {
	top := n.Root()
	snap := d.Sheet.Snapshot(top)
	return snap, ComputeLayout(top, snap)
}

// ComputedStyle returns the resolved style of n.
func (d *Document) ComputedStyle(n *Node) Style {
	snap, _ := d.Tree(n)
	return snap[n]
}

func (d *Document) BoundingBox(n *Node) Rect {
	_, l := d.Tree(n)
	return l[n]
}

func (d *Document) ScrollSize(n *Node) (w, h float64) {
	_, l := d.Tree(n)
	return l.ScrollSize(n)
}
