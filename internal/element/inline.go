package element

// InlineStyles returns a clone of n in which every node carries its full
// computed style from snap as inline declarations. n is left untouched.
// Nodes missing from snap keep their own inline style.
func InlineStyles(n *Node, snap Snapshot) *Node {
	clone := n.Clone()
	inline(n, clone, snap)
	return clone
}

func inline(orig, clone *Node, snap Snapshot) {
	if st, ok := snap[orig]; ok {
		clone.Style = st.Clone()
	}
	for i, c := range orig.Children {
		inline(c, clone.Children[i], snap)
	}
}
