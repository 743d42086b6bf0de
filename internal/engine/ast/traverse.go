package ast

// Visible reports whether a cursor can land on the node. Markers, sentinels,
// boundary tokens and empty text nodes are not visible; line breaks are.
func Visible(n *Node) bool {
	switch n.kind {
	case KindText, KindBreak:
		return n.text != ""
	default:
		return false
	}
}

// NextVisible returns the next visible node after n, entering a boundary's
// nested chain and exiting through the embedding boundary at a chain's end.
// Reaching the outermost end sentinel returns that sentinel; callers treat
// it as the traversal terminal.
func NextVisible(n *Node) *Node {
	if Visible(n) || n.kind == KindBoundary {
		n = n.next
	}
	for !Visible(n) {
		switch n.kind {
		case KindEOS:
			b := n.root.boundary
			if b == nil {
				return n
			}
			n = b.next
		case KindBoundary:
			n = n.nested.bos
		default:
			n = n.next
		}
	}
	return n
}

// PrevVisible mirrors NextVisible in the backward direction. Reaching the
// outermost begin sentinel returns that sentinel.
func PrevVisible(n *Node) *Node {
	if Visible(n) {
		n = n.prev
	}
	for !Visible(n) {
		switch n.kind {
		case KindBOS:
			b := n.root.boundary
			if b == nil {
				return n
			}
			n = b.prev
		case KindBoundary:
			n = n.nested.eos
		default:
			n = n.prev
		}
	}
	return n
}

// NextTerm steps to the next terminal in document order, descending into
// boundary chains and ascending out of finished ones. Unlike NextVisible it
// yields every node, markers and sentinels of nested chains included.
// Returns nil only past the outermost end sentinel.
func NextTerm(n *Node) *Node {
	if n.kind == KindBoundary {
		return n.nested.bos
	}
	if n.kind == KindEOS {
		b := n.root.boundary
		if b == nil {
			return nil
		}
		return b.next
	}
	return n.next
}
