package ast

import "fmt"

// Kind tags what a node represents in its chain.
type Kind uint8

const (
	// KindText is an ordinary editable terminal token.
	KindText Kind = iota
	// KindBreak is a line-break token.
	KindBreak
	// KindMarker is a synthetic indentation marker (never editable).
	KindMarker
	// KindBoundary is the entry point of a nested language box.
	KindBoundary
	// KindBOS is the begin-of-chain sentinel.
	KindBOS
	// KindEOS is the end-of-chain sentinel.
	KindEOS
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBreak:
		return "break"
	case KindMarker:
		return "marker"
	case KindBoundary:
		return "boundary"
	case KindBOS:
		return "bos"
	case KindEOS:
		return "eos"
	default:
		return "unknown"
	}
}

// Marker is the structural token a marker node carries.
type Marker uint8

const (
	// MarkerNone means the node is not a marker.
	MarkerNone Marker = iota
	// MarkerNewline terminates a logical line.
	MarkerNewline
	// MarkerIndent opens one indentation level.
	MarkerIndent
	// MarkerDedent closes one indentation level.
	MarkerDedent
	// MarkerUnbalanced flags a dedent with no matching earlier level.
	MarkerUnbalanced
)

// String returns the marker name.
func (m Marker) String() string {
	switch m {
	case MarkerNone:
		return "NONE"
	case MarkerNewline:
		return "NEWLINE"
	case MarkerIndent:
		return "INDENT"
	case MarkerDedent:
		return "DEDENT"
	case MarkerUnbalanced:
		return "UNBALANCED"
	default:
		return "UNKNOWN"
	}
}

// LineBreak is the single internal line-break representation. Imported text
// is normalized to it before splicing.
const LineBreak = "\n"

// Node is one terminal token in a chain. Parent and children are populated
// by the external parser; the chain links are owned by the edit engine.
type Node struct {
	kind    Kind
	marker  Marker
	text    string
	prev    *Node
	next    *Node
	root    *Root
	nested  *Root // boundary nodes only
	deleted bool

	// Parent and Children mirror the syntax tree built by the external
	// incremental parser. The core never interprets them.
	Parent   *Node
	Children []*Node
}

// NewText creates an ordinary terminal with the given text.
func NewText(text string) *Node {
	return &Node{kind: KindText, text: text}
}

// NewBreak creates a line-break node.
func NewBreak() *Node {
	return &Node{kind: KindBreak, text: LineBreak}
}

// NewMarker creates a structural indentation marker.
func NewMarker(m Marker) *Node {
	return &Node{kind: KindMarker, marker: m}
}

// NewBoundary creates a language-box boundary owning the nested root.
// The boundary becomes the sole entry point to the nested chain.
func NewBoundary(nested *Root) *Node {
	n := &Node{kind: KindBoundary, text: "<" + nested.Language() + ">", nested: nested}
	nested.boundary = n
	return n
}

// Kind returns the node's kind tag.
func (n *Node) Kind() Kind { return n.kind }

// Marker returns the structural marker for KindMarker nodes.
func (n *Node) Marker() Marker { return n.marker }

// Text returns the node's textual content. Markers and sentinels have none.
func (n *Node) Text() string { return n.text }

// Len returns the byte length of the node's text.
func (n *Node) Len() int { return len(n.text) }

// Prev returns the previous node in the chain, nil past the begin sentinel.
func (n *Node) Prev() *Node { return n.prev }

// Next returns the next node in the chain, nil past the end sentinel.
func (n *Node) Next() *Node { return n.next }

// Root returns the grammar root owning this node.
func (n *Node) Root() *Root { return n.root }

// Nested returns the embedded root for boundary nodes, nil otherwise.
func (n *Node) Nested() *Root { return n.nested }

// Deleted reports whether the node was spliced out of its chain. A deleted
// node keeps its old prev/next links so a cursor parked on it can walk back
// into the live chain.
func (n *Node) Deleted() bool { return n.deleted }

// IsSentinel reports whether the node is a chain sentinel.
func (n *Node) IsSentinel() bool { return n.kind == KindBOS || n.kind == KindEOS }

// IsWhitespace reports whether the node is a text token made only of spaces
// and tabs. Lexers emit leading whitespace as such runs.
func (n *Node) IsWhitespace() bool {
	if n.kind != KindText || n.text == "" {
		return false
	}
	for i := 0; i < len(n.text); i++ {
		if n.text[i] != ' ' && n.text[i] != '\t' {
			return false
		}
	}
	return true
}

// InsertAfter splices sibling into the chain directly after n.
func (n *Node) InsertAfter(sibling *Node) {
	if n.kind == KindEOS {
		panic("ast: insert after end sentinel")
	}
	if sibling.IsSentinel() {
		panic("ast: sentinel nodes cannot be spliced")
	}
	sibling.root = n.root
	sibling.deleted = false
	sibling.prev = n
	sibling.next = n.next
	n.next.prev = sibling
	n.next = sibling
}

// Remove splices the node out of its chain. The node keeps its links so a
// stale cursor can recover, but neighbours no longer reach it. Removing a
// boundary drops its entire nested root.
func (n *Node) Remove() {
	if n.IsSentinel() {
		panic("ast: sentinel nodes cannot be removed")
	}
	if n.deleted {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.deleted = true
	if n.Parent != nil {
		n.Parent.detachChild(n)
	}
}

func (n *Node) detachChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// SetText replaces the node's text. Only text nodes may be retargeted; the
// relexer uses this when it merges or splits tokens.
func (n *Node) SetText(text string) {
	if n.kind != KindText {
		panic(fmt.Sprintf("ast: SetText on %s node", n.kind))
	}
	n.text = text
}

// InsertText splices s into the node's text at byte offset off.
func (n *Node) InsertText(off int, s string) {
	if n.kind != KindText {
		panic(fmt.Sprintf("ast: InsertText on %s node", n.kind))
	}
	if off < 0 || off > len(n.text) {
		panic(fmt.Sprintf("ast: InsertText offset %d out of range [0,%d]", off, len(n.text)))
	}
	n.text = n.text[:off] + s + n.text[off:]
}

// DeleteRune removes the rune starting at byte offset off and returns it.
func (n *Node) DeleteRune(off int) string {
	if off < 0 || off >= len(n.text) {
		panic(fmt.Sprintf("ast: DeleteRune offset %d out of range [0,%d)", off, len(n.text)))
	}
	end := off + 1
	for end < len(n.text) && n.text[end]&0xC0 == 0x80 {
		end++
	}
	r := n.text[off:end]
	// a line break is a single token; deleting its rune empties it
	if n.kind == KindBreak {
		n.text = ""
		return r
	}
	n.text = n.text[:off] + n.text[end:]
	return r
}

// String returns a debugging representation.
func (n *Node) String() string {
	switch n.kind {
	case KindMarker:
		return fmt.Sprintf("Node(marker %s)", n.marker)
	case KindBoundary:
		return fmt.Sprintf("Node(boundary %s)", n.nested.Language())
	case KindBOS, KindEOS:
		return fmt.Sprintf("Node(%s)", n.kind)
	default:
		return fmt.Sprintf("Node(%s %q)", n.kind, n.text)
	}
}
