// Package cursor implements the (node, offset) cursor that walks the node
// chains while hiding structural tokens, plus the selection pair built on
// it. Horizontal movement steps one grapheme cluster at a time and crosses
// language-box boundaries transparently; vertical movement re-walks the
// target line from its line-break anchor, preserving the column. Columns are
// semantic character offsets: a display layer may install its own width
// callback, the default counts grapheme clusters.
package cursor

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/interlace/internal/engine/ast"
	"github.com/dshills/interlace/internal/engine/line"
)

// WidthFunc maps a node to its display width in columns.
type WidthFunc func(*ast.Node) int

// width is the installed node-width callback.
var width WidthFunc = graphemeWidth

func graphemeWidth(n *ast.Node) int {
	return uniseg.GraphemeClusterCount(n.Text())
}

// SetWidthFunc installs a display-layer width callback. A nil f restores the
// grapheme-cluster default.
func SetWidthFunc(f WidthFunc) {
	if f == nil {
		f = graphemeWidth
	}
	width = f
}

// Cursor is a position inside a node plus the line it sits on. Off is a byte
// offset into the node's text, always within [0, len]; offset 0 with a
// predecessor means "between nodes", offset == len means "at node end".
type Cursor struct {
	Node *ast.Node
	Off  int
	Line int
}

// New creates a cursor on the given line.
func New(n *ast.Node, off, lineNo int) Cursor {
	return Cursor{Node: n, Off: off, Line: lineNo}
}

// Clone returns a copy.
func (c Cursor) Clone() Cursor { return c }

// Inside reports whether the cursor sits strictly inside its node's text.
func (c *Cursor) Inside() bool { return c.Off > 0 && c.Off < c.Node.Len() }

// AtEnd reports whether the cursor sits at the end of its node. A boundary
// node has no interior positions, so a cursor on one is always at its end.
func (c *Cursor) AtEnd() bool {
	if c.Node.Kind() == ast.KindBoundary {
		return true
	}
	return c.Off == c.Node.Len()
}

// Equal compares by node identity and offset.
func (c *Cursor) Equal(o *Cursor) bool { return c.Node == o.Node && c.Off == o.Off }

// After reports whether c orders after o; line dominates, then column.
func (c *Cursor) After(o *Cursor) bool {
	if c.Line != o.Line {
		return c.Line > o.Line
	}
	return c.Col() > o.Col()
}

// Fix re-targets the cursor after a relex merged, split or removed nodes:
// a deleted node is escaped leftward, an overflowing offset spills into the
// following node.
func (c *Cursor) Fix() {
	for c.Node.Deleted() {
		c.Node = ast.PrevVisible(c.Node)
		c.Off = c.Node.Len()
	}
	for c.Off > c.Node.Len() {
		c.Off -= c.Node.Len()
		c.Node = c.Node.Next()
	}
}

// Left moves one visible grapheme to the left, leaving or entering language
// boxes as needed. Moving onto a line break or the outermost begin sentinel
// is a no-op; vertical movement owns line crossings.
func (c *Cursor) Left() {
	node := c.Node
	if !ast.Visible(node) {
		node = ast.PrevVisible(node)
	}
	if node.Kind() == ast.KindBreak || node.Kind() == ast.KindBOS {
		return
	}
	if node != c.Node {
		c.Node = node
		c.Off = node.Len()
	}
	if prev := prevBoundaryIn(c.Node.Text(), c.Off); prev > 0 {
		c.Off = prev
		return
	}
	node = ast.PrevVisible(c.Node)
	c.Node = node
	c.Off = node.Len()
}

// Right mirrors Left.
func (c *Cursor) Right() {
	node := c.Node
	if !ast.Visible(node) {
		node = ast.NextVisible(node)
	}
	if node.Kind() == ast.KindEOS {
		return
	}
	if node != c.Node {
		c.Node = node
		c.Off = 0
	}
	if c.Off < c.Node.Len() {
		c.Off = nextBoundaryIn(c.Node.Text(), c.Off)
		return
	}
	node = ast.NextVisible(c.Node)
	if node.Kind() == ast.KindBreak || node.Kind() == ast.KindEOS {
		return
	}
	c.Node = node
	c.Off = nextBoundaryIn(node.Text(), 0)
}

// Up moves one line up, preserving the column.
func (c *Cursor) Up(idx *line.Index) {
	if c.Line > 0 {
		x := c.Col()
		c.Line--
		c.MoveToCol(x, idx)
	}
}

// Down moves one line down, preserving the column.
func (c *Cursor) Down(idx *line.Index) {
	if c.Line < idx.Count()-1 {
		x := c.Col()
		c.Line++
		c.MoveToCol(x, idx)
	}
}

// MoveToCol walks the cursor's line from its anchor, consuming visible node
// widths until column x is reached; past the line end the cursor clamps to
// the last visible position. Column zero parks the cursor at the end of the
// line's anchor node.
func (c *Cursor) MoveToCol(x int, idx *line.Index) {
	node := idx.At(c.Line).Break
	for x > 0 {
		next := ast.NextVisible(node)
		if next == node {
			break
		}
		node = next
		if node.Kind() == ast.KindBreak || node.Kind() == ast.KindEOS {
			node = ast.PrevVisible(node)
			c.Node = node
			c.Off = node.Len()
			return
		}
		w := width(node)
		if x <= w {
			c.Node = node
			c.Off = byteOffsetForCol(node.Text(), x)
			return
		}
		x -= w
	}
	c.Node = node
	c.Off = node.Len()
}

// Col returns the cursor's column on its line, in display widths.
func (c *Cursor) Col() int {
	if c.Node.Kind() == ast.KindBreak || c.Node.Kind() == ast.KindBOS {
		return 0
	}
	x := uniseg.GraphemeClusterCount(c.Node.Text()[:c.Off])
	for n := ast.PrevVisible(c.Node); n.Kind() != ast.KindBreak && n.Kind() != ast.KindBOS; n = ast.PrevVisible(n) {
		x += width(n)
	}
	return x
}

// String returns a debugging representation.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%s, %d, line=%d)", c.Node, c.Off, c.Line)
}

// prevBoundaryIn returns the grapheme boundary before byte offset off, 0 at
// or before the first cluster.
func prevBoundaryIn(s string, off int) int {
	g := uniseg.NewGraphemes(s)
	prev := 0
	for g.Next() {
		from, to := g.Positions()
		if to >= off {
			return from
		}
		prev = to
	}
	return prev
}

// nextBoundaryIn returns the grapheme boundary after byte offset off,
// clamped to len(s).
func nextBoundaryIn(s string, off int) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		from, to := g.Positions()
		if from >= off {
			return to
		}
	}
	return len(s)
}

// byteOffsetForCol returns the byte offset after col grapheme clusters.
func byteOffsetForCol(s string, col int) int {
	g := uniseg.NewGraphemes(s)
	off := 0
	for i := 0; i < col && g.Next(); i++ {
		_, off = g.Positions()
	}
	return off
}
