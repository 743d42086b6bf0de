// Package line maintains the ordered index of line records derived from the
// node chains. Each record is anchored to the line-break node that starts
// the line (the begin sentinel for line zero) and caches the measurements
// vertical navigation and the indentation engine need. The index follows
// document order across language-box boundaries: box content is traversed
// transparently, so its line breaks appear in the same index.
package line

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/interlace/internal/engine/ast"
)

// Line is the per-line record.
type Line struct {
	Break  *ast.Node // line-break node anchoring the line; BOS on line 0
	Width  int       // cached visible width in grapheme clusters
	Height int       // cached height in rows
	Indent int       // indentation nesting level
	WS     int       // raw leading-whitespace count
}

// New creates a record for the given anchor node.
func New(anchor *ast.Node) *Line {
	return &Line{Break: anchor, Height: 1}
}

// String returns a debugging representation.
func (l *Line) String() string {
	return fmt.Sprintf("Line(%s, indent=%d, ws=%d)", l.Break, l.Indent, l.WS)
}

// Index is the ordered list of line records for one document.
type Index struct {
	lines []*Line
	eos   *ast.Node // outermost end sentinel, the rescan terminal
}

// NewIndex creates the index for a document rooted at main, holding the
// single empty first line.
func NewIndex(main *ast.Root) *Index {
	return &Index{
		lines: []*Line{New(main.BOS())},
		eos:   main.EOS(),
	}
}

// Count returns the number of line records.
func (ix *Index) Count() int { return len(ix.lines) }

// At returns the record for line y. Out-of-range access is a caller bug.
func (ix *Index) At(y int) *Line {
	if y < 0 || y >= len(ix.lines) {
		panic(fmt.Sprintf("line: index %d out of range [0,%d)", y, len(ix.lines)))
	}
	return ix.lines[y]
}

// Last returns the final line record.
func (ix *Index) Last() *Line { return ix.lines[len(ix.lines)-1] }

// Rescan walks the chain from line y's anchor to the next known anchor and
// inserts records for every line break found in between, entering and
// leaving language boxes transparently. Returns the number of lines added.
func (ix *Index) Rescan(y int) int {
	start := y
	cur := ix.lines[y].Break
	stop := ix.eos
	if y+1 < len(ix.lines) {
		stop = ix.lines[y+1].Break
	}
	added := 0
	for cur = ast.NextTerm(cur); cur != nil && cur != stop; cur = ast.NextTerm(cur) {
		if cur.Kind() == ast.KindBreak {
			y++
			ix.insertAt(y, New(cur))
			added++
		}
	}
	for i := start; i <= start+added; i++ {
		ix.measure(i)
	}
	return added
}

// Delete removes the record for line y+1 whose anchor must be brk; called
// when a line-break node is deleted and two lines merge.
func (ix *Index) Delete(y int, brk *ast.Node) {
	if y+1 >= len(ix.lines) || ix.lines[y+1].Break != brk {
		panic("line: deleted break does not anchor the following line")
	}
	ix.lines = append(ix.lines[:y+1], ix.lines[y+2:]...)
}

// RemoveRange drops the records (from, to], used when a selection spanning
// line breaks is deleted.
func (ix *Index) RemoveRange(from, to int) {
	if from >= to {
		return
	}
	if to >= len(ix.lines) {
		to = len(ix.lines) - 1
	}
	ix.lines = append(ix.lines[:from+1], ix.lines[to+1:]...)
}

// Reset drops everything but the first line, re-anchored at main's sentinel.
func (ix *Index) Reset(main *ast.Root) {
	ix.lines = []*Line{New(main.BOS())}
	ix.eos = main.EOS()
}

func (ix *Index) insertAt(y int, l *Line) {
	ix.lines = append(ix.lines, nil)
	copy(ix.lines[y+1:], ix.lines[y:])
	ix.lines[y] = l
}

// measure refreshes the cached width of line y.
func (ix *Index) measure(y int) {
	width := 0
	for n := ast.NextVisible(ix.lines[y].Break); ; n = ast.NextVisible(n) {
		if n.Kind() == ast.KindBreak || n.Kind() == ast.KindEOS {
			break
		}
		width += uniseg.GraphemeClusterCount(n.Text())
	}
	ix.lines[y].Width = width
}
