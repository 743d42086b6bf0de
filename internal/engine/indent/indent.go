// Package indent derives the synthetic NEWLINE/INDENT/DEDENT markers that
// indentation-sensitive grammars consume. Levels are a pure function of the
// raw leading-whitespace counts of the logical lines in one grammar root:
// a line's level always matches some earlier line's level by construction,
// and a dedent with no matching earlier level yields an UNBALANCED marker
// instead of a guess. Each embedded root keeps independent indentation
// state; lines of non-indentation grammars contribute nothing.
package indent

import (
	"github.com/dshills/interlace/internal/engine/ast"
	"github.com/dshills/interlace/internal/engine/line"
)

// Engine repairs indentation markers for a document's line index.
type Engine struct {
	idx         *line.Index
	indentBased func(*ast.Root) bool
}

// New creates an engine over the index. indentBased reports whether a root's
// grammar is indentation-delimited (resolved through the binding table).
func New(idx *line.Index, indentBased func(*ast.Root) bool) *Engine {
	return &Engine{idx: idx, indentBased: indentBased}
}

// IsLogical reports whether line y contains a real token before its line
// break: pure-whitespace lines carry no indentation state.
func (e *Engine) IsLogical(y int) bool {
	for n := e.idx.At(y).Break.Next(); n != nil; n = n.Next() {
		switch {
		case n.Kind() == ast.KindEOS:
			return false
		case n.Kind() == ast.KindBreak:
			return false
		case n.Kind() == ast.KindMarker:
		case n.IsWhitespace():
		default:
			return true
		}
	}
	return false
}

// LeadingWS returns the raw leading-whitespace count of line y. The second
// result is false for non-logical lines.
func (e *Engine) LeadingWS(y int) (int, bool) {
	if !e.IsLogical(y) {
		return 0, false
	}
	n := e.idx.At(y).Break.Next()
	for n.Kind() == ast.KindMarker {
		n = n.Next()
	}
	if n.IsWhitespace() {
		return len(n.Text()), true
	}
	return 0, true
}

// RemoveMarkers strips consecutive marker nodes starting at n and returns
// the first non-marker node.
func (e *Engine) RemoveMarkers(n *ast.Node) *ast.Node {
	for n != nil && n.Kind() == ast.KindMarker {
		next := n.Next()
		n.Remove()
		n = next
	}
	return n
}

// Rescan repairs line y and propagates forward. The loop stops once it
// reaches a line whose raw whitespace is at or below the smaller of the
// edited line's before/after whitespace AND whose recomputed markers came
// out unchanged: a line whose markers still change syntactically depends on
// the edit and must never be skipped.
func (e *Engine) Rescan(y int) {
	if !e.IsLogical(y) {
		e.RemoveMarkers(e.idx.At(y).Break.Next())
		y++
		if y < e.idx.Count() {
			for !e.IsLogical(y) {
				y++
				if y >= e.idx.Count() {
					return
				}
			}
		} else {
			y = e.idx.Count() - 1
		}
	}

	before := e.idx.At(y).WS
	e.backtrack(y)
	e.Repair(y)
	after := e.idx.At(y).WS

	threshold := min(before, after)
	currentIndent := e.idx.At(y).Indent
	currentWS, _ := e.LeadingWS(y)

	for i := y + 1; i < e.idx.Count(); i++ {
		ws, ok := e.LeadingWS(i)
		if !ok {
			continue
		}
		switch {
		case ws > currentWS:
			e.idx.At(i).Indent = currentIndent + 1
		case ws == currentWS:
			e.idx.At(i).Indent = currentIndent
		default:
			e.backtrack(i)
		}

		changed := e.Repair(i)

		if e.idx.At(i).WS <= threshold && !changed {
			return
		}
		currentWS = ws
		currentIndent = e.idx.At(i).Indent
	}
}

// backtrack derives line y's level by scanning earlier logical lines of the
// same grammar root.
func (e *Engine) backtrack(y int) {
	root := e.idx.At(y).Break.Root()
	ws, _ := e.LeadingWS(y)
	foundSmaller := false
	for dy := y - 1; dy >= 0; dy-- {
		if !e.IsLogical(dy) || e.idx.At(dy).Break.Root() != root {
			continue
		}
		prevWS, _ := e.LeadingWS(dy)
		switch {
		case ws < prevWS:
			foundSmaller = true
		case ws == prevWS:
			e.idx.At(y).Indent = e.idx.At(dy).Indent
			return
		default:
			if !foundSmaller {
				e.idx.At(y).Indent = e.idx.At(dy).Indent + 1
			}
			return
		}
	}
}

// Repair recomputes line y's markers and reports whether they changed.
// Unchanged marker sequences are kept in place to avoid needless reparsing.
func (e *Engine) Repair(y int) bool {
	newline := e.idx.At(y).Break
	root := newline.Root()
	if !e.indentBased(root) {
		return false
	}

	var fresh []ast.Marker
	if y == 0 {
		e.idx.At(0).Indent = 0
	} else if e.IsLogical(y) {
		ws, _ := e.LeadingWS(y)
		e.idx.At(y).WS = ws

		dy := y - 1
		for dy > 0 && (!e.IsLogical(dy) || e.idx.At(dy).Break.Root() != root) {
			dy--
		}
		prevWS, _ := e.LeadingWS(dy)

		switch {
		case prevWS == ws:
			e.idx.At(y).Indent = e.idx.At(dy).Indent
			fresh = []ast.Marker{ast.MarkerNewline}
		case prevWS < ws:
			e.idx.At(y).Indent = e.idx.At(dy).Indent + 1
			fresh = []ast.Marker{ast.MarkerIndent, ast.MarkerNewline}
		default:
			lvl, ok := e.findLevel(y)
			if !ok {
				fresh = []ast.Marker{ast.MarkerUnbalanced}
			} else {
				e.idx.At(y).Indent = lvl
				for i := 0; i < e.idx.At(dy).Indent-lvl; i++ {
					fresh = append(fresh, ast.MarkerDedent)
				}
				fresh = append(fresh, ast.MarkerNewline)
			}
		}
	}

	changed := !e.markersEqual(newline, fresh)
	if changed {
		e.RemoveMarkers(newline.Next())
		for _, m := range fresh {
			newline.InsertAfter(ast.NewMarker(m))
		}
	}

	if y == e.idx.Count()-1 {
		e.closeDedents(y, root)
	}
	return changed
}

// closeDedents synthesizes the closing DEDENT sequence back to level zero
// before the root's end sentinel when the final line is reached.
func (e *Engine) closeDedents(y int, root *ast.Root) {
	node := root.EOS().Prev()
	for node.Kind() == ast.KindMarker {
		prev := node.Prev()
		node.Remove()
		node = prev
	}

	for y > 0 && !e.IsLogical(y) {
		y--
	}

	for i := 0; i < e.idx.At(y).Indent; i++ {
		node.InsertAfter(ast.NewMarker(ast.MarkerDedent))
	}
	node.InsertAfter(ast.NewMarker(ast.MarkerNewline))
}

// findLevel searches backward for an earlier logical line whose whitespace
// count equals line y's; its level becomes y's. No match reports failure and
// the caller emits UNBALANCED.
func (e *Engine) findLevel(y int) (int, bool) {
	ws, _ := e.LeadingWS(y)
	for dy := y - 1; dy >= 0; dy-- {
		prevWS, ok := e.LeadingWS(dy)
		if !ok {
			continue
		}
		if prevWS == ws {
			return e.idx.At(dy).Indent, true
		}
		if prevWS < ws {
			return 0, false
		}
	}
	return 0, false
}

// markersEqual compares the markers currently after the break node (in
// insertion order, which is the reverse of chain order) with the fresh list.
func (e *Engine) markersEqual(newline *ast.Node, fresh []ast.Marker) bool {
	var current []ast.Marker
	for n := newline.Next(); n != nil && n.Kind() == ast.KindMarker; n = n.Next() {
		current = append(current, n.Marker())
	}
	if len(current) != len(fresh) {
		return false
	}
	for i := range fresh {
		if current[len(current)-1-i] != fresh[i] {
			return false
		}
	}
	return true
}

// Unbalanced reports whether line y currently carries an UNBALANCED marker,
// the soft indentation-error surface for the views.
func (e *Engine) Unbalanced(y int) bool {
	for n := e.idx.At(y).Break.Next(); n != nil && n.Kind() == ast.KindMarker; n = n.Next() {
		if n.Marker() == ast.MarkerUnbalanced {
			return true
		}
	}
	return false
}
