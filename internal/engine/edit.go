package engine

import (
	"strings"

	"github.com/dshills/interlace/internal/engine/ast"
	"github.com/dshills/interlace/internal/engine/history"
)

// InsertRune applies one typed character at the cursor. Inserting a line
// break carries over the enclosing line's indentation whitespace.
func (e *Editor) InsertRune(r rune) error {
	return e.insert(string(r), true, true)
}

// InsertText applies a typed string at the cursor; line endings are
// normalized first.
func (e *Editor) InsertText(s string) error {
	return e.insert(normalize(s), true, true)
}

// insert is the single insertion pipeline. undo records the edit; carry
// appends the inherited indentation after a leading line break.
func (e *Editor) insert(text string, undo, carry bool) error {
	if text == "" {
		return nil
	}
	if e.HasSelection() {
		if err := e.deleteSelection(undo); err != nil {
			return err
		}
	}

	if carry && text == ast.LineBreak {
		if ws, ok := e.indents.LeadingWS(e.cur.Line); ok {
			text += strings.Repeat(" ", ws)
		}
	}

	// typing on a boundary token enters its box first
	if e.cur.Node.Kind() == ast.KindBoundary {
		e.cur.Node = e.cur.Node.Nested().BOS()
		e.cur.Off = 0
	}

	node := e.cur.Node
	if e.cur.Inside() {
		node.InsertText(e.cur.Off, text)
	} else {
		pos := 0
		switch {
		case text[0] == '\n':
			// breaks never extend an existing token
			fresh := ast.NewText("")
			node.InsertAfter(fresh)
			node = fresh
			e.cur.Off = 0
		case node.Kind() == ast.KindBOS || node.Kind() == ast.KindBreak || node.Kind() == ast.KindBoundary:
			// structural tokens are never mutated: open a fresh node after
			// them (and after any markers trailing a break)
			anchor := node
			if next := anchor.Next(); next != nil {
				for next.Kind() == ast.KindMarker {
					next = next.Next()
				}
				anchor = next.Prev()
			}
			node = ast.NewText("")
			anchor.InsertAfter(node)
			e.cur.Off = 0
		default:
			pos = e.cur.Off
		}
		node.InsertText(pos, text)
		e.cur.Node = node
	}
	e.cur.Off += len(text)

	if err := e.relex(node); err != nil {
		return err
	}
	e.cur.Fix()
	e.postEdit(text)
	if err := e.reparse(node); err != nil {
		return err
	}
	if undo {
		e.log.RecordInsert(text, e.cur.Line, e.cur.Col())
	}
	e.changed = true
	return nil
}

// Backspace moves the cursor one position left and deletes forward. At the
// document start it is a no-op: nothing is mutated.
func (e *Editor) Backspace() error { return e.backspace(true) }

func (e *Editor) backspace(undo bool) error {
	if e.HasSelection() {
		return e.deleteSelection(undo)
	}
	if e.cur.Node.Kind() == ast.KindBOS && e.cur.Node.Root() == e.main {
		return nil
	}
	if e.cur.Node.Kind() == ast.KindBreak {
		// crossing onto the previous line
		e.cur.Node = ast.PrevVisible(e.cur.Node)
		e.cur.Line--
		e.cur.Off = e.cur.Node.Len()
	} else {
		e.cur.Left()
	}
	return e.deleteForward(undo, true)
}

// DeleteForward removes one visible character right of the cursor, or the
// whole selection when one is active. Deleting a line break merges the two
// line records; a node emptied by the deletion is spliced out; a language
// box emptied by the deletion is removed along with its binding.
func (e *Editor) DeleteForward() error { return e.deleteForward(true, false) }

func (e *Editor) deleteForward(undo, backward bool) error {
	if e.HasSelection() {
		return e.deleteSelection(undo)
	}

	// deleting on a boundary token enters its box first
	if e.cur.Node.Kind() == ast.KindBoundary {
		e.cur.Node = e.cur.Node.Nested().BOS()
		e.cur.Off = 0
		return e.deleteForward(undo, backward)
	}

	node := e.cur.Node
	var repair *ast.Node

	if e.cur.Inside() {
		e.lastDeleted = node.DeleteRune(e.cur.Off)
		repair = node
		if err := e.relex(node); err != nil {
			return err
		}
	} else {
		// delete edits the visible node right of the cursor
		node = ast.NextVisible(node)
		if node.Kind() == ast.KindEOS {
			return nil // document end
		}
		if node.Kind() == ast.KindBreak {
			e.indents.RemoveMarkers(node.Next())
			e.lines.Delete(e.cur.Line, node)
		}
		e.lastDeleted = node.DeleteRune(0)
		repair = node

		if node.Len() == 0 {
			repair = ast.PrevVisible(node)
			root := node.Root()
			node.Remove()
			if boundary := root.Boundary(); boundary != nil && chainEmpty(root) {
				// the language box collapsed to its sentinels: remove the
				// box and its sub-parser/sub-lexer binding
				e.cur.Node = ast.PrevVisible(boundary)
				e.cur.Off = e.cur.Node.Len()
				repair = e.cur.Node
				boundary.Remove()
				e.bindings.Remove(root)
			}
		}
		if repair != nil && repair.Kind() != ast.KindBOS {
			if err := e.relex(repair); err != nil {
				return err
			}
		}
	}

	e.postEdit("")
	if repair != nil {
		if err := e.reparse(repair); err != nil {
			return err
		}
	}
	if undo {
		e.log.RecordDelete(e.lastDeleted, e.cur.Line, e.cur.Col(), backward)
	}
	e.changed = true
	return nil
}

// chainEmpty reports whether a root's chain holds nothing but sentinels and
// synthetic markers.
func chainEmpty(root *ast.Root) bool {
	for n := root.BOS().Next(); n != nil && n != root.EOS(); n = n.Next() {
		if n.Kind() != ast.KindMarker {
			return false
		}
	}
	return true
}

// selectionSpan extracts the node span covered by the selection via chain
// traversal between the two cursors, entering and leaving boxes as needed.
// It returns the visible nodes in order, the trim offsets applying to the
// first and last node, and the roots of any boxes the span crossed into.
func (e *Editor) selectionSpan() (nodes []*ast.Node, startOff, endOff int, crossed []*ast.Root) {
	a, b := e.sel.Ordered()
	if a.Equal(&b) {
		return nil, 0, 0, nil
	}

	startNode := a.Node
	includeStart := false
	if a.Inside() {
		startOff = a.Off
		includeStart = true
	}

	endNode := b.Node
	endOff = endNode.Len()
	if b.Inside() {
		endOff = b.Off
	}

	if startNode == endNode {
		return []*ast.Node{startNode}, startOff, endOff, nil
	}

	if includeStart {
		nodes = append(nodes, startNode)
	}
	outer := startNode.Root()
	for n := ast.NextTerm(startNode); n != nil && n != endNode; n = ast.NextTerm(n) {
		if n.Kind() == ast.KindBoundary {
			crossed = append(crossed, n.Nested())
			continue
		}
		if n.Root() != outer && n.Kind() == ast.KindBOS {
			continue
		}
		if ast.Visible(n) {
			nodes = append(nodes, n)
		}
	}
	nodes = append(nodes, endNode)
	return nodes, startOff, endOff, crossed
}

// SelectionText renders the selection by concatenating the trimmed node
// texts, skipping structural tokens.
func (e *Editor) SelectionText() string {
	nodes, so, eo, _ := e.selectionSpan()
	if nodes == nil {
		return ""
	}
	if len(nodes) == 1 {
		return nodes[0].Text()[so:eo]
	}
	var sb strings.Builder
	sb.WriteString(nodes[0].Text()[so:])
	for _, n := range nodes[1 : len(nodes)-1] {
		sb.WriteString(n.Text())
	}
	sb.WriteString(nodes[len(nodes)-1].Text()[:eo])
	return sb.String()
}

// DeleteSelection removes the selected span: the edge nodes are trimmed to
// the selection edges, fully covered interior nodes are removed, emptied
// edge nodes are spliced out, and the line records the span covered are
// dropped. Boxes emptied by the span are removed with their bindings.
func (e *Editor) DeleteSelection() error { return e.deleteSelection(true) }

func (e *Editor) deleteSelection(undo bool) error {
	if !e.HasSelection() {
		return ErrNoSelection
	}
	text := e.SelectionText()
	nodes, so, eo, crossed := e.selectionSpan()
	if nodes == nil {
		return nil
	}
	a, b := e.sel.Ordered()
	repairAnchor := nodes[0].Prev()

	if len(nodes) == 1 {
		n := nodes[0]
		if so == 0 && eo == n.Len() {
			e.removeNode(n)
		} else {
			n.SetText(n.Text()[:so] + n.Text()[eo:])
			removeIfEmpty(n)
		}
	} else {
		first, last := nodes[0], nodes[len(nodes)-1]
		for _, n := range nodes[1 : len(nodes)-1] {
			e.removeNode(n)
		}
		e.trimEdge(first, first.Text()[:so])
		e.trimEdge(last, last.Text()[eo:])
	}

	// boxes fully inside the span collapse to their sentinels
	for _, root := range crossed {
		if boundary := root.Boundary(); boundary != nil && !boundary.Deleted() && chainEmpty(root) {
			boundary.Remove()
			e.bindings.Remove(root)
		}
	}

	// anchor the cursor on a live node before relexing: the relex may
	// merge tokens across the deletion point and must not carry the
	// cursor past them
	e.cur = a.Clone()
	e.cur.Fix()

	repair := repairAnchor.Next() // first node was possibly deleted
	if err := e.relex(repair); err != nil {
		return err
	}
	e.cur.Fix()
	e.lines.RemoveRange(a.Line, b.Line)
	e.sel.Collapse(e.cur)

	e.postEdit("")
	if err := e.reparse(repair); err != nil {
		return err
	}
	if undo {
		e.log.RecordDelete(text, e.cur.Line, e.cur.Col(), false)
	}
	e.changed = true
	return nil
}

// removeNode splices a node out of the chain. A removed line break takes
// the indentation markers anchored to it along, so no marker is left
// stranded mid-line.
func (e *Editor) removeNode(n *ast.Node) {
	if n.Kind() == ast.KindBreak {
		e.indents.RemoveMarkers(n.Next())
	}
	n.Remove()
}

// trimEdge rewrites an edge node of a deleted span, removing it when the
// span covered it fully.
func (e *Editor) trimEdge(n *ast.Node, remaining string) {
	if n.Deleted() {
		return
	}
	if remaining == "" {
		e.removeNode(n)
		return
	}
	if n.Kind() == ast.KindText {
		n.SetText(remaining)
	}
}

func removeIfEmpty(n *ast.Node) {
	if n.Len() == 0 {
		n.Remove()
	}
}

// Copy returns the selected text without mutating the document.
func (e *Editor) Copy() string { return e.SelectionText() }

// Cut removes and returns the selected text.
func (e *Editor) Cut() (string, error) {
	if !e.HasSelection() {
		return "", ErrNoSelection
	}
	text := e.SelectionText()
	if err := e.deleteSelection(true); err != nil {
		return "", err
	}
	return text, nil
}

// Paste splices text at the cursor, replacing the selection when one is
// active. Line endings are normalized to the internal representation.
func (e *Editor) Paste(text string) error {
	if text == "" {
		return nil
	}
	if e.HasSelection() {
		if err := e.deleteSelection(true); err != nil {
			return err
		}
	}
	text = normalize(text)
	startLine, startCol := e.cur.Line, e.cur.Col()

	node := e.cur.Node
	if e.cur.Inside() {
		node.InsertText(e.cur.Off, text)
	} else {
		pos := 0
		if node.Kind() == ast.KindBOS || node.Kind() == ast.KindBreak || node.Kind() == ast.KindBoundary {
			anchor := node
			if next := anchor.Next(); next != nil {
				for next.Kind() == ast.KindMarker {
					next = next.Next()
				}
				anchor = next.Prev()
			}
			node = ast.NewText("")
			anchor.InsertAfter(node)
			e.cur.Off = 0
		} else {
			pos = e.cur.Off
		}
		node.InsertText(pos, text)
		e.cur.Node = node
	}
	e.cur.Off += len(text)

	if err := e.relex(node); err != nil {
		return err
	}
	e.postEdit(text)
	if err := e.reparse(node); err != nil {
		return err
	}
	e.cur.Fix()
	e.log.RecordSpan(history.KindInsert, text, startLine, startCol, e.cur.Line, e.cur.Col())
	e.changed = true
	return nil
}
