package engine

import (
	"github.com/dshills/interlace/internal/engine/ast"
)

// AddLanguageBox embeds a fresh language box at the cursor. A mid-node
// cursor splits the node first so the box sits between two clean text
// fragments; the cursor then enters the empty box.
func (e *Editor) AddLanguageBox(language string) error {
	root, err := e.bindRoot(language)
	if err != nil {
		return err
	}
	boundary := ast.NewBoundary(root)
	if err := e.placeBoundary(boundary); err != nil {
		return err
	}

	e.cur.Node = root.BOS()
	e.cur.Off = 0
	if err := e.reparse(boundary); err != nil {
		return err
	}
	e.changed = true
	return nil
}

// placeBoundary splices the boundary into the chain at the cursor position,
// splitting the cursor's node when the cursor sits inside it.
func (e *Editor) placeBoundary(boundary *ast.Node) error {
	node := e.cur.Node
	switch {
	case e.cur.Inside():
		head := node.Text()[:e.cur.Off]
		tail := node.Text()[e.cur.Off:]
		node.SetText(head)
		node.InsertAfter(boundary)
		after := ast.NewText(tail)
		boundary.InsertAfter(after)
		if err := e.relex(node); err != nil {
			return err
		}
		return e.relex(after)
	case e.cur.Off == 0 && node.Len() > 0:
		// cursor before the node's text: the box goes in front of it
		node.Prev().InsertAfter(boundary)
		return nil
	default:
		node.InsertAfter(boundary)
		return nil
	}
}

// SurroundWithLanguageBox cuts the selection into a fresh language box
// inserted where the selection began. The extracted text is relexed by the
// box's own grammar and the cursor ends up at the end of the box content.
func (e *Editor) SurroundWithLanguageBox(language string) error {
	if !e.HasSelection() {
		return ErrNoSelection
	}
	text := e.SelectionText()
	if err := e.deleteSelection(true); err != nil {
		return err
	}

	root, err := e.bindRoot(language)
	if err != nil {
		return err
	}
	boundary := ast.NewBoundary(root)

	content := ast.NewText(text)
	root.BOS().InsertAfter(content)
	if err := e.relex(content); err != nil {
		return err
	}
	if err := e.reparse(content); err != nil {
		return err
	}

	if err := e.placeBoundary(boundary); err != nil {
		return err
	}
	e.cur.Node = ast.PrevVisible(root.EOS())
	if !ast.Visible(e.cur.Node) {
		e.cur.Node = root.BOS()
	}
	e.cur.Off = e.cur.Node.Len()
	e.postEdit(text)
	if err := e.reparse(boundary); err != nil {
		return err
	}
	e.changed = true
	return nil
}

// LeaveLanguageBox moves the cursor across the nearest box boundary: a
// cursor at a node end followed by a boundary enters that box; a cursor
// inside a box jumps onto the embedding boundary token.
func (e *Editor) LeaveLanguageBox() {
	next := e.cur.Node.Next()
	if next != nil && next.Kind() == ast.KindBoundary && e.cur.AtEnd() {
		e.cur.Node = next.Nested().BOS()
		e.cur.Off = 0
		return
	}
	if boundary := e.cur.Node.Root().Boundary(); boundary != nil {
		e.cur.Node = boundary
		e.cur.Off = 0
	}
}
