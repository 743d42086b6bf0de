package engine

import (
	"github.com/dshills/interlace/internal/engine/history"
)

// Undo replays the inverse of the newest coalesced entry by driving the
// same character-level insert/delete operations as ordinary edits, so line
// and indentation repair run identically.
func (e *Editor) Undo() error {
	entry, err := e.log.Undo()
	if err != nil {
		return err
	}
	e.Unselect()
	e.cur.Line = entry.EndLine
	e.cur.MoveToCol(entry.EndCol, e.lines)

	switch entry.Kind {
	case history.KindInsert:
		for range entry.Text {
			if err := e.backspace(false); err != nil {
				return err
			}
		}
	case history.KindDelete:
		// deleted text is kept in document order, so it goes back in
		// forward from the burst's leftmost point
		for _, r := range entry.Text {
			if err := e.insert(string(r), false, false); err != nil {
				return err
			}
		}
	}
	e.changed = true
	return nil
}

// Redo re-applies the next undone entry forward.
func (e *Editor) Redo() error {
	entry, err := e.log.Redo()
	if err != nil {
		return err
	}
	e.Unselect()

	switch entry.Kind {
	case history.KindInsert:
		e.cur.Line = entry.StartLine
		if entry.Text[0] == '\n' {
			// a break burst replays from the previous line's end
			e.End(false)
		} else {
			e.cur.MoveToCol(entry.StartCol, e.lines)
		}
		for _, r := range entry.Text {
			if err := e.insert(string(r), false, false); err != nil {
				return err
			}
		}
	case history.KindDelete:
		e.cur.Line = entry.EndLine
		e.cur.MoveToCol(entry.EndCol, e.lines)
		for range entry.Text {
			if err := e.deleteForward(false, false); err != nil {
				return err
			}
		}
	}
	e.changed = true
	return nil
}

// CanUndo reports whether an undo entry is available.
func (e *Editor) CanUndo() bool { return e.log.CanUndo() }

// CanRedo reports whether a redo entry is available.
func (e *Editor) CanRedo() bool { return e.log.CanRedo() }
