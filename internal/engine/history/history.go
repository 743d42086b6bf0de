// Package history implements the coalescing undo/redo log. Consecutive
// same-kind edits accumulate into one entry until a pure space, a line break
// or a kind change interrupts the burst; undo and redo replay entries
// through the edit engine's own character operations so every repair step
// runs identically. The log is a bounded ring: once the cap is exceeded the
// oldest entry is dropped, an accepted, irreversible loss of history.
package history

import (
	"errors"
	"strings"

	"github.com/rivo/uniseg"
)

// Errors returned by log operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultLimit bounds the log when no cap is configured.
const DefaultLimit = 100

// Kind is the command kind of an entry.
type Kind uint8

const (
	// KindNone marks the log as between bursts.
	KindNone Kind = iota
	// KindInsert accumulates typed text.
	KindInsert
	// KindDelete accumulates deleted text.
	KindDelete
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Entry is one coalesced burst of same-kind edits. The start coordinates
// locate the burst's first character, the end coordinates the cursor after
// the last; both are needed to replay in either direction.
type Entry struct {
	Kind      Kind
	Text      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Log is the bounded, coalescing undo/redo stack.
type Log struct {
	entries []*Entry
	pos     int // index of the entry undo would replay; -1 when none
	mode    Kind
	limit   int
}

// NewLog creates a log bounded to limit entries; limit <= 0 uses the
// default.
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{pos: -1, limit: limit}
}

// RecordInsert appends one insertion performed at the cursor's (line, col)
// after the edit. It coalesces into the open burst unless the text
// interrupts (a pure space or a leading line break) or the kind changes; a
// new entry truncates any redo tail.
func (l *Log) RecordInsert(text string, lineNo, col int) {
	l.record(KindInsert, text, lineNo, col, false)
}

// RecordDelete appends one deletion. backward marks a backspace-driven
// delete, whose text is prepended so the accumulated burst stays in
// document order regardless of deletion direction.
func (l *Log) RecordDelete(text string, lineNo, col int, backward bool) {
	l.record(KindDelete, text, lineNo, col, backward)
}

func (l *Log) record(kind Kind, text string, lineNo, col int, prepend bool) {
	if text == "" {
		return
	}
	if text == " " || text[0] == '\n' {
		l.mode = KindNone
	}

	if l.mode != kind {
		l.entries = l.entries[:l.pos+1]
		e := &Entry{
			Kind:      kind,
			Text:      text,
			StartLine: lineNo,
			StartCol:  col,
			EndLine:   lineNo,
			EndCol:    col,
		}
		if kind == KindInsert {
			// a burst opening with a line break began at the previous
			// line's end
			e.StartLine = lineNo - strings.Count(text, "\n")
			e.StartCol = max(0, col-uniseg.GraphemeClusterCount(text))
		}
		l.entries = append(l.entries, e)
		l.pos++
		l.mode = kind
	} else {
		e := l.entries[len(l.entries)-1]
		if prepend {
			e.Text = text + e.Text
		} else {
			e.Text += text
		}
		e.EndLine = lineNo
		e.EndCol = col
	}

	if len(l.entries) > l.limit {
		l.entries = l.entries[1:]
		l.pos--
	}
}

// RecordSpan appends one pre-closed entry with explicit coordinates, used
// for block operations like paste whose start the coalescing record cannot
// reconstruct. The open burst is interrupted on both sides.
func (l *Log) RecordSpan(kind Kind, text string, startLine, startCol, endLine, endCol int) {
	if text == "" {
		return
	}
	l.entries = l.entries[:l.pos+1]
	l.entries = append(l.entries, &Entry{
		Kind:      kind,
		Text:      text,
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
	})
	l.pos++
	l.mode = KindNone
	if len(l.entries) > l.limit {
		l.entries = l.entries[1:]
		l.pos--
	}
}

// Finish freezes the open burst; the next edit starts a new entry. Cursor
// movement between edits calls this.
func (l *Log) Finish() { l.mode = KindNone }

// Undo returns the entry to replay inversely and steps the position back.
func (l *Log) Undo() (*Entry, error) {
	l.mode = KindNone
	if l.pos < 0 {
		return nil, ErrNothingToUndo
	}
	e := l.entries[l.pos]
	l.pos--
	return e, nil
}

// Redo returns the entry to re-apply forward and steps the position up.
func (l *Log) Redo() (*Entry, error) {
	if l.pos+1 >= len(l.entries) {
		return nil, ErrNothingToRedo
	}
	l.pos++
	return l.entries[l.pos], nil
}

// CanUndo reports whether an entry is available to undo.
func (l *Log) CanUndo() bool { return l.pos >= 0 }

// CanRedo reports whether an entry is available to redo.
func (l *Log) CanRedo() bool { return l.pos+1 < len(l.entries) }

// Len returns the number of entries held.
func (l *Log) Len() int { return len(l.entries) }

// Limit returns the configured cap.
func (l *Log) Limit() int { return l.limit }
