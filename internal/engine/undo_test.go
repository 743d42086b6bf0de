package engine

import (
	"errors"
	"testing"

	"github.com/dshills/interlace/internal/engine/history"
)

func TestUndoRestoresTypedBursts(t *testing.T) {
	e := newEditor(t, "text")
	typeString(t, e, "ab cd")

	// the space opened a second burst: "ab" and " cd"
	if err := e.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "" {
		t.Errorf("expected empty document, got %q", got)
	}
	if e.CanUndo() {
		t.Error("expected undo exhausted")
	}
	if err := e.Undo(); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestRedoReplaysBursts(t *testing.T) {
	e := newEditor(t, "text")
	typeString(t, e, "ab cd")
	if err := e.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := e.Redo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
	if err := e.Redo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "ab cd" {
		t.Errorf("expected %q, got %q", "ab cd", got)
	}
	if e.CanRedo() {
		t.Error("expected redo exhausted")
	}
}

func TestUndoRedoAreInverses(t *testing.T) {
	e := newEditor(t, "text")

	// a mixed script of bursts: typing, deletion, paste
	typeString(t, e, "ab cd")
	states := []string{e.Text()}
	if err := e.Backspace(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Backspace(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	states = append(states, e.Text())
	if err := e.Paste("xy\nz"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	states = append(states, e.Text())

	// walking the log backward replays every state in reverse
	for i := len(states) - 2; i >= 0; i-- {
		if err := e.Undo(); err != nil {
			t.Fatalf("undo to state %d: %v", i, err)
		}
		if got := e.Text(); got != states[i] {
			t.Errorf("undo to state %d: expected %q, got %q", i, states[i], got)
		}
		checkLineInvariant(t, e)
	}

	// and forward again
	for i := 1; i < len(states); i++ {
		if err := e.Redo(); err != nil {
			t.Fatalf("redo to state %d: %v", i, err)
		}
		if got := e.Text(); got != states[i] {
			t.Errorf("redo to state %d: expected %q, got %q", i, states[i], got)
		}
		checkLineInvariant(t, e)
	}
}

func TestUndoLineBreakBurst(t *testing.T) {
	e := newEditor(t, "python")
	typeString(t, e, "if x:")
	before := e.Text()
	typeString(t, e, "\n")
	typeString(t, e, "    y")

	// undo the trailing burst, then the break burst
	for e.Text() != before {
		if err := e.Undo(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if e.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", e.LineCount())
	}

	// redo everything
	for e.CanRedo() {
		if err := e.Redo(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := e.Text(); got != "if x:\n    y" {
		t.Errorf("expected %q, got %q", "if x:\n    y", got)
	}
	if got := e.LineAt(1).Indent; got != 1 {
		t.Errorf("expected indent level 1 after redo, got %d", got)
	}
}

func TestUndoSelectionDeletion(t *testing.T) {
	e := newEditor(t, "text")
	if err := e.LoadString("ab cd\nef"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		e.Move(MoveRight, false)
	}
	e.StartSelection()
	e.Move(MoveDown, true)
	e.Move(MoveLeft, true)

	if err := e.DeleteSelection(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "ab f" {
		t.Fatalf("expected %q, got %q", "ab f", got)
	}

	if err := e.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "ab cd\nef" {
		t.Errorf("expected %q, got %q", "ab cd\nef", got)
	}
	checkLineInvariant(t, e)

	if err := e.Redo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "ab f" {
		t.Errorf("expected %q, got %q", "ab f", got)
	}
}

func TestMovementClosesBurst(t *testing.T) {
	e := newEditor(t, "text")
	typeString(t, e, "ab")
	e.Move(MoveLeft, false)
	e.Move(MoveRight, false)
	typeString(t, e, "cd")

	if err := e.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
}
