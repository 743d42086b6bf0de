package engine

import (
	"errors"
	"testing"
)

func TestLoadStringRoundTrip(t *testing.T) {
	e := newEditor(t, "python")
	src := "if x:\n    y = 1"
	if err := e.LoadString(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != src {
		t.Errorf("expected %q, got %q", src, got)
	}
	if got := e.LineCount(); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
	info := e.LineAt(1)
	if info.Indent != 1 {
		t.Errorf("expected indent level 1, got %d", info.Indent)
	}
	if info.WS != 4 {
		t.Errorf("expected 4 leading spaces, got %d", info.WS)
	}
	if !info.Logical {
		t.Error("expected indented line to be logical")
	}
	if line, col := e.CursorPos(); line != 0 || col != 0 {
		t.Errorf("expected cursor at document start, got (%d,%d)", line, col)
	}
	if !e.Changed() {
		t.Error("expected load to mark the document changed")
	}
	if got := e.ExportEmbedded("|"); got != src {
		t.Errorf("expected embedded export %q, got %q", src, got)
	}
	checkLineInvariant(t, e)
}

func TestLoadStringEmpty(t *testing.T) {
	e := newEditor(t, "text")
	typeString(t, e, "leftover")
	if err := e.LoadString(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "" {
		t.Errorf("expected empty document, got %q", got)
	}
	if got := e.LineCount(); got != 1 {
		t.Errorf("expected 1 line, got %d", got)
	}
}

func TestLoadStringNormalizesLineEndings(t *testing.T) {
	e := newEditor(t, "text")
	if err := e.LoadString("a\r\nb\rc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "a\nb\nc" {
		t.Errorf("expected %q, got %q", "a\nb\nc", got)
	}
	if got := e.LineCount(); got != 3 {
		t.Errorf("expected 3 lines, got %d", got)
	}
	checkLineInvariant(t, e)
}

func TestInsertTextNormalizesLineEndings(t *testing.T) {
	e := newEditor(t, "text")
	typeString(t, e, "ab")
	if err := e.InsertText("\r"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "ab\n" {
		t.Errorf("expected %q, got %q", "ab\n", got)
	}
	if line, col := e.CursorPos(); line != 1 || col != 0 {
		t.Errorf("expected cursor at (1,0), got (%d,%d)", line, col)
	}
	checkLineInvariant(t, e)
}

func TestFindTextSelectsMatch(t *testing.T) {
	e := newEditor(t, "text")
	if err := e.LoadString("ab cd\nef ab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := e.FindText("ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if got := e.SelectionText(); got != "ab" {
		t.Errorf("expected selection %q, got %q", "ab", got)
	}
	if line, col := e.CursorPos(); line != 0 || col != 2 {
		t.Errorf("expected cursor at (0,2), got (%d,%d)", line, col)
	}
}

func TestFindNextWrapsAround(t *testing.T) {
	e := newEditor(t, "text")
	if err := e.LoadString("ab cd\nef ab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found, err := e.FindText("ab"); err != nil || !found {
		t.Fatalf("first match: found=%v err=%v", found, err)
	}

	// second occurrence lives on the next line
	found, err := e.FindNext()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a second match")
	}
	if line, col := e.CursorPos(); line != 1 || col != 5 {
		t.Errorf("expected cursor at (1,5), got (%d,%d)", line, col)
	}

	// the search wraps past the end sentinel back to the first match
	found, err = e.FindNext()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected the search to wrap")
	}
	if line, col := e.CursorPos(); line != 0 || col != 2 {
		t.Errorf("expected cursor at (0,2), got (%d,%d)", line, col)
	}
}

func TestFindTextNoMatch(t *testing.T) {
	e := newEditor(t, "text")
	if err := e.LoadString("ab cd"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, err := e.FindText("zz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected no match")
	}
}

func TestFindTextEmptyPattern(t *testing.T) {
	e := newEditor(t, "text")
	if _, err := e.FindText(""); !errors.Is(err, ErrEmptySearch) {
		t.Errorf("expected ErrEmptySearch, got %v", err)
	}
	if _, err := e.FindNext(); !errors.Is(err, ErrEmptySearch) {
		t.Errorf("expected ErrEmptySearch, got %v", err)
	}
}

func TestFindTextDescendsIntoBoxes(t *testing.T) {
	e := newEditor(t, "text")
	typeString(t, e, "ab")
	if err := e.AddLanguageBox("sql"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	typeString(t, e, "SELECT")

	found, err := e.FindText("ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected the search to leave the box and wrap")
	}
	if got := e.SelectionText(); got != "ab" {
		t.Errorf("expected selection %q, got %q", "ab", got)
	}
}

func TestExportRootFlattensOneGrammar(t *testing.T) {
	e := newEditor(t, "text")
	typeString(t, e, "ab")
	if err := e.AddLanguageBox("sql"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	typeString(t, e, "SELECT")

	if got := e.ExportRoot(e.CursorNode().Root()); got != "SELECT" {
		t.Errorf("expected %q, got %q", "SELECT", got)
	}
	if got := e.Text(); got != "abSELECT" {
		t.Errorf("expected %q, got %q", "abSELECT", got)
	}
}

func TestClearResetsEditor(t *testing.T) {
	e := newEditor(t, "text")
	typeString(t, e, "ab cd\n")
	if err := e.AddLanguageBox("sql"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	typeString(t, e, "SELECT")

	if err := e.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "" {
		t.Errorf("expected empty document, got %q", got)
	}
	if got := e.LineCount(); got != 1 {
		t.Errorf("expected 1 line, got %d", got)
	}
	if got := e.BoxCount(); got != 0 {
		t.Errorf("expected 0 boxes, got %d", got)
	}
	if e.Changed() {
		t.Error("expected clear to reset the changed flag")
	}
	if e.CanUndo() {
		t.Error("expected clear to drop the undo history")
	}
	if line, col := e.CursorPos(); line != 0 || col != 0 {
		t.Errorf("expected cursor at (0,0), got (%d,%d)", line, col)
	}
}
