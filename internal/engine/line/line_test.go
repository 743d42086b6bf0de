package line

import (
	"testing"

	"github.com/dshills/interlace/internal/engine/ast"
)

func chainOf(r *ast.Root, nodes ...*ast.Node) {
	cur := r.BOS()
	for _, n := range nodes {
		cur.InsertAfter(n)
		cur = n
	}
}

func TestNewIndexHoldsOneLine(t *testing.T) {
	main := ast.NewRoot("text")
	ix := NewIndex(main)
	if ix.Count() != 1 {
		t.Fatalf("expected 1 line, got %d", ix.Count())
	}
	if ix.At(0).Break != main.BOS() {
		t.Error("expected line 0 anchored at BOS")
	}
}

func TestRescanAddsOneLinePerBreak(t *testing.T) {
	main := ast.NewRoot("text")
	b1 := ast.NewBreak()
	b2 := ast.NewBreak()
	chainOf(main, ast.NewText("a"), b1, ast.NewText("bb"), b2, ast.NewText("c"))

	ix := NewIndex(main)
	added := ix.Rescan(0)

	if added != 2 {
		t.Errorf("expected 2 lines added, got %d", added)
	}
	if ix.Count() != 3 {
		t.Fatalf("expected 3 lines, got %d", ix.Count())
	}
	if ix.At(1).Break != b1 || ix.At(2).Break != b2 {
		t.Error("expected lines anchored at their break nodes")
	}
	if w := ix.At(0).Width; w != 1 {
		t.Errorf("expected line 0 width 1, got %d", w)
	}
	if w := ix.At(1).Width; w != 2 {
		t.Errorf("expected line 1 width 2, got %d", w)
	}
}

func TestRescanStopsAtNextAnchor(t *testing.T) {
	main := ast.NewRoot("text")
	b1 := ast.NewBreak()
	b2 := ast.NewBreak()
	chainOf(main, b1, b2)

	ix := NewIndex(main)
	ix.Rescan(0)
	if ix.Count() != 3 {
		t.Fatalf("expected 3 lines, got %d", ix.Count())
	}

	// a rescan of line 1 walks only up to line 2's anchor
	mid := ast.NewBreak()
	b1.InsertAfter(mid)
	added := ix.Rescan(1)
	if added != 1 {
		t.Errorf("expected 1 line added, got %d", added)
	}
	if ix.At(2).Break != mid || ix.At(3).Break != b2 {
		t.Error("expected new line inserted between existing anchors")
	}
}

func TestRescanCountsBoxBreaks(t *testing.T) {
	main := ast.NewRoot("text")
	inner := ast.NewRoot("sql")
	innerBrk := ast.NewBreak()
	chainOf(inner, ast.NewText("SELECT"), innerBrk, ast.NewText("1"))
	box := ast.NewBoundary(inner)
	chainOf(main, ast.NewText("x"), box, ast.NewText("y"))

	ix := NewIndex(main)
	added := ix.Rescan(0)

	// the break inside the box counts as a document line
	if added != 1 {
		t.Errorf("expected 1 line added, got %d", added)
	}
	if ix.At(1).Break != innerBrk {
		t.Error("expected line 1 anchored inside the box")
	}
}

func TestDeleteMergesLines(t *testing.T) {
	main := ast.NewRoot("text")
	brk := ast.NewBreak()
	chainOf(main, ast.NewText("a"), brk, ast.NewText("b"))

	ix := NewIndex(main)
	ix.Rescan(0)
	if ix.Count() != 2 {
		t.Fatalf("expected 2 lines, got %d", ix.Count())
	}

	ix.Delete(0, brk)
	if ix.Count() != 1 {
		t.Errorf("expected 1 line after merge, got %d", ix.Count())
	}
}

func TestDeleteWrongAnchorPanics(t *testing.T) {
	main := ast.NewRoot("text")
	brk := ast.NewBreak()
	chainOf(main, brk)
	ix := NewIndex(main)
	ix.Rescan(0)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched anchor")
		}
	}()
	ix.Delete(0, ast.NewBreak())
}

func TestRemoveRange(t *testing.T) {
	main := ast.NewRoot("text")
	chainOf(main, ast.NewBreak(), ast.NewBreak(), ast.NewBreak())
	ix := NewIndex(main)
	ix.Rescan(0)
	if ix.Count() != 4 {
		t.Fatalf("expected 4 lines, got %d", ix.Count())
	}

	ix.RemoveRange(0, 2)
	if ix.Count() != 2 {
		t.Errorf("expected 2 lines, got %d", ix.Count())
	}

	ix.RemoveRange(1, 1)
	if ix.Count() != 2 {
		t.Errorf("expected empty range to change nothing, got %d", ix.Count())
	}
}

func TestReset(t *testing.T) {
	main := ast.NewRoot("text")
	chainOf(main, ast.NewBreak())
	ix := NewIndex(main)
	ix.Rescan(0)

	fresh := ast.NewRoot("text")
	ix.Reset(fresh)
	if ix.Count() != 1 {
		t.Errorf("expected 1 line after reset, got %d", ix.Count())
	}
	if ix.At(0).Break != fresh.BOS() {
		t.Error("expected line 0 re-anchored at the new root")
	}
}
