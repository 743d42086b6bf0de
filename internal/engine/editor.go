package engine

import (
	"fmt"
	"strings"

	"github.com/dshills/interlace/internal/engine/ast"
	"github.com/dshills/interlace/internal/engine/cursor"
	"github.com/dshills/interlace/internal/engine/history"
	"github.com/dshills/interlace/internal/engine/indent"
	"github.com/dshills/interlace/internal/engine/lang"
	"github.com/dshills/interlace/internal/engine/line"
)

// Re-export the position and log kinds callers deal in.
type (
	// Cursor is a (node, offset, line) document position.
	Cursor = cursor.Cursor

	// Selection is a pair of cursors.
	Selection = cursor.Selection
)

// Direction selects a cursor movement.
type Direction uint8

const (
	// MoveLeft steps one visible grapheme left.
	MoveLeft Direction = iota
	// MoveRight steps one visible grapheme right.
	MoveRight
	// MoveUp steps one line up, preserving the column.
	MoveUp
	// MoveDown steps one line down, preserving the column.
	MoveDown
)

// Editor is the edit engine for one document. It owns the outermost grammar
// root, the line index, the cursor and the undo log, and dispatches relex
// and reparse through the binding table. All operations are synchronous and
// single-threaded: one edit runs to completion before the next is accepted.
type Editor struct {
	registry *lang.Registry
	bindings *lang.Bindings
	main     *ast.Root
	mainLang string
	lines    *line.Index
	indents  *indent.Engine
	log      *history.Log
	cur      cursor.Cursor
	sel      cursor.Selection

	undoLimit   int
	changed     bool
	lastDeleted string
	lastSearch  string
}

// Option configures an Editor.
type Option func(*Editor)

// WithUndoLimit bounds the undo log; values <= 0 keep the default.
func WithUndoLimit(n int) Option {
	return func(e *Editor) { e.undoLimit = n }
}

// New creates an empty document in the given main language.
func New(registry *lang.Registry, mainLanguage string, opts ...Option) (*Editor, error) {
	e := &Editor{
		registry: registry,
		bindings: lang.NewBindings(),
		mainLang: mainLanguage,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = history.NewLog(e.undoLimit)

	root, err := e.bindRoot(mainLanguage)
	if err != nil {
		return nil, err
	}
	e.main = root
	e.lines = line.NewIndex(root)
	e.indents = indent.New(e.lines, e.indentationBased)
	e.cur = cursor.New(root.BOS(), 0, 0)
	e.sel.Collapse(e.cur)
	return e, nil
}

// SetRegistry swaps the grammar registry. Existing bindings keep their
// lexer/parser pairs; the new set applies to roots bound afterwards.
func (e *Editor) SetRegistry(r *lang.Registry) {
	e.registry = r
}

// bindRoot creates a fresh root for the language and registers its
// lexer/parser pair in the binding table.
func (e *Editor) bindRoot(language string) (*ast.Root, error) {
	lg, err := e.registry.Lookup(language)
	if err != nil {
		return nil, err
	}
	root := ast.NewRoot(lg.Name)
	parser := lg.NewParser()
	if err := e.bindings.Add(root, lg.NewLexer(), parser, lg.Name); err != nil {
		return nil, err
	}
	// initial parse of the empty chain
	if err := parser.Reparse(root.BOS()); err != nil {
		return nil, fmt.Errorf("initial reparse: %w", err)
	}
	return root, nil
}

func (e *Editor) indentationBased(r *ast.Root) bool {
	lx, err := e.bindings.LexerFor(r)
	if err != nil {
		return false
	}
	return lx.IsIndentationBased()
}

// relex dispatches the incremental lexer owning n's root.
func (e *Editor) relex(n *ast.Node) error {
	lx, err := e.bindings.LexerFor(n.Root())
	if err != nil {
		return err
	}
	return lx.Relex(n)
}

// reparse dispatches the incremental parser owning n's root.
func (e *Editor) reparse(n *ast.Node) error {
	p, err := e.bindings.ParserFor(n.Root())
	if err != nil {
		return err
	}
	return p.Reparse(n)
}

// postEdit repairs the line index and indentation starting at the current
// line: every mutation that changed node adjacency or line count passes
// through here before the operation returns. The cursor sits at the end of
// the spliced text, so its line advances by the break count of that text.
func (e *Editor) postEdit(text string) {
	added := e.lines.Rescan(e.cur.Line)
	for i := 0; i <= added; i++ {
		e.indents.Rescan(e.cur.Line + i)
	}
	e.cur.Line += strings.Count(text, ast.LineBreak)
}

// Move moves the cursor, extending the selection when extend is set.
// Movement freezes the open undo burst.
func (e *Editor) Move(dir Direction, extend bool) {
	e.log.Finish()
	switch dir {
	case MoveLeft:
		e.cur.Left()
	case MoveRight:
		e.cur.Right()
	case MoveUp:
		e.cur.Up(e.lines)
	case MoveDown:
		e.cur.Down(e.lines)
	}
	if extend {
		e.sel.End = e.cur.Clone()
	} else {
		e.Unselect()
	}
}

// Home moves to the start of the current line.
func (e *Editor) Home(extend bool) {
	e.log.Finish()
	e.cur.Node = e.lines.At(e.cur.Line).Break
	e.cur.Off = e.cur.Node.Len()
	if extend {
		e.sel.End = e.cur.Clone()
	} else {
		e.Unselect()
	}
}

// End moves to the end of the current line.
func (e *Editor) End(extend bool) {
	e.log.Finish()
	if e.cur.Line < e.lines.Count()-1 {
		e.cur.Node = ast.PrevVisible(e.lines.At(e.cur.Line + 1).Break)
	} else {
		e.cur.Node = ast.PrevVisible(e.main.EOS())
	}
	e.cur.Off = e.cur.Node.Len()
	if extend {
		e.sel.End = e.cur.Clone()
	} else {
		e.Unselect()
	}
}

// StartSelection anchors a new selection at the cursor.
func (e *Editor) StartSelection() {
	e.sel.Start = e.cur.Clone()
	e.sel.End = e.cur.Clone()
}

// Unselect collapses the selection onto the cursor.
func (e *Editor) Unselect() {
	e.sel.Collapse(e.cur)
}

// HasSelection reports whether a non-empty selection is active.
func (e *Editor) HasSelection() bool { return !e.sel.IsEmpty() }

// Read-only views

// CursorPos returns the cursor's line and column.
func (e *Editor) CursorPos() (lineNo, col int) {
	return e.cur.Line, e.cur.Col()
}

// CursorNode returns the node the cursor sits on.
func (e *Editor) CursorNode() *ast.Node { return e.cur.Node }

// LineCount returns the number of line records.
func (e *Editor) LineCount() int { return e.lines.Count() }

// LineInfo is the per-line view surfaced to rendering and analysis layers.
type LineInfo struct {
	Indent     int
	WS         int
	Width      int
	Logical    bool
	Unbalanced bool
}

// LineAt returns the view of line y.
func (e *Editor) LineAt(y int) LineInfo {
	l := e.lines.At(y)
	return LineInfo{
		Indent:     l.Indent,
		WS:         l.WS,
		Width:      l.Width,
		Logical:    e.indents.IsLogical(y),
		Unbalanced: e.indents.Unbalanced(y),
	}
}

// ErrorOn reports the parse error message for a node when any bound parser
// marked it. Parse errors are local and recoverable: editing continues on a
// tree with a marked error region.
func (e *Editor) ErrorOn(n *ast.Node) (string, bool) {
	return e.bindings.ErrorOn(n)
}

// Languages returns the active language bindings, main root first.
func (e *Editor) Languages() []string {
	binds := e.bindings.All()
	names := make([]string, len(binds))
	for i, b := range binds {
		names[i] = b.Language
	}
	return names
}

// BoxCount returns the number of active language boxes (bindings beyond the
// main root).
func (e *Editor) BoxCount() int { return e.bindings.Len() - 1 }

// Changed reports whether the document was modified since the last
// ClearChanged.
func (e *Editor) Changed() bool { return e.changed }

// ClearChanged resets the modification flag.
func (e *Editor) ClearChanged() { e.changed = false }

// normalize converts all line endings to the internal representation.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", ast.LineBreak)
	s = strings.ReplaceAll(s, "\r", ast.LineBreak)
	return s
}
