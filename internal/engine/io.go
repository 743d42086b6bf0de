package engine

import (
	"strings"

	"github.com/dshills/interlace/internal/engine/ast"
	"github.com/dshills/interlace/internal/engine/cursor"
	"github.com/dshills/interlace/internal/engine/history"
)

// Clear resets the editor to an empty document in the main language,
// dropping every language-box binding and the undo history.
func (e *Editor) Clear() error {
	for _, b := range e.bindings.All() {
		e.bindings.Remove(b.Root)
	}
	root, err := e.bindRoot(e.mainLang)
	if err != nil {
		return err
	}
	e.main = root
	e.lines.Reset(root)
	e.log = history.NewLog(e.undoLimit)
	e.cur = cursor.New(root.BOS(), 0, 0)
	e.sel.Collapse(e.cur)
	e.changed = false
	return nil
}

// LoadString imports a flat string as the document body: line endings are
// normalized, the text is spliced in and lexed, then line and indentation
// repair run once over the whole document.
func (e *Editor) LoadString(text string) error {
	if err := e.Clear(); err != nil {
		return err
	}
	text = normalize(text)
	if text == "" {
		return nil
	}

	bos := e.main.BOS()
	body := ast.NewText(text)
	bos.InsertAfter(body)
	if err := e.relex(body); err != nil {
		return err
	}
	e.lines.Rescan(0)
	for y := 0; y < e.lines.Count(); y++ {
		e.indents.Repair(y)
	}
	if err := e.reparse(bos); err != nil {
		return err
	}
	e.cur = cursor.New(bos, 0, 0)
	e.sel.Collapse(e.cur)
	e.changed = true
	return nil
}

// Text returns the flattened visible text of the whole document: language
// boxes are substituted by their exported text, recursively.
func (e *Editor) Text() string {
	return exportFrom(e.main)
}

// ExportRoot flattens one grammar root, nested boxes included.
func (e *Editor) ExportRoot(root *ast.Root) string {
	return exportFrom(root)
}

func exportFrom(root *ast.Root) string {
	var sb strings.Builder
	for n := ast.NextTerm(root.BOS()); n != nil && n != root.EOS(); n = ast.NextTerm(n) {
		if ast.Visible(n) {
			sb.WriteString(n.Text())
		}
	}
	return sb.String()
}

// ExportEmbedded flattens the document, fencing each language box's content
// with the given delimiter on both sides. Back ends that splice embedded
// code into host-language stubs consume this form.
func (e *Editor) ExportEmbedded(fence string) string {
	var sb strings.Builder
	for n := ast.NextTerm(e.main.BOS()); n != nil && n != e.main.EOS(); n = ast.NextTerm(n) {
		switch {
		case n.Kind() == ast.KindBoundary:
			sb.WriteString(fence)
		case n.Kind() == ast.KindEOS && n.Root().Boundary() != nil:
			sb.WriteString(fence)
		case ast.Visible(n):
			sb.WriteString(n.Text())
		}
	}
	return sb.String()
}

// FindText searches forward from the cursor with wrap-around and selects
// the first match. Matches are per-node; a pattern spanning token
// boundaries is not found.
func (e *Editor) FindText(text string) (bool, error) {
	if text == "" {
		return false, ErrEmptySearch
	}
	e.lastSearch = text

	lineNo := e.cur.Line
	node := searchNext(e.cur.Node, e.main)
	for node != e.cur.Node {
		if node.Kind() == ast.KindEOS && node.Root() == e.main {
			node = e.main.BOS()
			lineNo = 0
			continue
		}
		if idx := strings.Index(node.Text(), text); idx >= 0 && ast.Visible(node) {
			e.cur.Line = lineNo
			e.cur.Node = node
			e.cur.Off = idx
			e.sel.Start = e.cur.Clone()
			e.cur.Off += len(text)
			e.sel.End = e.cur.Clone()
			return true, nil
		}
		if node.Kind() == ast.KindBreak {
			lineNo++
		}
		node = searchNext(node, e.main)
	}
	return false, nil
}

// FindNext repeats the last search.
func (e *Editor) FindNext() (bool, error) {
	if e.lastSearch == "" {
		return false, ErrEmptySearch
	}
	return e.FindText(e.lastSearch)
}

// searchNext advances document-order traversal for search, descending into
// boxes and pausing on the outermost end sentinel so the caller can wrap.
func searchNext(n *ast.Node, main *ast.Root) *ast.Node {
	if n.Kind() == ast.KindEOS && n.Root() == main {
		return n
	}
	next := ast.NextTerm(n)
	if next == nil {
		return main.EOS()
	}
	return next
}
