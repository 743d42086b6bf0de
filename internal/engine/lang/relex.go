package lang

import "github.com/dshills/interlace/internal/engine/ast"

// token is one unit produced by a tokenizer before splicing.
type token struct {
	text string
	brk  bool
}

// collectRun gathers the contiguous stretch of text nodes around n. Breaks,
// boundaries, markers and sentinels bound the run: tokens never merge across
// them, which keeps relexing bounded by the changed region.
func collectRun(n *ast.Node) []*ast.Node {
	if n.Kind() != ast.KindText {
		if next := n.Next(); next != nil && next.Kind() == ast.KindText {
			n = next
		} else {
			return nil
		}
	}
	for n.Prev() != nil && n.Prev().Kind() == ast.KindText {
		n = n.Prev()
	}
	run := []*ast.Node{n}
	for n.Next() != nil && n.Next().Kind() == ast.KindText {
		n = n.Next()
		run = append(run, n)
	}
	return run
}

// runText concatenates the run's text.
func runText(run []*ast.Node) string {
	var b []byte
	for _, n := range run {
		b = append(b, n.Text()...)
	}
	return string(b)
}

// splice rewrites the run in place to match the token stream, reusing
// existing nodes where possible so cursors keep their anchors. Leftover
// nodes are spliced out; they keep their links so Cursor.Fix can recover.
func splice(run []*ast.Node, toks []token) {
	next := 0
	cur := run[0].Prev()
	for _, tk := range toks {
		if !tk.brk && next < len(run) {
			n := run[next]
			if n.Text() != tk.text {
				n.SetText(tk.text)
			}
			next++
			cur = n
			continue
		}
		var n *ast.Node
		if tk.brk {
			n = ast.NewBreak()
		} else {
			n = ast.NewText(tk.text)
		}
		cur.InsertAfter(n)
		cur = n
	}
	for ; next < len(run); next++ {
		run[next].Remove()
	}
}

// relexRun applies a tokenizer to the text run around n.
func relexRun(n *ast.Node, tokenize func(src string) []token) {
	run := collectRun(n)
	if len(run) == 0 {
		return
	}
	splice(run, tokenize(runText(run)))
}
