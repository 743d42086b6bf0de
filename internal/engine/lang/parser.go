package lang

import "github.com/dshills/interlace/internal/engine/ast"

// RecordingParser is the reference incremental parser: it does not build a
// grammar tree, it only re-validates its root's chain against a token
// predicate and records the first offending node. Real LR machinery plugs in
// through the same Parser interface.
type RecordingParser struct {
	invalid func(*ast.Node) bool
	errNode *ast.Node
}

// NewRecordingParser creates a parser that marks nodes matching invalid as
// parse errors. A nil predicate accepts everything.
func NewRecordingParser(invalid func(*ast.Node) bool) *RecordingParser {
	return &RecordingParser{invalid: invalid}
}

// Reparse scans the chain of n's root. Nested language boxes are owned by
// their own parsers and are not descended into; their errors stay local.
func (p *RecordingParser) Reparse(n *ast.Node) error {
	p.errNode = nil
	if p.invalid == nil {
		return nil
	}
	root := n.Root()
	for cur := root.BOS().Next(); cur != nil && cur != root.EOS(); cur = cur.Next() {
		if ast.Visible(cur) && p.invalid(cur) {
			p.errNode = cur
			break
		}
	}
	return nil
}

// ErrorNode returns the node the last reparse flagged, nil when clean.
func (p *RecordingParser) ErrorNode() *ast.Node { return p.errNode }
