package lang

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/interlace/internal/engine/ast"
)

// Binding ties one grammar root to the lexer/parser instances owning it.
type Binding struct {
	Root     *ast.Root
	Lexer    Lexer
	Parser   Parser
	Language string
}

// Bindings is the table mapping root identity to its binding. It is the
// single source of truth for reaching a nested root's services; the first
// binding added is the main (outermost) root's.
type Bindings struct {
	order  []uuid.UUID
	byRoot map[uuid.UUID]*Binding
}

// NewBindings creates an empty binding table.
func NewBindings() *Bindings {
	return &Bindings{byRoot: make(map[uuid.UUID]*Binding)}
}

// Add registers a root with its lexer/parser pair.
func (b *Bindings) Add(root *ast.Root, lexer Lexer, parser Parser, language string) error {
	if _, ok := b.byRoot[root.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, root.ID())
	}
	b.byRoot[root.ID()] = &Binding{Root: root, Lexer: lexer, Parser: parser, Language: language}
	b.order = append(b.order, root.ID())
	return nil
}

// Remove drops a root's binding. Called when an emptied language box is
// deleted.
func (b *Bindings) Remove(root *ast.Root) {
	if _, ok := b.byRoot[root.ID()]; !ok {
		return
	}
	delete(b.byRoot, root.ID())
	for i, id := range b.order {
		if id == root.ID() {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// For returns the binding for a root.
func (b *Bindings) For(root *ast.Root) (*Binding, error) {
	bind, ok := b.byRoot[root.ID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotBound, root.ID(), root.Language())
	}
	return bind, nil
}

// LexerFor returns the lexer owning the root.
func (b *Bindings) LexerFor(root *ast.Root) (Lexer, error) {
	bind, err := b.For(root)
	if err != nil {
		return nil, err
	}
	return bind.Lexer, nil
}

// ParserFor returns the parser owning the root.
func (b *Bindings) ParserFor(root *ast.Root) (Parser, error) {
	bind, err := b.For(root)
	if err != nil {
		return nil, err
	}
	return bind.Parser, nil
}

// Main returns the outermost root's binding, nil when empty.
func (b *Bindings) Main() *Binding {
	if len(b.order) == 0 {
		return nil
	}
	return b.byRoot[b.order[0]]
}

// Len returns the number of active bindings.
func (b *Bindings) Len() int { return len(b.order) }

// All returns the bindings in registration order, main root first.
func (b *Bindings) All() []*Binding {
	out := make([]*Binding, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byRoot[id])
	}
	return out
}

// ErrorOn reports the parse error message for the node when any bound parser
// marked it, following the "syntax error on token X" view contract.
func (b *Bindings) ErrorOn(n *ast.Node) (string, bool) {
	for _, id := range b.order {
		bind := b.byRoot[id]
		if bind.Parser.ErrorNode() == n {
			return fmt.Sprintf("syntax error on token %q", n.Text()), true
		}
	}
	return "", false
}
