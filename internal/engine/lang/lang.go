package lang

import (
	"errors"
	"fmt"

	"github.com/dshills/interlace/internal/engine/ast"
)

// Errors returned by registry and binding operations.
var (
	ErrUnknownLanguage = errors.New("unknown language")
	ErrNotBound        = errors.New("root has no binding")
	ErrAlreadyBound    = errors.New("root already bound")
)

// Lexer is the incremental lexing service supplied per grammar. Relex
// re-tokenizes from the given node forward until the lexical state
// stabilizes; it may merge or split the node with its neighbours and must
// emit line breaks as dedicated break nodes.
type Lexer interface {
	Relex(n *ast.Node) error
	IsIndentationBased() bool
}

// Parser is the incremental parsing service supplied per grammar. Reparse
// updates the syntax tree rooted at the node's grammar and may mark a single
// error node; ErrorNode returns it, or nil when the last parse succeeded.
type Parser interface {
	Reparse(n *ast.Node) error
	ErrorNode() *ast.Node
}

// Language describes a registered grammar: its identifier, whether its
// blocks are indentation-delimited, and factories for the lexer/parser pair
// constructed whenever a language box is created or a file is loaded.
type Language struct {
	Name             string
	IndentationBased bool
	NewLexer         func() Lexer
	NewParser        func() Parser
}

// Registry holds the known grammars by identifier.
type Registry struct {
	languages map[string]Language
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{languages: make(map[string]Language)}
}

// Register adds or replaces a grammar definition.
func (r *Registry) Register(l Language) {
	r.languages[l.Name] = l
}

// Lookup returns the grammar for the identifier.
func (r *Registry) Lookup(name string) (Language, error) {
	l, ok := r.languages[name]
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	return l, nil
}

// Names returns the registered language identifiers.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.languages))
	for name := range r.languages {
		names = append(names, name)
	}
	return names
}
