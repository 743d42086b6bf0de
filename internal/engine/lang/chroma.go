package lang

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/dshills/interlace/internal/engine/ast"
)

// ChromaLexer adapts a chroma lexer to the incremental relex contract. The
// changed node's contiguous text run is re-tokenized with the real grammar
// lexer and spliced back, with line breaks promoted to break nodes. Runs are
// bounded by structural tokens, so the work stays proportional to the edit.
type ChromaLexer struct {
	lexer       chroma.Lexer
	indentation bool
}

// NewChromaLexer resolves a chroma lexer by name ("python", "go", ...).
func NewChromaLexer(name string, indentation bool) (*ChromaLexer, error) {
	lx := lexers.Get(name)
	if lx == nil {
		return nil, fmt.Errorf("%w: no chroma lexer %q", ErrUnknownLanguage, name)
	}
	return &ChromaLexer{lexer: chroma.Coalesce(lx), indentation: indentation}, nil
}

// NewChromaLexerFrom wraps an already-constructed chroma lexer.
func NewChromaLexerFrom(lx chroma.Lexer, indentation bool) *ChromaLexer {
	return &ChromaLexer{lexer: chroma.Coalesce(lx), indentation: indentation}
}

// IsIndentationBased reports whether the grammar is indentation-delimited.
func (c *ChromaLexer) IsIndentationBased() bool { return c.indentation }

// Relex re-tokenizes the contiguous text run around n with the chroma lexer.
func (c *ChromaLexer) Relex(n *ast.Node) error {
	run := collectRun(n)
	if len(run) == 0 {
		return nil
	}
	it, err := c.lexer.Tokenise(nil, runText(run))
	if err != nil {
		return fmt.Errorf("chroma tokenise: %w", err)
	}
	var toks []token
	for tok := it(); tok != chroma.EOF; tok = it() {
		toks = appendSplit(toks, tok.Value)
	}
	splice(run, toks)
	return nil
}

// appendSplit appends a token value, promoting embedded line breaks to
// dedicated break tokens.
func appendSplit(toks []token, val string) []token {
	for val != "" {
		i := strings.IndexByte(val, '\n')
		if i < 0 {
			toks = append(toks, token{text: val})
			break
		}
		if i > 0 {
			toks = append(toks, token{text: val[:i]})
		}
		toks = append(toks, token{text: ast.LineBreak, brk: true})
		val = val[i+1:]
	}
	return toks
}
