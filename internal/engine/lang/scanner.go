package lang

import "github.com/dshills/interlace/internal/engine/ast"

// ScanLexer is the reference incremental lexer: tokens are whitespace runs,
// word runs and single punctuation characters, with line breaks emitted as
// dedicated break nodes. It backs the default grammar and the tests.
type ScanLexer struct {
	indentation bool
}

// NewScanLexer creates a scanner lexer. Indentation-based grammars get
// INDENT/DEDENT markers synthesized by the indentation engine.
func NewScanLexer(indentation bool) *ScanLexer {
	return &ScanLexer{indentation: indentation}
}

// IsIndentationBased reports whether the grammar is indentation-delimited.
func (s *ScanLexer) IsIndentationBased() bool { return s.indentation }

// Relex re-tokenizes the contiguous text run around n.
func (s *ScanLexer) Relex(n *ast.Node) error {
	relexRun(n, scan)
	return nil
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= 0x80 // multibyte runes lex as word characters
}

func scan(src string) []token {
	var toks []token
	for i := 0; i < len(src); {
		switch c := src[i]; {
		case c == '\n':
			toks = append(toks, token{text: ast.LineBreak, brk: true})
			i++
		case c == ' ' || c == '\t':
			j := i + 1
			for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
				j++
			}
			toks = append(toks, token{text: src[i:j]})
			i = j
		case isWordByte(c):
			j := i + 1
			for j < len(src) && isWordByte(src[j]) {
				j++
			}
			toks = append(toks, token{text: src[i:j]})
			i = j
		default:
			toks = append(toks, token{text: src[i : i+1]})
			i++
		}
	}
	return toks
}
