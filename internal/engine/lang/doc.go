// Package lang defines the service contracts the editing core consumes from
// its lexing and parsing collaborators, the registry of known grammars, and
// the binding table mapping each grammar root to the incremental lexer and
// parser instance that own it.
//
// The core never interprets grammar state: it calls Relex on a touched node,
// Reparse on the node's root, and reads the parser's error node for the
// read-only views. Two reference lexers ship with the package: ScanLexer, a
// whitespace/word scanner used as the default grammar, and ChromaLexer,
// which adapts chroma's lexers to the relex contract.
package lang
