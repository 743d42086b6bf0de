// Package ast provides the node-chain representation of a multi-grammar
// document. Each grammar instance owns a Root whose terminals form a doubly
// linked chain delimited by begin/end sentinels. A boundary node embeds a
// nested Root (a language box), making roots form a tree-of-trees while the
// chains still present one continuous text surface.
//
// The package provides:
//
//   - Tagged node kinds (text, line break, structural marker, boundary,
//     sentinels) matched exhaustively by callers
//   - Chain splicing primitives used by the edit engine
//   - Visible-node traversal that transparently enters and leaves language
//     boxes in either direction
//
// Mutation goes through the edit engine; other layers treat nodes as
// read-only. Operations that would break chain invariants (removing a
// sentinel, inserting after the end sentinel) panic: they indicate a bug in
// the caller, not a recoverable condition.
package ast
