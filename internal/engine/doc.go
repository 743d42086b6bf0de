// Package engine implements the edit engine: the single entry point for
// every document mutation. Each operation runs the same synchronous
// pipeline (splice the node chain at the cursor, relex the touched node,
// repair the line index and indentation markers, reparse incrementally,
// append to the undo log) so the tree, the derived line index and the
// cursor are consistent again before control returns. There is no
// background re-lex or re-parse; partial states are never observable
// between edits.
//
// The engine owns the node chains and the line index exclusively during an
// edit. Rendering and analysis layers read through the view methods
// (CursorPos, LineCount, LineInfo, ErrorOn, Text) and never mutate nodes
// directly.
package engine
