package cursor

// Selection is a pair of cursors; equal cursors denote no selection. Start
// is the selection anchor, End follows the moving cursor, so Start may order
// after End.
type Selection struct {
	Start Cursor
	End   Cursor
}

// IsEmpty reports whether the selection spans nothing.
func (s *Selection) IsEmpty() bool { return s.Start.Equal(&s.End) }

// Ordered returns the selection's cursors in document order.
func (s *Selection) Ordered() (Cursor, Cursor) {
	if s.Start.After(&s.End) {
		return s.End, s.Start
	}
	return s.Start, s.End
}

// Collapse moves both cursors to c.
func (s *Selection) Collapse(c Cursor) {
	s.Start = c.Clone()
	s.End = c.Clone()
}
