package ast

import "github.com/google/uuid"

// Root is one grammar instance's tree. Its terminals form a chain delimited
// by sentinels. Roots nest through boundary nodes: the outermost root has no
// boundary back-pointer.
type Root struct {
	id       uuid.UUID
	language string
	bos      *Node
	eos      *Node
	boundary *Node
}

// NewRoot creates an empty chain (sentinels only) for the given language.
func NewRoot(language string) *Root {
	r := &Root{
		id:       uuid.New(),
		language: language,
		bos:      &Node{kind: KindBOS},
		eos:      &Node{kind: KindEOS},
	}
	r.bos.root = r
	r.eos.root = r
	r.bos.next = r.eos
	r.eos.prev = r.bos
	return r
}

// ID returns the root's stable identity used by the binding table.
func (r *Root) ID() uuid.UUID { return r.id }

// Language returns the grammar identifier.
func (r *Root) Language() string { return r.language }

// BOS returns the begin-of-chain sentinel.
func (r *Root) BOS() *Node { return r.bos }

// EOS returns the end-of-chain sentinel.
func (r *Root) EOS() *Node { return r.eos }

// Boundary returns the boundary node embedding this root, nil when outermost.
func (r *Root) Boundary() *Node { return r.boundary }

// IsEmpty reports whether the chain holds nothing but its sentinels.
func (r *Root) IsEmpty() bool { return r.bos.next == r.eos }

// SameRoot reports whether two nodes belong to the same grammar instance.
func SameRoot(a, b *Node) bool { return a.root == b.root }
