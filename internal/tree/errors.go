package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeSize marks a record whose size is below zero.
	ErrNegativeSize = errors.New("tree: negative size")

	// ErrMalformedSize marks a record whose size could not be decoded.
	ErrMalformedSize = errors.New("tree: malformed size")

	// ErrKindCollision marks a record that would use an existing symbol as a
	// container, or add a symbol named like an existing container.
	ErrKindCollision = errors.New("tree: branch/leaf name collision")

	// ErrNegativeValue marks a node whose accumulated value is below zero.
	ErrNegativeValue = errors.New("tree: negative value")

	// ErrNodeNotFound is returned for IDs outside the tree.
	ErrNodeNotFound = errors.New("tree: node not found")

	// ErrLeafParent is returned when adding a child below a leaf.
	ErrLeafParent = errors.New("tree: leaf cannot have children")
)

// ValidationError reports a single rejected record or an invalid node.
// Index is the record's position in the input (-1 when the error is not tied
// to a record) and Node the offending node (NoParent when not tied to one).
type ValidationError struct {
	Index int
	Sym   string
	Node  NodeID
	Err   error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index >= 0:
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.Sym, e.Err)
	case e.Node != NoParent:
		return fmt.Sprintf("node %d (%s): %v", e.Node, e.Sym, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

func recordError(index int, sym string, err error) *ValidationError {
	return &ValidationError{Index: index, Sym: sym, Node: NoParent, Err: err}
}

// NodeError builds a ValidationError for an invalid node.
func NodeError(id NodeID, name string, err error) *ValidationError {
	return &ValidationError{Index: -1, Sym: name, Node: id, Err: err}
}
