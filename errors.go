package bptree

import "errors"

var (
	// ErrUnderflow is returned by Erase when the tree holds no keys.
	// The tree is left untouched.
	ErrUnderflow = errors.New("erase from empty tree")

	// ErrInvalidCursor is returned by Erase for cursors that are cheaply
	// detectable as invalid (the canonical end, or a cursor from another
	// tree). Cursors gone stale after a structural mutation are a caller
	// contract and are not detected.
	ErrInvalidCursor = errors.New("cursor does not reference this tree")
)
