package bptree

import "bptree/internal/base"

// Cursor is a position in the tree: a node plus an index into that node's
// record set. The canonical end denotes "before-first"/"after-last" and is
// the result of Begin on an empty tree, End, and failed lookups.
//
// A cursor is only as durable as the node it references: structural
// mutations (splits, merges, Clear) invalidate cursors into the affected
// nodes, and using one afterwards is a caller error.
type Cursor[K any] struct {
	tree *Tree[K]
	node base.NodeID
	idx  int
}

// Begin returns a cursor at the smallest key, or End when the tree is
// empty.
func (t *Tree[K]) Begin() Cursor[K] {
	if t.size == 0 {
		return t.End()
	}
	return Cursor[K]{tree: t, node: t.arena.Node(t.header).Next}
}

// End returns the canonical end cursor.
func (t *Tree[K]) End() Cursor[K] {
	return Cursor[K]{tree: t}
}

// Valid reports whether the cursor is positioned on a key.
func (c Cursor[K]) Valid() bool {
	return c.tree != nil && c.node != base.NilNode
}

// Key returns the key under the cursor, or the zero value when the cursor
// is the canonical end.
func (c Cursor[K]) Key() K {
	if !c.Valid() {
		var zero K
		return zero
	}
	return c.tree.arena.Node(c.node).Records[c.idx].Key
}

// Equal reports cursor equality: two cursors are equal iff both denote the
// canonical end, or both denote the identical (node, position).
func (c Cursor[K]) Equal(o Cursor[K]) bool {
	cEnd := c.tree == nil || c.node == base.NilNode
	oEnd := o.tree == nil || o.node == base.NilNode
	if cEnd || oEnd {
		return cEnd == oEnd
	}
	return c.tree == o.tree && c.node == o.node && c.idx == o.idx
}

// Next advances the cursor to the next key in ascending order, crossing to
// the next leaf through the sibling ring. Advancing past the last key, or
// advancing the canonical end, yields the canonical end.
func (c *Cursor[K]) Next() {
	if c.tree == nil || c.tree.root == base.NilNode || c.node == base.NilNode {
		return
	}
	t := c.tree
	c.idx++
	n := t.arena.Node(c.node)
	if c.idx >= n.Len() {
		if n.Next == t.header {
			c.node = base.NilNode
		} else {
			c.node = n.Next
		}
		c.idx = 0
	}
}

// Prev moves the cursor to the previous key. Retreating the canonical end
// lands on the greatest key; retreating the first key does nothing.
func (c *Cursor[K]) Prev() {
	if c.tree == nil || c.tree.root == base.NilNode {
		return
	}
	t := c.tree
	if c.node == t.arena.Node(t.header).Next && c.idx == 0 {
		return // already at the first key
	}
	if c.node == base.NilNode {
		last := t.arena.Node(t.header).Prev
		c.node = last
		c.idx = t.arena.Node(last).Len() - 1
		return
	}
	if c.idx == 0 {
		prev := t.arena.Node(c.node).Prev
		c.node = prev
		c.idx = t.arena.Node(prev).Len() - 1
		return
	}
	c.idx--
}

// makeCursor builds a cursor for (id, idx), rolling a position past the
// node's last record forward to the next leaf's first record, or to the
// canonical end when no leaf follows.
func (t *Tree[K]) makeCursor(id base.NodeID, idx int) Cursor[K] {
	n := t.arena.Node(id)
	if idx < n.Len() {
		return Cursor[K]{tree: t, node: id, idx: idx}
	}
	if n.Next != base.NilNode && n.Next != t.header {
		return Cursor[K]{tree: t, node: n.Next}
	}
	return t.End()
}
