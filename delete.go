package bptree

import "bptree/internal/base"

// eraseStrategy is the structural remedy chosen for removing one record
// from one node. Classification is pure (classifyErase); the mutation lives
// in eraseStep.
type eraseStrategy int

const (
	eraseRoot eraseStrategy = iota
	eraseDirect
	eraseMergeLeft
	eraseMergeRight
	eraseBorrowLeft
	eraseBorrowRight
	eraseSingleChild
)

// Erase removes the key under c and returns a cursor to its logical
// successor. It returns ErrUnderflow when the tree is empty and
// ErrInvalidCursor for cursors that cheaply fail validation; stale cursors
// beyond that are a caller contract.
func (t *Tree[K]) Erase(c Cursor[K]) (Cursor[K], error) {
	if t.size == 0 {
		t.logger.Warn("erase on empty tree")
		return t.End(), ErrUnderflow
	}
	if c.tree != t || c.node == base.NilNode {
		return t.End(), ErrInvalidCursor
	}

	t.size--
	if t.size == 0 {
		t.Clear()
		return t.End(), nil
	}

	erased := t.arena.Node(c.node).Records[c.idx].Key
	node, idx := c.node, c.idx
	for t.eraseStep(&node, &idx) {
	}
	t.collapseRoot()

	// the physical position may have moved; re-resolve the successor
	return t.LowerBound(erased), nil
}

// collapseRoot replaces any chain of single-record branch roots with their
// only child, shrinking tree height.
func (t *Tree[K]) collapseRoot() {
	for {
		r := t.arena.Node(t.root)
		if r.Leaf || r.Len() != 1 {
			return
		}
		child := r.Records[0].Child
		t.arena.Release(t.root)
		t.root = child
		t.arena.Node(child).Parent = base.NilNode
	}
}

// classifyErase picks the strategy for removing a record from node id.
// Order-2 trees prefer merging before direct removal and borrowing, since
// with at most two records per node merging eagerly avoids stranding
// degenerate nodes; larger orders use the minimum-rewrite ordering.
//
// Borrowing only needs a non-end neighbor on the same level, not a sibling
// under the same parent: fixKeyOnPath repairs separators across the parent
// boundary. Merging does require a shared parent.
func (t *Tree[K]) classifyErase(id base.NodeID) eraseStrategy {
	if id == t.root {
		return eraseRoot
	}
	n := t.arena.Node(id)
	left, right := n.Prev, n.Next
	leftEnd := left == base.NilNode || left == t.header
	rightEnd := right == base.NilNode || right == t.header

	var leftLen, rightLen int
	var leftSib, rightSib bool
	if !leftEnd {
		l := t.arena.Node(left)
		leftLen = l.Len()
		leftSib = l.Parent == n.Parent
	}
	if !rightEnd {
		r := t.arena.Node(right)
		rightLen = r.Len()
		rightSib = r.Parent == n.Parent
	}
	size := n.Len()

	if t.order == 2 {
		if leftSib && size-1+leftLen <= t.order {
			return eraseMergeLeft
		}
		if rightSib && size-1+rightLen <= t.order {
			return eraseMergeRight
		}
		if size > t.half {
			return eraseDirect
		}
		if !rightEnd && rightLen > t.half {
			return eraseBorrowRight
		}
		if !leftEnd && leftLen > t.half {
			return eraseBorrowLeft
		}
		return eraseSingleChild
	}

	if size > t.half {
		return eraseDirect
	}
	if !rightEnd && rightLen > t.half {
		return eraseBorrowRight
	}
	if !leftEnd && leftLen > t.half {
		return eraseBorrowLeft
	}
	if leftSib && size-1+leftLen <= t.order {
		return eraseMergeLeft
	}
	if rightSib && size-1+rightLen <= t.order {
		return eraseMergeRight
	}
	return eraseSingleChild
}

// eraseStep removes the record at (*id, *idx) using the classified
// strategy. It returns true when the parent now holds a dead record that
// needs the same treatment one level up, updating *id and *idx to point at
// it.
func (t *Tree[K]) eraseStep(id *base.NodeID, idx *int) bool {
	strategy := t.classifyErase(*id)

	n := t.arena.Node(*id)
	erased := n.Records[*idx].Key
	left, right := n.Prev, n.Next

	switch strategy {
	case eraseRoot:
		// no minimum fan-out at the root
		n.RemoveAt(*idx)
		return false

	case eraseDirect:
		wasMax := *idx == n.Len()-1
		n.RemoveAt(*idx)
		if wasMax {
			t.fixKeyOnPath(*id, erased, n.MaxKey())
		}
		return false

	case eraseMergeLeft:
		parent := n.Parent
		l := t.arena.Node(left)
		wasMax := *idx == n.Len()-1
		n.RemoveAt(*idx)

		p := t.arena.Node(parent)
		leftInParent := p.Find(t.less, l.MaxKey())

		// absorb the left sibling at the front, re-parenting its children
		for _, r := range l.Records {
			if r.Child != base.NilNode {
				t.arena.Node(r.Child).Parent = *id
			}
		}
		merged := make([]base.Record[K], 0, l.Len()+n.Len())
		merged = append(merged, l.Records...)
		merged = append(merged, n.Records...)
		n.Records = merged

		if wasMax {
			t.fixKeyOnPath(*id, erased, n.MaxKey())
		}

		if l.Prev != base.NilNode {
			t.arena.Node(l.Prev).Next = *id
		}
		n.Prev = l.Prev
		t.arena.Release(left)

		// the left sibling's separator is now dead; erase it at the parent
		p.Records[leftInParent].Child = base.NilNode
		*id = parent
		*idx = leftInParent
		return true

	case eraseMergeRight:
		parent := n.Parent
		r := t.arena.Node(right)
		sepKey := n.MaxKey() // this node's separator in the parent
		n.RemoveAt(*idx)

		p := t.arena.Node(parent)
		nodeInParent := p.Find(t.less, sepKey)

		// move everything into the right sibling, re-parenting children
		for _, rec := range n.Records {
			if rec.Child != base.NilNode {
				t.arena.Node(rec.Child).Parent = right
			}
		}
		merged := make([]base.Record[K], 0, n.Len()+r.Len())
		merged = append(merged, n.Records...)
		merged = append(merged, r.Records...)
		r.Records = merged

		if n.Prev != base.NilNode {
			t.arena.Node(n.Prev).Next = right
		}
		r.Prev = n.Prev
		t.arena.Release(*id)

		p.Records[nodeInParent].Child = base.NilNode
		*id = parent
		*idx = nodeInParent
		return true

	case eraseBorrowRight:
		r := t.arena.Node(right)
		// after borrowing, this subtree's maximum becomes the borrowed key;
		// repair separators before touching any records
		t.fixKeyOnPath(*id, n.MaxKey(), r.Records[0].Key)

		n.RemoveAt(*idx)
		borrowed := r.Records[0]
		if borrowed.Child != base.NilNode {
			t.arena.Node(borrowed.Child).Parent = *id
		}
		n.Records = append(n.Records, borrowed)
		r.RemoveAt(0)
		return false

	case eraseBorrowLeft:
		l := t.arena.Node(left)
		wasMax := *idx == n.Len()-1
		n.RemoveAt(*idx)

		borrowed := l.Records[l.Len()-1]
		if borrowed.Child != base.NilNode {
			t.arena.Node(borrowed.Child).Parent = *id
		}
		n.InsertAt(0, borrowed)
		l.RemoveAt(l.Len() - 1)

		// the left neighbor lost its maximum
		t.fixKeyOnPath(left, borrowed.Key, l.MaxKey())
		if wasMax {
			t.fixKeyOnPath(*id, erased, n.MaxKey())
		}
		return false

	default: // eraseSingleChild
		// a removal above left this node's parent holding only this child;
		// drop the node and propagate the removal
		parent := n.Parent
		t.arena.Node(parent).Records[0].Child = base.NilNode

		if n.Prev != base.NilNode {
			t.arena.Node(n.Prev).Next = right
			if right != base.NilNode {
				t.arena.Node(right).Prev = n.Prev
			}
		}
		if n.Next != base.NilNode {
			t.arena.Node(n.Next).Prev = left
			if left != base.NilNode {
				t.arena.Node(left).Next = n.Next
			}
		}
		t.arena.Release(*id)

		*id = parent
		*idx = 0
		return true
	}
}

// fixKeyOnPath rewrites the ancestor separators that tracked node id's
// maximum after it changed from oldKey to newKey. When the node is the
// rightmost on its level every ancestor's last separator tracks it;
// otherwise the rewrite walks up until the node's path rejoins its right
// neighbor's ancestry, where the separator holds oldKey itself.
func (t *Tree[K]) fixKeyOnPath(id base.NodeID, oldKey, newKey K) {
	n := t.arena.Node(id)
	if n.Next == base.NilNode || n.Next == t.header {
		for p := n.Parent; p != base.NilNode; p = t.arena.Node(p).Parent {
			pn := t.arena.Node(p)
			pn.Rekey(pn.Len()-1, newKey)
		}
		return
	}

	join := t.arena.Node(n.Next).Parent
	cur := n.Parent
	for cur != join {
		cn := t.arena.Node(cur)
		cn.Rekey(cn.Len()-1, newKey)
		cur = cn.Parent
		join = t.arena.Node(join).Parent
	}
	cn := t.arena.Node(cur)
	cn.Rekey(cn.Find(t.less, oldKey), newKey)
}
