package bptree

import "bptree/internal/base"

// Find returns a cursor to key, or End when key is absent. The descent
// follows the same rule as insertion: at every branch, the least separator
// that is >= key.
func (t *Tree[K]) Find(key K) Cursor[K] {
	cur := t.root
	for cur != base.NilNode {
		n := t.arena.Node(cur)
		if !n.Leaf {
			i := n.LowerBound(t.less, key)
			if i == n.Len() {
				return t.End() // greater than the tree's maximum
			}
			cur = n.Records[i].Child
			continue
		}
		if i := n.Find(t.less, key); i >= 0 {
			return Cursor[K]{tree: t, node: cur, idx: i}
		}
		return t.End()
	}
	return t.End()
}

// LowerBound returns a cursor to the first key >= key, or End.
func (t *Tree[K]) LowerBound(key K) Cursor[K] {
	cur := t.root
	for cur != base.NilNode {
		n := t.arena.Node(cur)
		i := n.LowerBound(t.less, key)
		if !n.Leaf {
			if i == n.Len() {
				return t.End()
			}
			cur = n.Records[i].Child
			continue
		}
		return t.makeCursor(cur, i)
	}
	return t.End()
}

// UpperBound returns a cursor to the first key > key, or End.
func (t *Tree[K]) UpperBound(key K) Cursor[K] {
	cur := t.root
	for cur != base.NilNode {
		n := t.arena.Node(cur)
		i := n.UpperBound(t.less, key)
		if !n.Leaf {
			if i == n.Len() {
				return t.End()
			}
			cur = n.Records[i].Child
			continue
		}
		return t.makeCursor(cur, i)
	}
	return t.End()
}

// EqualRange returns [LowerBound(key), UpperBound(key)). Keys are unique,
// so the range holds one element when key is present and is empty (both
// cursors equal) when it is not.
func (t *Tree[K]) EqualRange(key K) (Cursor[K], Cursor[K]) {
	lb := t.LowerBound(key)
	if lb.Valid() {
		k := lb.Key()
		if !t.less(k, key) && !t.less(key, k) {
			ub := lb
			ub.Next()
			return lb, ub
		}
	}
	return lb, lb
}
