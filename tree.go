// Package bptree implements an in-memory ordered set of unique keys backed
// by a B+ tree: all keys live in the leaves, the leaves form a sorted ring
// closed by a header sentinel, and every branch record carries the maximum
// key of the subtree it points at.
//
// The structure is single-threaded. Mutating it from multiple goroutines,
// or through one cursor while another cursor is live and the mutation
// structurally changes the node it references, is a caller error and is not
// guarded internally.
package bptree

import (
	"cmp"

	"bptree/internal/base"
)

// Less is a strict weak ordering over keys: it reports whether a sorts
// before b.
type Less[K any] func(a, b K) bool

// Tree is an ordered set of unique keys. The zero value is not usable; use
// New or NewOrdered.
type Tree[K any] struct {
	arena  *base.Arena[K]
	less   base.Less[K]
	order  int // maximum records per node
	half   int // minimum records per non-root node, (order+1)/2
	root   base.NodeID
	header base.NodeID // sentinel closing the leaf ring, never holds data
	size   int
	logger Logger
}

// New creates an empty tree ordered by less. It panics if the configured
// order is below 2.
func New[K any](less Less[K], opts ...Option) *Tree[K] {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.order < 2 {
		panic("bptree: order must be at least 2")
	}

	arena := base.NewArena[K]()
	header := arena.Alloc(true)
	h := arena.Node(header)
	h.Next, h.Prev = header, header

	return &Tree[K]{
		arena:  arena,
		less:   base.Less[K](less),
		order:  o.order,
		half:   (o.order + 1) / 2,
		header: header,
		logger: o.logger,
	}
}

// NewOrdered creates an empty tree over a naturally ordered key type.
func NewOrdered[K cmp.Ordered](opts ...Option) *Tree[K] {
	return New[K](func(a, b K) bool { return a < b }, opts...)
}

// Size returns the number of keys in the tree.
func (t *Tree[K]) Size() int {
	return t.size
}

// Empty reports whether the tree holds no keys.
func (t *Tree[K]) Empty() bool {
	return t.size == 0
}

// Order returns the maximum number of records permitted per node.
func (t *Tree[K]) Order() int {
	return t.order
}

// Clear releases every node and resets the tree to the freshly constructed
// state. Node teardown walks an explicit worklist so stack depth does not
// grow with tree height.
func (t *Tree[K]) Clear() {
	if t.root != base.NilNode {
		stack := []base.NodeID{t.root}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := t.arena.Node(id)
			for _, r := range n.Records {
				if r.Child != base.NilNode {
					stack = append(stack, r.Child)
				}
			}
			t.arena.Release(id)
		}
	}
	t.root = base.NilNode
	h := t.arena.Node(t.header)
	h.Next, h.Prev = t.header, t.header
	t.size = 0
}

// Insert adds key to the set. It returns a cursor to the key's position and
// whether the key was actually inserted; inserting a key that is already
// present mutates nothing and reports false.
func (t *Tree[K]) Insert(key K) (Cursor[K], bool) {
	if t.root == base.NilNode {
		id := t.arena.Alloc(true)
		n := t.arena.Node(id)
		n.Records = append(n.Records, base.Record[K]{Key: key})
		n.Next, n.Prev = t.header, t.header
		h := t.arena.Node(t.header)
		h.Next, h.Prev = id, id
		t.root = id
		t.size = 1
		return Cursor[K]{tree: t, node: id}, true
	}

	cur := t.root
	for {
		n := t.arena.Node(cur)
		if !n.Leaf {
			i := n.LowerBound(t.less, key)
			if i == n.Len() {
				// key exceeds every separator: this subtree's maximum is
				// about to become key, rewrite the rightmost separator
				i--
				n.Rekey(i, key)
			}
			cur = n.Records[i].Child
			continue
		}

		if i := n.Find(t.less, key); i >= 0 {
			return Cursor[K]{tree: t, node: cur, idx: i}, false
		}
		i := n.LowerBound(t.less, key)
		n.InsertAt(i, base.Record[K]{Key: key})
		t.size++
		if n.Len() <= t.order {
			return Cursor[K]{tree: t, node: cur, idx: i}, true
		}

		// Overflow: split bottom-up until every node on the path fits. The
		// inserted key may end up in the new left sibling.
		parent, left := t.split(cur)
		target := cur
		if t.less(key, t.arena.Node(cur).Records[0].Key) {
			target = left
		}
		for parent != base.NilNode && t.arena.Node(parent).Len() > t.order {
			parent, _ = t.split(parent)
		}
		tn := t.arena.Node(target)
		return Cursor[K]{tree: t, node: target, idx: tn.Find(t.less, key)}, true
	}
}

// split moves the first half of an overflowing node into a new left
// sibling, links the sibling into the same-level chain, and inserts its
// separator into the parent (creating a new root when the node had none).
// It returns the parent and the new left sibling.
func (t *Tree[K]) split(id base.NodeID) (parent, left base.NodeID) {
	n := t.arena.Node(id)
	left = t.arena.Alloc(n.Leaf)
	l := t.arena.Node(left)

	l.Records = append(make([]base.Record[K], 0, t.half), n.Records[:t.half]...)
	rest := copy(n.Records, n.Records[t.half:])
	for i := rest; i < len(n.Records); i++ {
		n.Records[i] = base.Record[K]{}
	}
	n.Records = n.Records[:rest]

	for _, r := range l.Records {
		if r.Child != base.NilNode {
			t.arena.Node(r.Child).Parent = left
		}
	}

	l.Next = id
	if n.Prev != base.NilNode {
		l.Prev = n.Prev
		t.arena.Node(n.Prev).Next = left
	}
	n.Prev = left

	parent = n.Parent
	if parent == base.NilNode {
		// splitting the root: the new root starts with the right half's
		// separator, the left half's is inserted below
		parent = t.arena.Alloc(false)
		p := t.arena.Node(parent)
		t.root = parent
		p.Records = append(p.Records, base.Record[K]{Key: n.MaxKey(), Child: id})
	}
	p := t.arena.Node(parent)
	lmax := l.MaxKey()
	p.InsertAt(p.LowerBound(t.less, lmax), base.Record[K]{Key: lmax, Child: left})
	n.Parent = parent
	l.Parent = parent

	return parent, left
}
