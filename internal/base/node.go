package base

import "sort"

// NodeID addresses a node inside an Arena. IDs are stable for the lifetime
// of the node; NilNode is the "no node" sentinel.
type NodeID uint32

// NilNode is the null node reference. Slot 0 of every arena is reserved so
// a zero NodeID never addresses a live node.
const NilNode NodeID = 0

// Record is one (key, child) entry in a node. In leaves Child is always
// NilNode; in branch nodes Child roots the subtree whose maximum key equals
// Key.
type Record[K any] struct {
	Key   K
	Child NodeID
}

// Less is a strict weak ordering over keys.
type Less[K any] func(a, b K) bool

// Node is a single B+ tree vertex: an ordered, duplicate-free record set
// plus same-level sibling links and a non-owning parent back-link.
//
// Records are kept sorted by key at all times. The search helpers take the
// ordering as a parameter rather than storing it per node, so a bare key
// can be compared against stored records without building a dummy record.
type Node[K any] struct {
	Records []Record[K]
	Leaf    bool
	Next    NodeID // right sibling on the same level
	Prev    NodeID // left sibling on the same level
	Parent  NodeID
}

// Len returns the number of records in the node.
func (n *Node[K]) Len() int {
	return len(n.Records)
}

// LowerBound returns the index of the first record whose key is >= key,
// or Len() if no such record exists.
func (n *Node[K]) LowerBound(less Less[K], key K) int {
	return sort.Search(len(n.Records), func(i int) bool {
		return !less(n.Records[i].Key, key)
	})
}

// UpperBound returns the index of the first record whose key is > key,
// or Len() if no such record exists.
func (n *Node[K]) UpperBound(less Less[K], key K) int {
	return sort.Search(len(n.Records), func(i int) bool {
		return less(key, n.Records[i].Key)
	})
}

// Find returns the index of the record whose key equals key, or -1.
func (n *Node[K]) Find(less Less[K], key K) int {
	i := n.LowerBound(less, key)
	if i < len(n.Records) && !less(key, n.Records[i].Key) {
		return i
	}
	return -1
}

// InsertAt inserts rec at index i, shifting later records right. The caller
// is responsible for choosing an i that preserves sort order.
func (n *Node[K]) InsertAt(i int, rec Record[K]) {
	n.Records = append(n.Records, Record[K]{})
	copy(n.Records[i+1:], n.Records[i:])
	n.Records[i] = rec
}

// RemoveAt removes the record at index i, shifting later records left.
func (n *Node[K]) RemoveAt(i int) {
	copy(n.Records[i:], n.Records[i+1:])
	n.Records[len(n.Records)-1] = Record[K]{}
	n.Records = n.Records[:len(n.Records)-1]
}

// Rekey rewrites the key of the record at index i in place. The caller
// guarantees the new key is still strictly between the record's neighbors,
// so relative order is unchanged.
func (n *Node[K]) Rekey(i int, key K) {
	n.Records[i].Key = key
}

// MaxKey returns the key of the last (greatest) record. The node must be
// non-empty.
func (n *Node[K]) MaxKey() K {
	return n.Records[len(n.Records)-1].Key
}
