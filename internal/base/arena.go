package base

// Arena owns every node of one tree and addresses them by NodeID. Released
// slots go on a free list and are handed out again by Alloc; the pointer a
// released slot used to hold is dropped, so a stale NodeID dereferences to
// nil instead of silently aliasing a recycled node.
//
// Slot 0 is burned at construction so NilNode never addresses a live node.
type Arena[K any] struct {
	nodes []*Node[K]
	free  []NodeID
	live  int
}

// NewArena returns an empty arena.
func NewArena[K any]() *Arena[K] {
	return &Arena[K]{
		nodes: make([]*Node[K], 1), // slot 0 reserved for NilNode
	}
}

// Alloc creates a new node and returns its ID, reusing a freed slot when
// one is available.
func (a *Arena[K]) Alloc(leaf bool) NodeID {
	n := &Node[K]{Leaf: leaf}
	a.live++
	if len(a.free) > 0 {
		id := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.nodes[id] = n
		return id
	}
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

// Node returns the node for id. Dereferencing NilNode or a released ID
// returns nil.
func (a *Arena[K]) Node(id NodeID) *Node[K] {
	return a.nodes[id]
}

// Release returns id's slot to the free list. The node must not be
// reachable from the tree afterwards.
func (a *Arena[K]) Release(id NodeID) {
	a.nodes[id] = nil
	a.free = append(a.free, id)
	a.live--
}

// Live returns the number of allocated, unreleased nodes.
func (a *Arena[K]) Live() int {
	return a.live
}
