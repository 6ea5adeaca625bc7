package bptree

import (
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"

	"bptree/internal/base"
)

// DumpString renders the tree one line per level, each level as bracketed,
// comma-separated keys in left-to-right node order, e.g. "[1,3,5]\n[0,1][2,3][4,5]\n".
// Keys are formatted with fmt. An empty tree renders as the empty string.
func (t *Tree[K]) DumpString() string {
	if t.root == base.NilNode {
		return ""
	}
	var b strings.Builder
	queue := []base.NodeID{t.root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := t.arena.Node(id)

		b.WriteByte('[')
		for i, r := range n.Records {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprint(&b, r.Key)
			if r.Child != base.NilNode {
				queue = append(queue, r.Child)
			}
		}
		b.WriteByte(']')
		if n.Next == base.NilNode || n.Next == t.header {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Dump writes DumpString to w.
func (t *Tree[K]) Dump(w io.Writer) error {
	_, err := io.WriteString(w, t.DumpString())
	return err
}

// Fingerprint returns an xxhash64 digest over the ordered key sequence
// (walking the leaf ring). Two trees hold the same keys iff their
// fingerprints match, up to hash collisions; useful for cheap state
// comparison in tests and tooling.
func (t *Tree[K]) Fingerprint() uint64 {
	h := xxhash.New()
	for id := t.arena.Node(t.header).Next; id != t.header; id = t.arena.Node(id).Next {
		for _, r := range t.arena.Node(id).Records {
			fmt.Fprint(h, r.Key)
			h.Write([]byte{0})
		}
	}
	return h.Sum64()
}
