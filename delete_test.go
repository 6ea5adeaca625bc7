package bptree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEraseEmptyTree(t *testing.T) {
	tr := NewOrdered[int]()
	_, err := tr.Erase(tr.End())
	assert.ErrorIs(t, err, ErrUnderflow)
	assert.Equal(t, 0, tr.Size())
}

func TestEraseInvalidCursor(t *testing.T) {
	tr := NewOrdered[int]()
	tr.Insert(1)

	_, err := tr.Erase(tr.End())
	assert.ErrorIs(t, err, ErrInvalidCursor)

	other := NewOrdered[int]()
	other.Insert(1)
	_, err = tr.Erase(other.Begin())
	assert.ErrorIs(t, err, ErrInvalidCursor)

	assert.Equal(t, 1, tr.Size(), "failed erase mutates nothing")
	checkTree(t, tr)
}

func TestEraseLastKeyClearsTree(t *testing.T) {
	tr := NewOrdered[int]()
	tr.Insert(9)

	c, err := tr.Erase(tr.Begin())
	require.NoError(t, err)
	assert.True(t, c.Equal(tr.End()))
	assert.Equal(t, 0, tr.Size())
	assert.True(t, tr.Begin().Equal(tr.End()))
	checkTree(t, tr)
}

func TestEraseReturnsSuccessor(t *testing.T) {
	tr := NewOrdered[int]()
	for i := 0; i < 10; i++ {
		tr.Insert(i)
	}

	c, err := tr.Erase(tr.Find(4))
	require.NoError(t, err)
	assert.Equal(t, 5, c.Key())

	// erasing the maximum yields the canonical end
	c, err = tr.Erase(tr.Find(9))
	require.NoError(t, err)
	assert.True(t, c.Equal(tr.End()))
	checkTree(t, tr)
}

func TestEraseBorrowFromRight(t *testing.T) {
	tr := NewOrdered[int]()
	for i := 0; i <= 6; i++ {
		tr.Insert(i)
	}
	// leaves [0,1][2,3][4,5,6]: erasing 2 borrows the right sibling's 4
	require.Equal(t, "[1,3,6]\n[0,1][2,3][4,5,6]\n", tr.DumpString())

	_, err := tr.Erase(tr.Find(2))
	require.NoError(t, err)
	checkTree(t, tr)
	assert.Equal(t, "[1,4,6]\n[0,1][3,4][5,6]\n", tr.DumpString())
}

func TestEraseBorrowFromLeft(t *testing.T) {
	tr := NewOrdered[int]()
	for _, k := range []int{0, 1, 2, 3, 4, 5, -2, -1} {
		tr.Insert(k)
	}
	// rightmost leaf is the only one with spare neighbors on its left
	checkTree(t, tr)
	before := tr.Size()

	_, err := tr.Erase(tr.Find(5))
	require.NoError(t, err)
	assert.Equal(t, before-1, tr.Size())
	checkTree(t, tr)
	assert.True(t, tr.Find(5).Equal(tr.End()))
	assert.True(t, tr.Find(4).Valid())
}

func TestEraseMergeCascadesAndCollapsesRoot(t *testing.T) {
	tr := NewOrdered[int]()
	for _, k := range []int{1, 2, 3, -5, -3, 4, 5, 6, 7} {
		tr.Insert(k)
	}
	require.Equal(t, "[3,7]\n[1,3][5,7]\n[-5,-3,1][2,3][4,5][6,7]\n", tr.DumpString())

	// erasing 6 merges leaves, then merges the two branch nodes, then
	// collapses the single-record root, shrinking height by one
	c, err := tr.Erase(tr.Find(6))
	require.NoError(t, err)
	assert.Equal(t, 7, c.Key())
	checkTree(t, tr)
	assert.Equal(t, "[1,3,7]\n[-5,-3,1][2,3][4,5,7]\n", tr.DumpString())
}

func TestEraseMaximumRewritesAncestorSeparators(t *testing.T) {
	tr := NewOrdered[int](WithOrder(3))
	for i := 0; i < 40; i++ {
		tr.Insert(i)
	}
	// repeatedly erase the current maximum; every ancestor separator on the
	// right spine must follow (checkTree verifies separator == subtree max)
	for i := 39; i >= 20; i-- {
		end := tr.End()
		end.Prev()
		require.Equal(t, i, end.Key())
		_, err := tr.Erase(end)
		require.NoError(t, err)
		checkTree(t, tr)
	}
	assert.Equal(t, 20, tr.Size())
}

func TestEraseAllRestoresFreshState(t *testing.T) {
	fresh := NewOrdered[int]()
	tr := NewOrdered[int]()
	for i := 0; i < 100; i++ {
		tr.Insert((i * 37) % 100)
	}

	for !tr.Empty() {
		_, err := tr.Erase(tr.Begin())
		require.NoError(t, err)
		checkTree(t, tr)
	}

	assert.Equal(t, 0, tr.Size())
	assert.True(t, tr.Begin().Equal(tr.End()))
	assert.Equal(t, fresh.Fingerprint(), tr.Fingerprint())
	assert.Equal(t, 1, tr.arena.Live())
}

func TestEraseStrategyClassification(t *testing.T) {
	tr := NewOrdered[int]()
	for i := 0; i <= 6; i++ {
		tr.Insert(i)
	}
	// leaves: [0,1] [2,3] [4,5,6] under root [1,3,6]
	leaf01 := tr.Find(0)
	leaf23 := tr.Find(2)
	leaf456 := tr.Find(4)

	assert.Equal(t, eraseMergeRight, tr.classifyErase(leaf01.node))
	assert.Equal(t, eraseBorrowRight, tr.classifyErase(leaf23.node))
	assert.Equal(t, eraseDirect, tr.classifyErase(leaf456.node))
	assert.Equal(t, eraseRoot, tr.classifyErase(tr.root))
}

func TestEraseStrategyClassificationOrder2(t *testing.T) {
	// order-2 trees pick merges before direct removal
	tr := NewOrdered[int](WithOrder(2))
	for i := 0; i < 4; i++ {
		tr.Insert(i)
	}
	checkTree(t, tr)

	c := tr.Find(2)
	require.True(t, c.Valid())
	// the leaf holds two records, above half_order, so direct removal
	// would be legal; order-2 classification still merges first
	assert.Equal(t, eraseMergeLeft, tr.classifyErase(c.node))
}

func TestEraseOrder2Stress(t *testing.T) {
	tr := NewOrdered[int](WithOrder(2))
	for i := 0; i < 200; i++ {
		tr.Insert(i)
		checkTree(t, tr)
	}
	for i := 0; i < 200; i += 2 {
		_, err := tr.Erase(tr.Find(i))
		require.NoError(t, err)
		checkTree(t, tr)
	}
	require.Equal(t, 100, tr.Size())
	keys := collect(tr)
	for i, k := range keys {
		require.Equal(t, 2*i+1, k)
	}
}

func TestRandomizedInsertEraseStress(t *testing.T) {
	for _, order := range []int{2, 3, 4, 5, 8} {
		order := order
		t.Run(fmt.Sprintf("order%d", order), func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewSource(int64(order)*7919 + 1))
			tr := NewOrdered[int](WithOrder(order))
			model := make(map[int]bool)

			const ops = 4000
			for i := 0; i < ops; i++ {
				key := rng.Intn(500)
				if rng.Intn(3) < 2 { // insert-biased to grow the tree
					_, inserted := tr.Insert(key)
					require.Equal(t, !model[key], inserted, "insert %d at op %d", key, i)
					model[key] = true
				} else {
					c := tr.Find(key)
					if model[key] {
						require.True(t, c.Valid(), "find %d at op %d", key, i)
						_, err := tr.Erase(c)
						require.NoError(t, err)
						delete(model, key)
					} else {
						require.True(t, c.Equal(tr.End()), "ghost %d at op %d", key, i)
					}
				}
				require.Equal(t, len(model), tr.Size())
				checkTree(t, tr)
			}

			// drain and confirm the fresh-tree state
			for !tr.Empty() {
				_, err := tr.Erase(tr.Begin())
				require.NoError(t, err)
			}
			checkTree(t, tr)
		})
	}
}
