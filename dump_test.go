package bptree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpEmptyTree(t *testing.T) {
	tr := NewOrdered[int]()
	assert.Equal(t, "", tr.DumpString())

	var sb strings.Builder
	require.NoError(t, tr.Dump(&sb))
	assert.Equal(t, "", sb.String())
}

func TestDumpSingleLeaf(t *testing.T) {
	tr := NewOrdered[int]()
	tr.Insert(2)
	tr.Insert(1)
	tr.Insert(3)
	assert.Equal(t, "[1,2,3]\n", tr.DumpString())
}

func TestDumpOneLinePerLevel(t *testing.T) {
	tr := NewOrdered[int]()
	for i := 0; i <= 5; i++ {
		tr.Insert(i)
	}

	lines := strings.Split(strings.TrimRight(tr.DumpString(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[1,3,5]", lines[0])
	assert.Equal(t, "[0,1][2,3][4,5]", lines[1])
}

func TestFingerprintTracksContent(t *testing.T) {
	a := NewOrdered[int]()
	b := NewOrdered[int]()

	// same keys, different insertion orders and shapes
	for i := 0; i < 100; i++ {
		a.Insert(i)
	}
	for i := 99; i >= 0; i-- {
		b.Insert(i)
	}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	_, err := b.Erase(b.Find(50))
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	b.Insert(50)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintEmptyTreesAgree(t *testing.T) {
	assert.Equal(t, NewOrdered[int]().Fingerprint(), NewOrdered[int]().Fingerprint())
}
