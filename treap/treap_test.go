package treap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikenye/ordtrees/node"
)

func lessInt(a, b int) bool { return a < b }

func inOrder(t *Tree[int]) []int {
	var out []int
	for it := t.Begin(); !it.Done(); it.Next() {
		out = append(out, it.Key())
	}
	return out
}

func treeHeight(n *node.Node[int, priority]) int {
	if n == nil {
		return -1
	}
	return max(treeHeight(n.Left()), treeHeight(n.Right())) + 1
}

// Scenario 8: fixed-seed treap insert/erase sequence stays ordered and
// heap-valid throughout, regardless of the priorities the seed draws.
func TestTree_InsertThenErase_StaysCartesian(t *testing.T) {
	tr := NewFromSeq(lessInt, 11, 10, 20, 5, 15, 25)
	require.NoError(t, tr.IsCartesian())
	assert.Equal(t, []int{5, 10, 15, 20, 25}, inOrder(tr))

	tr.Erase(10)
	require.NoError(t, tr.IsCartesian())
	assert.Equal(t, []int{5, 15, 20, 25}, inOrder(tr))
}

func TestTree_Insert_ReturnsExistingCursorOnDuplicate(t *testing.T) {
	tr := NewFromSeq(lessInt, 7, 1, 2, 3)
	before := tr.Size()
	it := tr.Insert(2)
	assert.False(t, it.Done())
	assert.Equal(t, 2, it.Key())
	assert.Equal(t, before, tr.Size())
}

func TestTree_EraseAbsent_IsNoOp(t *testing.T) {
	tr := NewFromSeq(lessInt, 7, 1, 2, 3)
	tr.Erase(99)
	assert.Equal(t, 3, tr.Size())
}

func TestTree_Find_IsNonMutating(t *testing.T) {
	tr := NewFromSeq(lessInt, 7, 1, 9, 2, 8)
	before := tr.String()
	it := tr.Find(2)
	assert.False(t, it.Done())
	assert.Equal(t, before, tr.String())
}

func TestTree_Find_Miss(t *testing.T) {
	tr := NewFromSeq(lessInt, 7, 1, 9, 2, 8)
	it := tr.Find(100)
	assert.True(t, it.Done())
}

func TestTree_Contains(t *testing.T) {
	tr := NewFromSeq(lessInt, 1, 2, 3)
	assert.True(t, tr.Contains(2))
	assert.False(t, tr.Contains(99))
}

func TestTree_SameSeed_ProducesSameShape(t *testing.T) {
	t1 := NewFromSeq(lessInt, 42, 1, 2, 3, 4, 5)
	t2 := NewFromSeq(lessInt, 42, 1, 2, 3, 4, 5)
	assert.Equal(t, t1.String(), t2.String())
}

func TestTree_Clone(t *testing.T) {
	tr := NewFromSeq(lessInt, 1, 5, 2, 8, 1, 9, 3)
	clone := tr.Clone()
	assert.Equal(t, inOrder(tr), inOrder(clone))
	clone.Insert(100)
	assert.NotEqual(t, inOrder(tr), inOrder(clone))
}

func TestTree_IsOrdered_Fresh(t *testing.T) {
	tr := New(lessInt, 1)
	assert.NoError(t, tr.IsOrdered())
	assert.NoError(t, tr.IsHeap())
}

// TestTree_Height_StaysNearExpectedBound checks the expected-height
// bound for a treap: for n = 10^5, expected height over random
// priorities is <= 3*ln(n) with high probability.
func TestTree_Height_StaysNearExpectedBound(t *testing.T) {
	const n = 100_000
	tr := New(lessInt, 99)
	for i := 0; i < n; i++ {
		tr.Insert(i)
	}
	require.NoError(t, tr.IsCartesian())

	h := treeHeight(tr.root)
	bound := 3 * math.Log(float64(n))
	assert.LessOrEqualf(t, float64(h), bound,
		"n=%d: height %d exceeds 3*ln(n)=%.2f", n, h, bound)
}

// WalkAgainstReference mirrors the AVL and splay suites' mixed
// insert/erase walk, validating cartesian-ness after every mutation.
func TestTree_WalkAgainstReference(t *testing.T) {
	initial := []int{5, 2, 15, 1, 3, 10, 20, 4, 6, 12, 25, 7}
	eraseOrder := []int{5, 6, 7, 10, 12, 15, 20, 25, 2, 3, 4, 1}

	tr := New(lessInt, 99)
	for _, k := range initial {
		tr.Insert(k)
	}
	require.NoError(t, tr.IsCartesian())

	reference := append([]int(nil), initial...)
	for _, k := range eraseOrder {
		tr.Erase(k)
		require.NoError(t, tr.IsCartesian())

		reference = remove(reference, k)
		assert.Equal(t, sorted(append([]int(nil), reference...)), inOrder(tr))
	}
	assert.True(t, tr.Empty())
}

func remove(s []int, k int) []int {
	out := s[:0:0]
	for _, v := range s {
		if v != k {
			out = append(out, v)
		}
	}
	return out
}

func sorted(s []int) []int {
	out := append([]int(nil), s...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// FuzzTree exercises mixed insert/erase sequences against a
// time-independent but fuzz-varied seed, checking cartesian-ness after
// every mutation.
func FuzzTree(f *testing.F) {
	f.Add(int64(1), 1, 2, 3, 4, 5, 2)
	f.Fuzz(func(t *testing.T, seed int64, k1, k2, k3, k4, k5, deleteCount int) {
		tr := New(lessInt, seed)
		keys := []int{k1, k2, k3, k4, k5}
		for _, k := range keys {
			tr.Insert(k)
			require.NoError(t, tr.IsCartesian())
		}
		if deleteCount < 0 {
			deleteCount = -deleteCount
		}
		for i := 0; i < deleteCount%(len(keys)+1); i++ {
			tr.Erase(keys[i])
			require.NoError(t, tr.IsCartesian())
		}
	})
}
