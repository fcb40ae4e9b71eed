package splaytree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessInt(a, b int) bool { return a < b }

func inOrder(t *Tree[int]) []int {
	var out []int
	for it := t.Begin(); !it.Done(); it.Next() {
		out = append(out, it.Key())
	}
	return out
}

func TestTree_Insert_SplaysNewKeyToRoot(t *testing.T) {
	tr := New(lessInt)
	tr.Insert(5)
	tr.Insert(2)
	tr.Insert(8)
	root, ok := tr.Root()
	require.True(t, ok)
	assert.Equal(t, 8, root)
	assert.Equal(t, []int{2, 5, 8}, inOrder(tr))
	require.NoError(t, tr.IsOrdered())
}

// Scenario 7: inserting 1..5 in order, then finding 1, moves 1 to the
// root via a chain of zig-zig rotations.
func TestTree_Find_SplaysMatchToRoot(t *testing.T) {
	tr := NewFromSeq(lessInt, 1, 2, 3, 4, 5)
	it := tr.Find(1)
	require.False(t, it.Done())
	assert.Equal(t, 1, it.Key())

	root, ok := tr.Root()
	require.True(t, ok)
	assert.Equal(t, 1, root)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, inOrder(tr))
	require.NoError(t, tr.IsOrdered())
}

func TestTree_Find_MissLeavesTreeUntouched(t *testing.T) {
	tr := NewFromSeq(lessInt, 5, 2, 8)
	before, _ := tr.Root()
	it := tr.Find(99)
	assert.True(t, it.Done())
	after, _ := tr.Root()
	assert.Equal(t, before, after)
}

func TestTree_InsertDuplicate_SplaysExistingNode(t *testing.T) {
	tr := NewFromSeq(lessInt, 5, 2, 8, 1)
	tr.Insert(2)
	root, ok := tr.Root()
	require.True(t, ok)
	assert.Equal(t, 2, root)
	assert.Equal(t, 4, tr.Size())
	assert.Equal(t, []int{1, 2, 5, 8}, inOrder(tr))
}

func TestTree_Erase_Root_RightChildOnly(t *testing.T) {
	tr := NewFromSeq(lessInt, 5, 2, 8, 1)
	tr.Erase(1)
	require.NoError(t, tr.IsOrdered())
	assert.Equal(t, 3, tr.Size())
	assert.Equal(t, []int{2, 5, 8}, inOrder(tr))
}

func TestTree_Erase_LeafTarget_SplaysParent(t *testing.T) {
	tr := NewFromSeq(lessInt, 5, 2, 8, 1, 3)
	tr.Erase(5)
	require.NoError(t, tr.IsOrdered())
	assert.Equal(t, 4, tr.Size())
	assert.Equal(t, []int{1, 2, 3, 8}, inOrder(tr))
	root, ok := tr.Root()
	require.True(t, ok)
	assert.Equal(t, 8, root)
}

func TestTree_Erase_RightChildOnly_PromotesRightChild(t *testing.T) {
	tr := NewFromSeq(lessInt, 5, 2, 8, 1, 3, 4)
	tr.Erase(5)
	require.NoError(t, tr.IsOrdered())
	assert.Equal(t, 5, tr.Size())
	assert.Equal(t, []int{1, 2, 3, 4, 8}, inOrder(tr))
}

func TestTree_Erase_Root_NoChildren(t *testing.T) {
	tr := New(lessInt)
	tr.Insert(5)
	tr.Erase(5)
	assert.True(t, tr.Empty())
	_, ok := tr.Root()
	assert.False(t, ok)
}

func TestTree_Erase_DeepestLeaf(t *testing.T) {
	tr := NewFromSeq(lessInt, 5, 8, 9)
	tr.Erase(5)
	require.NoError(t, tr.IsOrdered())
	assert.Equal(t, []int{8, 9}, inOrder(tr))
}

func TestTree_EraseAbsent_IsNoOp(t *testing.T) {
	tr := NewFromSeq(lessInt, 1, 2, 3)
	tr.Erase(99)
	assert.Equal(t, 3, tr.Size())
}

func TestTree_WalkAgainstReference(t *testing.T) {
	initial := []int{5, 2, 15, 1, 3, 10, 20, 4, 6, 12, 25, 7}
	eraseOrder := []int{5, 6, 7, 10, 12, 15, 20, 25, 2, 3, 4, 1}

	tr := NewFromSeq(lessInt, initial...)
	require.NoError(t, tr.IsOrdered())

	reference := append([]int(nil), initial...)
	for _, k := range eraseOrder {
		tr.Erase(k)
		require.NoError(t, tr.IsOrdered())

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

func TestTree_Contains(t *testing.T) {
	tr := NewFromSeq(lessInt, 1, 2, 3)
	assert.True(t, tr.Contains(2))
	assert.False(t, tr.Contains(99))
}

func TestTree_Clone(t *testing.T) {
	tr := NewFromSeq(lessInt, 5, 2, 8, 1, 9, 3)
	clone := tr.Clone()
	assert.Equal(t, inOrder(tr), inOrder(clone))
	clone.Insert(100)
	assert.NotEqual(t, inOrder(tr), inOrder(clone))
}

// FuzzTree exercises mixed insert/find/erase sequences, checking
// ordering invariants after every mutation.
func FuzzTree(f *testing.F) {
	f.Add(1, 2, 3, 4, 5, 2)
	f.Fuzz(func(t *testing.T, k1, k2, k3, k4, k5, deleteCount int) {
		tr := New(lessInt)
		keys := []int{k1, k2, k3, k4, k5}
		for _, k := range keys {
			tr.Insert(k)
			require.NoError(t, tr.IsOrdered())
		}
		if deleteCount < 0 {
			deleteCount = -deleteCount
		}
		for i := 0; i < deleteCount%(len(keys)+1); i++ {
			tr.Erase(keys[i])
			require.NoError(t, tr.IsOrdered())
		}
	})
}
