// Package iterator provides a bidirectional in-order cursor shared by
// every tree engine in this module.
//
// Because nodes carry no parent pointer, the cursor reconstructs
// ancestor context itself: it holds the path from the root to the
// current position as an explicit stack, innermost (current) node on
// top. A nil on top of the stack denotes the one-past-the-end
// position. Stepping is O(1) amortized over a full traversal, since
// each edge of the tree is pushed and popped at most twice.
package iterator

import "github.com/mikenye/ordtrees/node"

// Iterator is a bidirectional in-order cursor over a tree built from
// node.Node[K, M]. Any mutation to the underlying tree invalidates
// outstanding iterators; this type performs no validity tracking of
// its own, matching the host engines' documented invalidation rules.
type Iterator[K any, M any] struct {
	root  *node.Node[K, M]
	stack []*node.Node[K, M]
}

// Begin returns an iterator positioned at the leftmost node of root
// (or an end iterator, if root is nil).
func Begin[K any, M any](root *node.Node[K, M]) *Iterator[K, M] {
	it := &Iterator[K, M]{root: root}
	for n := root; n != nil; n = n.Left() {
		it.stack = append(it.stack, n)
	}
	return it
}

// End returns a one-past-the-end iterator over the tree rooted at root.
func End[K any, M any](root *node.Node[K, M]) *Iterator[K, M] {
	it := &Iterator[K, M]{root: root}
	for n := root; n != nil; n = n.Right() {
		it.stack = append(it.stack, n)
	}
	it.stack = append(it.stack, nil)
	return it
}

// Seek returns an iterator positioned at target, descending from root
// using less to navigate. If target is not reachable from root via
// BST navigation (it does not belong to this tree), the returned
// iterator's behavior is undefined; callers must only pass a node
// known to be in the tree rooted at root.
func Seek[K any, M any](root *node.Node[K, M], target *node.Node[K, M], less func(a, b K) bool) *Iterator[K, M] {
	it := &Iterator[K, M]{root: root}
	n := root
	for n != nil {
		it.stack = append(it.stack, n)
		if n == target {
			break
		}
		if less(target.Key(), n.Key()) {
			n = n.Left()
		} else {
			n = n.Right()
		}
	}
	return it
}

// Done reports whether the iterator is at the one-past-the-end
// position.
func (it *Iterator[K, M]) Done() bool {
	return len(it.stack) == 0 || it.stack[len(it.stack)-1] == nil
}

// Node returns the node at the current position, or nil if Done.
func (it *Iterator[K, M]) Node() *node.Node[K, M] {
	if it.Done() {
		return nil
	}
	return it.stack[len(it.stack)-1]
}

// Key returns the key at the current position. It panics if Done.
func (it *Iterator[K, M]) Key() K {
	return it.stack[len(it.stack)-1].Key()
}

// Next advances the iterator to the next key in ascending order.
// Advancing past the end is a no-op.
func (it *Iterator[K, M]) Next() {
	if it.Done() {
		return
	}

	cur := it.stack[len(it.stack)-1]
	if cur.Right() != nil {
		for n := cur.Right(); n != nil; n = n.Left() {
			it.stack = append(it.stack, n)
		}
		return
	}

	// pop until we ascend out of a right child; the first ancestor
	// we reach via a left edge is the next key, otherwise we have
	// exhausted the tree and must rebuild the end sentinel.
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		if parent := it.top(); parent != nil && parent.Left() == top {
			return
		}
	}

	*it = *End(it.root)
}

// Prev moves the iterator to the previous key in ascending order.
// Calling Prev on the begin position is undefined behavior (per the
// iterator contract) and is not guarded against here.
func (it *Iterator[K, M]) Prev() {
	if it.Done() {
		// drop the nil end marker; the rightmost node, already on the
		// stack from End's right-spine push, becomes current.
		it.stack = it.stack[:len(it.stack)-1]
		return
	}

	cur := it.stack[len(it.stack)-1]
	if cur.Left() != nil {
		for n := cur.Left(); n != nil; n = n.Right() {
			it.stack = append(it.stack, n)
		}
		return
	}

	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		if parent := it.top(); parent != nil && parent.Right() == top {
			return
		}
	}
}

// top returns the current top of the stack, or nil if the stack is
// empty.
func (it *Iterator[K, M]) top() *node.Node[K, M] {
	if len(it.stack) == 0 {
		return nil
	}
	return it.stack[len(it.stack)-1]
}

// Equal reports whether it and other are at the same position. Two
// iterators over different trees are never equal, even when both are
// at end.
func (it *Iterator[K, M]) Equal(other *Iterator[K, M]) bool {
	if it.Done() && other.Done() {
		return it.root == other.root
	}
	return it.root == other.root && it.Node() == other.Node()
}
