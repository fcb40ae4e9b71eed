// Package treap implements a treap (Cartesian tree): a BST ordered by
// key horizontally and by an independently-assigned random priority
// vertically (max-heap order). Balancing falls out of the priority
// distribution instead of an explicit rebalance step, giving O(log n)
// expected operations without any rotation bookkeeping at all: insert
// and erase are both expressed as split/merge.
package treap

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mikenye/ordtrees/iterator"
	"github.com/mikenye/ordtrees/node"
)

const (
	connectorLeft     = " ╭── "
	connectorRight    = " ╰── "
	connectorVertical = " │   "
	connectorSpace    = "     "
)

// LessFunc defines the strict-less-than ordering over keys.
type LessFunc[K any] func(a, b K) bool

// priority is the vertical (heap) ordering key, drawn independently of
// the key's value at insert time.
type priority int64

// Tree is a treap ordered set.
type Tree[K any] struct {
	root *node.Node[K, priority]
	less LessFunc[K]
	size int
	rng  *rand.Rand
}

// New creates an empty treap ordered by less, with priorities drawn
// from a generator seeded with seed. A fixed seed makes the resulting
// shape, and therefore every split and merge the tree performs,
// reproducible.
func New[K any](less LessFunc[K], seed int64) *Tree[K] {
	return &Tree[K]{
		less: less,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NewTimeSeeded creates an empty treap seeded from the current time,
// for callers that don't need reproducible shapes.
func NewTimeSeeded[K any](less LessFunc[K]) *Tree[K] {
	return New(less, time.Now().UTC().UnixNano())
}

// NewFromSeq creates a treap ordered by less, seeded with seed, and
// populated with keys.
func NewFromSeq[K any](less LessFunc[K], seed int64, keys ...K) *Tree[K] {
	t := New(less, seed)
	for _, k := range keys {
		t.Insert(k)
	}
	return t
}

func (t *Tree[K]) eq(a, b K) bool {
	return !t.less(a, b) && !t.less(b, a)
}

func (t *Tree[K]) randomPriority() priority {
	return priority(t.rng.Int63())
}

// Size returns the number of keys in the tree.
func (t *Tree[K]) Size() int { return t.size }

// Empty reports whether the tree has no keys.
func (t *Tree[K]) Empty() bool { return t.size == 0 }

// Clear removes every key from the tree.
func (t *Tree[K]) Clear() {
	t.root = nil
	t.size = 0
}

// Begin returns an iterator at the smallest key.
func (t *Tree[K]) Begin() *iterator.Iterator[K, priority] {
	return iterator.Begin(t.root)
}

// End returns a one-past-the-end iterator.
func (t *Tree[K]) End() *iterator.Iterator[K, priority] {
	return iterator.End(t.root)
}

// Root returns the key currently at the root and true, or the zero
// value and false if the tree is empty.
func (t *Tree[K]) Root() (K, bool) {
	var zero K
	if t.root == nil {
		return zero, false
	}
	return t.root.Key(), true
}

// Find locates key without disturbing the tree's shape.
func (t *Tree[K]) Find(key K) *iterator.Iterator[K, priority] {
	cur := t.root
	for cur != nil {
		switch {
		case t.less(key, cur.Key()):
			cur = cur.Left()
		case t.less(cur.Key(), key):
			cur = cur.Right()
		default:
			return iterator.Seek(t.root, cur, t.less)
		}
	}
	return iterator.End(t.root)
}

// Contains reports whether key is present.
func (t *Tree[K]) Contains(key K) bool {
	return !t.Find(key).Done()
}

// Clone returns a deep copy. The clone draws its own priorities from a
// time-seeded generator, so its shape is independent of t's.
func (t *Tree[K]) Clone() *Tree[K] {
	clone := NewTimeSeeded(t.less)
	for it := t.Begin(); !it.Done(); it.Next() {
		clone.Insert(it.Key())
	}
	return clone
}

// split partitions subtree into (keys < key, keys >= key), returning
// the two resulting subtree roots. It does not allocate; it reuses the
// existing nodes, splicing left/right links to match the partition.
// This is the strict variant: a present key ends up in rhs, not lhs.
func split[K any](t *Tree[K], subtree *node.Node[K, priority], key K) (lhs, rhs *node.Node[K, priority]) {
	if subtree == nil {
		return nil, nil
	}
	if t.less(subtree.Key(), key) {
		l, r := split(t, subtree.Right(), key)
		subtree.SetRight(l)
		return subtree, r
	}
	l, r := split(t, subtree.Left(), key)
	subtree.SetLeft(r)
	return l, subtree
}

// merge joins lhs and rhs into a single subtree. Every key in lhs must
// be less than every key in rhs. The resulting root is whichever of
// the two roots has the higher priority, preserving heap order.
func merge[K any](lhs, rhs *node.Node[K, priority]) *node.Node[K, priority] {
	if lhs == nil {
		return rhs
	}
	if rhs == nil {
		return lhs
	}
	if lhs.Metadata() < rhs.Metadata() {
		rhs.SetLeft(merge(lhs, rhs.Left()))
		return rhs
	}
	lhs.SetRight(merge(lhs.Right(), rhs))
	return lhs
}

// Insert adds key to the tree with a freshly drawn random priority. A
// duplicate key is a no-op.
func (t *Tree[K]) Insert(key K) *iterator.Iterator[K, priority] {
	if t.Contains(key) {
		return iterator.Seek(t.root, t.findNode(key), t.less)
	}

	newNode := node.New[K, priority](key)
	newNode.SetMetadata(t.randomPriority())

	lhs, rhs := split(t, t.root, key)
	merged := merge(lhs, newNode)
	t.root = merge(merged, rhs)
	t.size++
	return iterator.Seek(t.root, newNode, t.less)
}

func (t *Tree[K]) findNode(key K) *node.Node[K, priority] {
	cur := t.root
	for cur != nil {
		switch {
		case t.less(key, cur.Key()):
			cur = cur.Left()
		case t.less(cur.Key(), key):
			cur = cur.Right()
		default:
			return cur
		}
	}
	return nil
}

// Erase removes key from the tree. It is a no-op if key is absent.
func (t *Tree[K]) Erase(key K) {
	if !t.Contains(key) {
		return
	}
	lhs, rhs := split(t, t.root, key)
	// rhs holds every key >= key, so the target is rhs's leftmost node.
	rhs = deleteMin(rhs)
	t.root = merge(lhs, rhs)
	t.size--
}

// deleteMin removes the leftmost node of subtree and returns the new
// subtree root.
func deleteMin[K any](subtree *node.Node[K, priority]) *node.Node[K, priority] {
	if subtree.Left() == nil {
		return subtree.Right()
	}
	subtree.SetLeft(deleteMin(subtree.Left()))
	return subtree
}

// IsOrdered reports (via a non-nil error) the first BST-order
// violation found.
func (t *Tree[K]) IsOrdered() error {
	var zero K
	var check func(n *node.Node[K, priority], hasMin bool, min K, hasMax bool, max K) error
	check = func(n *node.Node[K, priority], hasMin bool, min K, hasMax bool, max K) error {
		if n == nil {
			return nil
		}
		if hasMin && !t.less(min, n.Key()) {
			return fmt.Errorf("treap: key %v violates lower bound from an ancestor", n.Key())
		}
		if hasMax && !t.less(n.Key(), max) {
			return fmt.Errorf("treap: key %v violates upper bound from an ancestor", n.Key())
		}
		if err := check(n.Left(), hasMin, min, true, n.Key()); err != nil {
			return err
		}
		return check(n.Right(), true, n.Key(), hasMax, max)
	}
	return check(t.root, false, zero, false, zero)
}

// IsHeap reports (via a non-nil error) the first max-heap violation
// found: any node whose priority is lower than a child's.
func (t *Tree[K]) IsHeap() error {
	var check func(n *node.Node[K, priority]) error
	check = func(n *node.Node[K, priority]) error {
		if n == nil {
			return nil
		}
		if l := n.Left(); l != nil && l.Metadata() > n.Metadata() {
			return fmt.Errorf("treap: key %v has lower priority than its left child %v", n.Key(), l.Key())
		}
		if r := n.Right(); r != nil && r.Metadata() > n.Metadata() {
			return fmt.Errorf("treap: key %v has lower priority than its right child %v", n.Key(), r.Key())
		}
		if err := check(n.Left()); err != nil {
			return err
		}
		return check(n.Right())
	}
	return check(t.root)
}

// IsCartesian reports (via a non-nil error) whether the tree satisfies
// both the BST and max-heap invariants simultaneously.
func (t *Tree[K]) IsCartesian() error {
	if err := t.IsOrdered(); err != nil {
		return err
	}
	return t.IsHeap()
}

// String renders the tree for debugging, right subtree above left.
func (t *Tree[K]) String() string {
	var b strings.Builder
	var walk func(n *node.Node[K, priority], prefix string, isRoot, isLeft bool)
	walk = func(n *node.Node[K, priority], prefix string, isRoot, isLeft bool) {
		if n == nil {
			return
		}
		rightPrefix, leftPrefix := prefix, prefix
		if !isRoot {
			if isLeft {
				rightPrefix += connectorVertical
				leftPrefix += connectorSpace
			} else {
				rightPrefix += connectorSpace
				leftPrefix += connectorVertical
			}
		}
		walk(n.Right(), rightPrefix, false, false)
		b.WriteString(prefix)
		if !isRoot {
			if isLeft {
				b.WriteString(connectorRight)
			} else {
				b.WriteString(connectorLeft)
			}
		}
		b.WriteString(n.String())
		b.WriteString("\n")
		walk(n.Left(), leftPrefix, false, true)
	}
	walk(t.root, "", true, false)
	return b.String()
}
