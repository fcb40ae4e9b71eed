// Package splaytree implements a self-adjusting splay-tree ordered
// set: every insert, successful find, and erase finishes by rotating
// the touched node up to the root ("splaying"), giving O(log n)
// amortized operations without maintaining an explicit balance
// invariant.
//
// No example in the corpus this module was built from implements a
// splay tree in Go, so this package is authored directly from the
// reference C++ algorithm, in the same structural idiom as this
// module's avltree package: an explicit path recorded during descent
// stands in for parent pointers, and splaying reuses that path rather
// than re-descending from the root on every rotation.
package splaytree

import (
	"fmt"
	"strings"

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

// Tree is a splay-tree ordered set.
type Tree[K any] struct {
	root *node.Node[K, struct{}]
	less LessFunc[K]
	size int
}

// New creates an empty tree ordered by less.
func New[K any](less LessFunc[K]) *Tree[K] {
	return &Tree[K]{less: less}
}

// NewFromSeq creates a tree ordered by less and populated with keys.
func NewFromSeq[K any](less LessFunc[K], keys ...K) *Tree[K] {
	t := New(less)
	for _, k := range keys {
		t.Insert(k)
	}
	return t
}

func (t *Tree[K]) eq(a, b K) bool {
	return !t.less(a, b) && !t.less(b, a)
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
func (t *Tree[K]) Begin() *iterator.Iterator[K, struct{}] {
	return iterator.Begin(t.root)
}

// End returns a one-past-the-end iterator.
func (t *Tree[K]) End() *iterator.Iterator[K, struct{}] {
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

// Contains reports whether key is present. Like Find, a successful
// lookup splays the matching node to the root.
func (t *Tree[K]) Contains(key K) bool {
	return !t.Find(key).Done()
}

// Clone returns a deep copy built by reinserting every key of t into a
// fresh tree.
func (t *Tree[K]) Clone() *Tree[K] {
	clone := New(t.less)
	for it := t.Begin(); !it.Done(); it.Next() {
		clone.Insert(it.Key())
	}
	return clone
}

// descend walks from the root toward key, returning the full path of
// visited nodes. If key is present, the last entry is the match and
// found is true; otherwise the last entry is the node where the
// search had to stop, and found is false. An empty path means the
// tree is empty.
func (t *Tree[K]) descend(key K) (path []*node.Node[K, struct{}], found bool) {
	cur := t.root
	for cur != nil {
		path = append(path, cur)
		if t.eq(key, cur.Key()) {
			return path, true
		}
		if t.less(key, cur.Key()) {
			cur = cur.Left()
		} else {
			cur = cur.Right()
		}
	}
	return path, false
}

// Insert adds key to the tree and splays it to the root. If key is
// already present, that existing node is splayed to the root instead
// and the tree is otherwise unmodified.
func (t *Tree[K]) Insert(key K) *iterator.Iterator[K, struct{}] {
	if t.root == nil {
		t.root = node.New[K, struct{}](key)
		t.size++
		return iterator.Begin(t.root)
	}

	path, found := t.descend(key)
	if found {
		splay(t, path)
		return iterator.Seek(t.root, path[len(path)-1], t.less)
	}

	last := path[len(path)-1]
	newNode := node.New[K, struct{}](key)
	if t.less(key, last.Key()) {
		last.SetLeft(newNode)
	} else {
		last.SetRight(newNode)
	}
	t.size++
	path = append(path, newNode)
	splay(t, path)
	return iterator.Seek(t.root, newNode, t.less)
}

// Find returns a cursor at key, splaying it to the root on success.
// On a miss, the tree is left untouched and End is returned.
func (t *Tree[K]) Find(key K) *iterator.Iterator[K, struct{}] {
	path, found := t.descend(key)
	if !found {
		return iterator.End(t.root)
	}
	splay(t, path)
	return iterator.Seek(t.root, path[len(path)-1], t.less)
}

// Erase removes key from the tree. It is a no-op if key is absent.
// Whatever node ends up occupying the erased position is splayed to
// the root (when the erased node was a leaf, its parent is splayed
// instead), unifying the root-replacement bookkeeping that the
// original algorithm this was ported from handled asymmetrically.
func (t *Tree[K]) Erase(key K) {
	path, found := t.descend(key)
	if !found {
		return
	}
	target := path[len(path)-1]
	ancestors := path[:len(path)-1]
	left, right := target.Left(), target.Right()

	attachAt := func(replacement *node.Node[K, struct{}]) {
		if len(ancestors) == 0 {
			t.root = replacement
			return
		}
		parent := ancestors[len(ancestors)-1]
		if parent.Left() == target {
			parent.SetLeft(replacement)
		} else {
			parent.SetRight(replacement)
		}
	}

	switch {
	case left != nil:
		// max of left becomes the new occupant of target's slot,
		// taking right as its new right subtree.
		mpath := []*node.Node[K, struct{}]{left}
		for mpath[len(mpath)-1].Right() != nil {
			mpath = append(mpath, mpath[len(mpath)-1].Right())
		}
		m := mpath[len(mpath)-1]
		if len(mpath) > 1 {
			mparent := mpath[len(mpath)-2]
			mparent.SetRight(m.Left())
			m.SetLeft(left)
		}
		m.SetRight(right)
		attachAt(m)
		t.size--
		splay(t, append(append([]*node.Node[K, struct{}]{}, ancestors...), m))

	case right != nil:
		attachAt(right)
		t.size--
		splay(t, append(append([]*node.Node[K, struct{}]{}, ancestors...), right))

	default:
		attachAt(nil)
		t.size--
		if len(ancestors) > 0 {
			splay(t, ancestors)
		}
	}
}

// rotateAtParent performs a single rotation of child around parent,
// mutating only parent's and child's own links. The caller is
// responsible for reattaching the resulting subtree to whatever
// parent's own parent was.
func rotateAtParent[K any](parent, child *node.Node[K, struct{}]) {
	if parent.Left() == child {
		parent.SetLeft(child.Right())
		child.SetRight(parent)
	} else {
		parent.SetRight(child.Left())
		child.SetLeft(parent)
	}
}

// reattach updates whatever link used to point at path[idx] (now
// stale after a rotation) to point at newRoot instead.
func reattach[K any](t *Tree[K], path []*node.Node[K, struct{}], idx int, newRoot *node.Node[K, struct{}]) {
	if idx == 0 {
		t.root = newRoot
		return
	}
	parent := path[idx-1]
	if parent.Left() == path[idx] {
		parent.SetLeft(newRoot)
	} else {
		parent.SetRight(newRoot)
	}
}

// splay moves path's last node to the root via zig / zig-zig /
// zig-zag rotations, reusing the path already captured by the caller
// instead of re-descending from the root for each rotation.
func splay[K any](t *Tree[K], path []*node.Node[K, struct{}]) {
	for len(path) > 1 {
		n := len(path)
		x := path[n-1]
		p := path[n-2]

		if n == 2 {
			rotateAtParent(p, x)
			reattach(t, path, n-2, x)
			path = path[:n-1]
			continue
		}

		g := path[n-3]
		xIsLeftOfP := p.Left() == x
		pIsLeftOfG := g.Left() == p
		if xIsLeftOfP == pIsLeftOfG {
			// zig-zig
			rotateAtParent(g, p)
			rotateAtParent(p, x)
		} else {
			// zig-zag: the first rotation detaches x from p without
			// telling g, so the link from g to p (now stale) must be
			// repointed at x before rotating x past g.
			rotateAtParent(p, x)
			if pIsLeftOfG {
				g.SetLeft(x)
			} else {
				g.SetRight(x)
			}
			rotateAtParent(g, x)
		}
		reattach(t, path, n-3, x)
		path[n-3] = x
		path = path[:n-2]
	}
}

// IsOrdered reports (via a non-nil error) the first BST-order
// violation found.
func (t *Tree[K]) IsOrdered() error {
	var zero K
	var check func(n *node.Node[K, struct{}], hasMin bool, min K, hasMax bool, max K) error
	check = func(n *node.Node[K, struct{}], hasMin bool, min K, hasMax bool, max K) error {
		if n == nil {
			return nil
		}
		if hasMin && !t.less(min, n.Key()) {
			return fmt.Errorf("splaytree: key %v violates lower bound from an ancestor", n.Key())
		}
		if hasMax && !t.less(n.Key(), max) {
			return fmt.Errorf("splaytree: key %v violates upper bound from an ancestor", n.Key())
		}
		if err := check(n.Left(), hasMin, min, true, n.Key()); err != nil {
			return err
		}
		return check(n.Right(), true, n.Key(), hasMax, max)
	}
	return check(t.root, false, zero, false, zero)
}

// String renders the tree for debugging, right subtree above left.
func (t *Tree[K]) String() string {
	var b strings.Builder
	var walk func(n *node.Node[K, struct{}], prefix string, isRoot, isLeft bool)
	walk = func(n *node.Node[K, struct{}], prefix string, isRoot, isLeft bool) {
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
