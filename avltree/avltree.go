// Package avltree implements a height-balanced AVL ordered set.
//
// Every node carries a 5-valued balance tag (the signed height
// difference, right minus left); only {-1, 0, +1} persist between
// public calls, {-2, +2} are transient states a rebalance pass
// eliminates before returning. Insert and erase walk an explicit path
// recorded during descent rather than following parent pointers —
// nodes in this package have none.
package avltree

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

// Tree is a height-balanced AVL ordered set.
type Tree[K any] struct {
	root *node.Node[K, balanceFactor]
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
func (t *Tree[K]) Begin() *iterator.Iterator[K, balanceFactor] {
	return iterator.Begin(t.root)
}

// End returns a one-past-the-end iterator.
func (t *Tree[K]) End() *iterator.Iterator[K, balanceFactor] {
	return iterator.End(t.root)
}

// Find returns a cursor at key, or End if key is absent.
func (t *Tree[K]) Find(key K) *iterator.Iterator[K, balanceFactor] {
	cur := t.root
	for cur != nil {
		if t.eq(key, cur.Key()) {
			return iterator.Seek(t.root, cur, t.less)
		}
		if t.less(key, cur.Key()) {
			cur = cur.Left()
		} else {
			cur = cur.Right()
		}
	}
	return iterator.End(t.root)
}

// Root returns the key at the root of the tree and true, or the zero
// value and false if the tree is empty.
func (t *Tree[K]) Root() (K, bool) {
	var zero K
	if t.root == nil {
		return zero, false
	}
	return t.root.Key(), true
}

// Contains reports whether key is present.
func (t *Tree[K]) Contains(key K) bool {
	return !t.Find(key).Done()
}

// Clone returns a deep copy built by reinserting every key of t into a
// fresh tree. The resulting shape need not match t's (rotations depend
// only on insertion order), but the set of keys is identical.
func (t *Tree[K]) Clone() *Tree[K] {
	clone := New(t.less)
	for it := t.Begin(); !it.Done(); it.Next() {
		clone.Insert(it.Key())
	}
	return clone
}

// Insert adds key to the tree, or returns a cursor to the existing
// node if key is already present (the tree is left unmodified).
func (t *Tree[K]) Insert(key K) *iterator.Iterator[K, balanceFactor] {
	if t.root == nil {
		t.root = node.New[K, balanceFactor](key)
		t.size++
		return iterator.Begin(t.root)
	}

	var path []*node.Node[K, balanceFactor]
	var right []bool
	branchIdx := -1 // deepest ancestor whose balance was non-zero before this insert

	cur := t.root
	for {
		if t.eq(key, cur.Key()) {
			return iterator.Seek(t.root, cur, t.less)
		}
		if cur.Metadata() != balanceZero {
			branchIdx = len(path)
		}
		goRight := t.less(cur.Key(), key)
		path = append(path, cur)
		right = append(right, goRight)

		var next *node.Node[K, balanceFactor]
		if goRight {
			next = cur.Right()
		} else {
			next = cur.Left()
		}
		if next == nil {
			break
		}
		cur = next
	}

	parent := path[len(path)-1]
	newNode := node.New[K, balanceFactor](key)
	if right[len(right)-1] {
		parent.SetRight(newNode)
	} else {
		parent.SetLeft(newNode)
	}
	t.size++

	start := branchIdx
	if start < 0 {
		start = 0
	}
	for i := len(path) - 1; i >= start; i-- {
		if right[i] {
			path[i].SetMetadata(shiftRight(path[i].Metadata()))
		} else {
			path[i].SetMetadata(shiftLeft(path[i].Metadata()))
		}
	}

	branch := path[start]
	if branch.Metadata() == balanceLeft2 || branch.Metadata() == balanceRight2 {
		newSubtreeRoot := rebalanceAfterInsert[K](branch)
		if start == 0 {
			t.root = newSubtreeRoot
		} else if right[start-1] {
			path[start-1].SetRight(newSubtreeRoot)
		} else {
			path[start-1].SetLeft(newSubtreeRoot)
		}
	}

	return iterator.Seek(t.root, newNode, t.less)
}

// Erase removes key from the tree. It is a no-op if key is absent.
func (t *Tree[K]) Erase(key K) {
	var path []*node.Node[K, balanceFactor]
	var right []bool

	cur := t.root
	var target *node.Node[K, balanceFactor]
	for cur != nil {
		if t.eq(key, cur.Key()) {
			target = cur
			break
		}
		goRight := t.less(cur.Key(), key)
		path = append(path, cur)
		right = append(right, goRight)
		if goRight {
			cur = cur.Right()
		} else {
			cur = cur.Left()
		}
	}
	if target == nil {
		return
	}

	if t.size == 1 {
		t.root = nil
		t.size = 0
		return
	}

	attach := func(replacement *node.Node[K, balanceFactor]) {
		if len(path) == 0 {
			t.root = replacement
			return
		}
		if right[len(right)-1] {
			path[len(path)-1].SetRight(replacement)
		} else {
			path[len(path)-1].SetLeft(replacement)
		}
	}

	left, rightChild := target.Left(), target.Right()

	switch {
	case rightChild == nil:
		attach(left)

	case rightChild.Left() == nil:
		rightChild.SetLeft(left)
		rightChild.SetMetadata(target.Metadata())
		attach(rightChild)
		path = append(path, rightChild)
		right = append(right, true)

	default:
		var succPath []*node.Node[K, balanceFactor]
		succ := rightChild
		for succ.Left() != nil {
			succPath = append(succPath, succ)
			succ = succ.Left()
		}
		succParent := succPath[len(succPath)-1]
		succParent.SetLeft(succ.Right())
		succ.SetLeft(left)
		succ.SetRight(rightChild)
		succ.SetMetadata(target.Metadata())
		attach(succ)

		path = append(path, succ)
		right = append(right, true)
		path = append(path, succPath...)
		for range succPath {
			right = append(right, false)
		}
	}

	t.size--
	t.rebalanceWalk(path, right)
}

// rebalanceWalk walks path from its deepest entry (path[len-1]) back
// to the root, shrinking each ancestor's balance tag on the side
// recorded in right, rotating as needed, and stopping as soon as an
// ancestor's subtree height turns out unchanged.
func (t *Tree[K]) rebalanceWalk(path []*node.Node[K, balanceFactor], right []bool) {
	for i := len(path) - 1; i >= 0; i-- {
		newSubtreeRoot, stop := rebalanceAfterErase[K](path[i], right[i])
		if i == 0 {
			t.root = newSubtreeRoot
		} else if right[i-1] {
			path[i-1].SetRight(newSubtreeRoot)
		} else {
			path[i-1].SetLeft(newSubtreeRoot)
		}
		if stop {
			return
		}
	}
}

// rebalanceAfterInsert applies the insertion rebalance cases (SPEC_FULL
// §4.2.2 step 5) at the branch root n, whose balance tag has just
// become ±2.
func rebalanceAfterInsert[K any](n *node.Node[K, balanceFactor]) *node.Node[K, balanceFactor] {
	switch n.Metadata() {
	case balanceLeft2:
		if n.Left().Metadata() == balanceLeft1 {
			newRoot := rotateRight[K](n)
			newRoot.SetMetadata(balanceZero)
			newRoot.Right().SetMetadata(balanceZero)
			return newRoot
		}
		return rotateLeftRight[K](n)
	case balanceRight2:
		if n.Right().Metadata() == balanceRight1 {
			newRoot := rotateLeft[K](n)
			newRoot.SetMetadata(balanceZero)
			newRoot.Left().SetMetadata(balanceZero)
			return newRoot
		}
		return rotateRightLeft[K](n)
	default:
		return n
	}
}

// rebalanceAfterErase applies the deletion rebalance cases (SPEC_FULL
// §4.2.3 step 4) at ancestor n, whose subtree just lost a node on its
// right side (shrunkRight) or left side. It returns the (possibly
// rotated) new subtree root, and whether propagation should stop
// because the subtree's height did not change.
func rebalanceAfterErase[K any](n *node.Node[K, balanceFactor], shrunkRight bool) (*node.Node[K, balanceFactor], bool) {
	if shrunkRight {
		n.SetMetadata(shiftLeft(n.Metadata()))
		switch n.Metadata() {
		case balanceLeft1:
			return n, true
		case balanceLeft2:
			switch n.Left().Metadata() {
			case balanceRight1:
				return rotateLeftRight[K](n), false
			case balanceLeft1:
				newRoot := rotateRight[K](n)
				newRoot.SetMetadata(balanceZero)
				newRoot.Right().SetMetadata(balanceZero)
				return newRoot, false
			default: // sibling was balanced: rotation does not shrink the subtree
				newRoot := rotateRight[K](n)
				newRoot.SetMetadata(balanceRight1)
				newRoot.Right().SetMetadata(balanceLeft1)
				return newRoot, true
			}
		default:
			return n, false
		}
	}

	n.SetMetadata(shiftRight(n.Metadata()))
	switch n.Metadata() {
	case balanceRight1:
		return n, true
	case balanceRight2:
		switch n.Right().Metadata() {
		case balanceLeft1:
			return rotateRightLeft[K](n), false
		case balanceRight1:
			newRoot := rotateLeft[K](n)
			newRoot.SetMetadata(balanceZero)
			newRoot.Left().SetMetadata(balanceZero)
			return newRoot, false
		default:
			newRoot := rotateLeft[K](n)
			newRoot.SetMetadata(balanceLeft1)
			newRoot.Left().SetMetadata(balanceRight1)
			return newRoot, true
		}
	default:
		return n, false
	}
}

// IsOrdered reports (via a non-nil error) the first BST-order
// violation found, validating each child against its own inherited
// bounds rather than swapping bounds between children.
func (t *Tree[K]) IsOrdered() error {
	var zero K
	var check func(n *node.Node[K, balanceFactor], hasMin bool, min K, hasMax bool, max K) error
	check = func(n *node.Node[K, balanceFactor], hasMin bool, min K, hasMax bool, max K) error {
		if n == nil {
			return nil
		}
		if hasMin && !t.less(min, n.Key()) {
			return fmt.Errorf("avltree: key %v violates lower bound from an ancestor", n.Key())
		}
		if hasMax && !t.less(n.Key(), max) {
			return fmt.Errorf("avltree: key %v violates upper bound from an ancestor", n.Key())
		}
		if err := check(n.Left(), hasMin, min, true, n.Key()); err != nil {
			return err
		}
		return check(n.Right(), true, n.Key(), hasMax, max)
	}
	return check(t.root, false, zero, false, zero)
}

// IsBalanced reports whether every persistent balance tag lies in
// {-1, 0, +1}.
func (t *Tree[K]) IsBalanced() error {
	var check func(n *node.Node[K, balanceFactor]) error
	check = func(n *node.Node[K, balanceFactor]) error {
		if n == nil {
			return nil
		}
		switch n.Metadata() {
		case balanceLeft1, balanceZero, balanceRight1:
		default:
			return fmt.Errorf("avltree: node %v has out-of-range balance tag %v", n.Key(), n.Metadata())
		}
		if err := check(n.Left()); err != nil {
			return err
		}
		return check(n.Right())
	}
	return check(t.root)
}

// CheckBalanceFactors reports whether every node's recorded balance
// tag equals the true signed height difference of its subtrees.
func (t *Tree[K]) CheckBalanceFactors() error {
	_, err := t.checkBalanceFactors(t.root)
	return err
}

func (t *Tree[K]) checkBalanceFactors(n *node.Node[K, balanceFactor]) (height int, err error) {
	if n == nil {
		return -1, nil
	}
	lh, err := t.checkBalanceFactors(n.Left())
	if err != nil {
		return 0, err
	}
	rh, err := t.checkBalanceFactors(n.Right())
	if err != nil {
		return 0, err
	}
	want := balanceFactor(rh - lh)
	if n.Metadata() != want {
		return 0, fmt.Errorf("avltree: node %v has balance tag %v, want %v", n.Key(), n.Metadata(), want)
	}
	return max(lh, rh) + 1, nil
}

// IsAVL reports whether the tree is simultaneously ordered, balanced,
// and internally consistent. It is the combination of IsOrdered,
// IsBalanced and CheckBalanceFactors.
func (t *Tree[K]) IsAVL() error {
	if err := t.IsOrdered(); err != nil {
		return err
	}
	if err := t.IsBalanced(); err != nil {
		return err
	}
	return t.CheckBalanceFactors()
}

// String renders the tree for debugging, right subtree above left,
// using the same box-drawing connectors across every tree package in
// this module.
func (t *Tree[K]) String() string {
	var b strings.Builder
	var walk func(n *node.Node[K, balanceFactor], prefix string, isRoot, isLeft bool)
	walk = func(n *node.Node[K, balanceFactor], prefix string, isRoot, isLeft bool) {
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
