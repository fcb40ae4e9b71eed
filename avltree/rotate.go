package avltree

import "github.com/mikenye/ordtrees/node"

// rotateLeft performs a pure structural left rotation: n's right
// child becomes the new subtree root, n becomes its left child. It
// does not touch any balance tag.
func rotateLeft[K any](n *node.Node[K, balanceFactor]) *node.Node[K, balanceFactor] {
	root := n.Right()
	n.SetRight(root.Left())
	root.SetLeft(n)
	return root
}

// rotateRight is the mirror of rotateLeft.
func rotateRight[K any](n *node.Node[K, balanceFactor]) *node.Node[K, balanceFactor] {
	root := n.Left()
	n.SetLeft(root.Right())
	root.SetRight(n)
	return root
}

// redistributeDoubleRotationTags assigns balance tags to the three
// nodes involved in a just-completed double rotation, following the
// pre-rotation tag of the pivot (the node now at subtree, i.e. the
// new subtree root): tag -1 gives the left child 0 and the right
// child +1; tag 0 gives both children 0; tag +1 gives the left child
// -1 and the right child 0. The new root itself is always tagged 0.
// The same table applies whether the rotation was left-right or
// right-left.
func redistributeDoubleRotationTags[K any](subtree *node.Node[K, balanceFactor]) {
	switch subtree.Metadata() {
	case balanceLeft1:
		subtree.Left().SetMetadata(balanceZero)
		subtree.Right().SetMetadata(balanceRight1)
	case balanceRight1:
		subtree.Left().SetMetadata(balanceLeft1)
		subtree.Right().SetMetadata(balanceZero)
	case balanceZero:
		subtree.Left().SetMetadata(balanceZero)
		subtree.Right().SetMetadata(balanceZero)
	default:
		panic("avltree: pivot balance factor out of range during double rotation")
	}
	subtree.SetMetadata(balanceZero)
}

// rotateLeftRight rotates n.Left() left, then n right, redistributing
// tags per redistributeDoubleRotationTags.
func rotateLeftRight[K any](n *node.Node[K, balanceFactor]) *node.Node[K, balanceFactor] {
	n.SetLeft(rotateLeft[K](n.Left()))
	newRoot := rotateRight[K](n)
	redistributeDoubleRotationTags[K](newRoot)
	return newRoot
}

// rotateRightLeft is the mirror of rotateLeftRight.
func rotateRightLeft[K any](n *node.Node[K, balanceFactor]) *node.Node[K, balanceFactor] {
	n.SetRight(rotateRight[K](n.Right()))
	newRoot := rotateLeft[K](n)
	redistributeDoubleRotationTags[K](newRoot)
	return newRoot
}
