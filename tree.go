package sweepline

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Node is a node of a left-leaning red-black tree. The tree owns its children, the parent is a back-reference.
type Node[K any] struct {
	Key K

	parent, left, right *Node[K]
	red                 bool
}

// Prev returns the in-order predecessor, or nil.
func (n *Node[K]) Prev() *Node[K] {
	// go left
	if n.left != nil {
		n = n.left
		for n.right != nil {
			n = n.right // find the right-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.left == n {
		n = n.parent // find first parent for which we're right
	}
	return n.parent // can be nil
}

// Next returns the in-order successor, or nil.
func (n *Node[K]) Next() *Node[K] {
	// go right
	if n.right != nil {
		n = n.right
		for n.left != nil {
			n = n.left // find the left-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.right == n {
		n = n.parent // find first parent for which we're left
	}
	return n.parent // can be nil
}

func isRed[K any](n *Node[K]) bool {
	return n != nil && n.red
}

func (n *Node[K]) setLeft(c *Node[K]) {
	n.left = c
	if c != nil {
		c.parent = n
	}
}

func (n *Node[K]) setRight(c *Node[K]) {
	n.right = c
	if c != nil {
		c.parent = n
	}
}

func (n *Node[K]) min() *Node[K] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *Node[K]) max() *Node[K] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// detach clears all links of a node that was removed from the tree.
func (n *Node[K]) detach() {
	var zero K
	n.Key = zero // help the GC
	n.parent, n.left, n.right = nil, nil, nil
	n.red = false
}

// locate returns -1 if n is in the left subtree of h, 1 if in the right subtree, and 0 if n is h.
func (h *Node[K]) locate(n *Node[K]) int {
	for c := n; c != h; c = c.parent {
		if c == nil {
			panic("node not in subtree")
		} else if c.parent == h {
			if c == h.left {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (h *Node[K]) rotateLeft() *Node[K] {
	x := h.right
	x.parent = h.parent
	h.setRight(x.left)
	x.setLeft(h)
	x.red = h.red
	h.red = true
	return x
}

func (h *Node[K]) rotateRight() *Node[K] {
	x := h.left
	x.parent = h.parent
	h.setLeft(x.right)
	x.setRight(h)
	x.red = h.red
	h.red = true
	return x
}

func (h *Node[K]) flipColors() {
	h.red = !h.red
	h.left.red = !h.left.red
	h.right.red = !h.right.red
}

// fixUp restores the left-leaning invariants on the way up.
func (h *Node[K]) fixUp() *Node[K] {
	if isRed(h.right) {
		h = h.rotateLeft() // right-leaning red
	}
	if isRed(h.left) && isRed(h.left.left) {
		h = h.rotateRight() // two reds in a row
	}
	if isRed(h.left) && isRed(h.right) {
		h.flipColors() // split 4-node
	}
	return h
}

// moveRedLeft makes h.left or one of its children red, assuming h is red and both h.left and h.left.left are black.
func (h *Node[K]) moveRedLeft() *Node[K] {
	h.flipColors()
	if isRed(h.right.left) {
		h.setRight(h.right.rotateRight())
		h = h.rotateLeft()
		h.flipColors()
	}
	return h
}

// moveRedRight makes h.right or one of its children red, assuming h is red and both h.right and h.right.left are black.
func (h *Node[K]) moveRedRight() *Node[K] {
	h.flipColors()
	if isRed(h.left.left) {
		h = h.rotateRight()
		h.flipColors()
	}
	return h
}

func (n *Node[K]) Print(w io.Writer, indent int) {
	if n.right != nil {
		n.right.Print(w, indent+1)
	} else if n.left != nil {
		fmt.Fprintf(w, "%vnil\n", strings.Repeat("  ", indent+1))
	}
	mark := ""
	if n.red {
		mark = "*"
	}
	fmt.Fprintf(w, "%v%v%v\n", strings.Repeat("  ", indent), mark, n.Key)
	if n.left != nil {
		n.left.Print(w, indent+1)
	} else if n.right != nil {
		fmt.Fprintf(w, "%vnil\n", strings.Repeat("  ", indent+1))
	}
}

////////////////////////////////////////////////////////////////

// Tree is a left-leaning red-black tree (Sedgewick, 2008) ordered by a comparison function. Keys that compare equal are allowed and are kept in insertion order. All operations are O(log n).
type Tree[K any] struct {
	root    *Node[K]
	compare func(K, K) int
	size    int

	// bind is called whenever a key is placed in a node, that is on insertion and when a key is moved into the place of a deleted key
	bind func(*Node[K])
}

// NewTree returns an empty tree ordered by compare, which returns a negative number if a < b, a positive number if a > b, and zero if they are equal.
func NewTree[K any](compare func(a, b K) int) *Tree[K] {
	return &Tree[K]{
		compare: compare,
	}
}

// Len returns the number of keys in the tree.
func (t *Tree[K]) Len() int {
	return t.size
}

// Empty returns true if the tree holds no keys.
func (t *Tree[K]) Empty() bool {
	return t.root == nil
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[K]) Root() *Node[K] {
	return t.root
}

// Min returns the node with the smallest key, or nil.
func (t *Tree[K]) Min() *Node[K] {
	if t.root == nil {
		return nil
	}
	return t.root.min()
}

// Max returns the node with the largest key, or nil.
func (t *Tree[K]) Max() *Node[K] {
	if t.root == nil {
		return nil
	}
	return t.root.max()
}

// Find returns a node with a key equal to key. May return nil.
func (t *Tree[K]) Find(key K) *Node[K] {
	n := t.root
	for n != nil {
		if cmp := t.compare(key, n.Key); cmp < 0 {
			n = n.left
		} else if 0 < cmp {
			n = n.right
		} else {
			return n
		}
	}
	return nil
}

// All iterates over the keys in order.
func (t *Tree[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for n := t.Min(); n != nil; n = n.Next() {
			if !yield(n.Key) {
				return
			}
		}
	}
}

// Insert adds key to the tree and returns its node.
func (t *Tree[K]) Insert(key K) *Node[K] {
	n := &Node[K]{Key: key, red: true}
	t.root = t.insert(t.root, n)
	t.root.parent = nil
	t.root.red = false
	t.size++
	if t.bind != nil {
		t.bind(n)
	}
	return n
}

func (t *Tree[K]) insert(h, n *Node[K]) *Node[K] {
	if h == nil {
		return n
	}
	if t.compare(n.Key, h.Key) < 0 {
		h.setLeft(t.insert(h.left, n))
	} else {
		h.setRight(t.insert(h.right, n))
	}
	return h.fixUp()
}

// Delete removes a key equal to key from the tree. It returns false if no such key exists. When several keys are equal, any one of them is removed.
func (t *Tree[K]) Delete(key K) bool {
	n := t.Find(key)
	if n == nil {
		return false
	}
	t.Remove(n) // equal keys may be on either side, walk by position
	return true
}

// Remove removes the key held by node n from the tree. The walk down the tree follows the position of n instead of comparing keys, so that it succeeds even when the order of the keys has become stale. Node n must be in the tree and may not be used afterwards, since it may receive the key of its successor.
func (t *Tree[K]) Remove(n *Node[K]) {
	t.delete(func(h *Node[K]) int {
		return h.locate(n)
	})
}

// DeleteMin removes and returns the smallest key.
func (t *Tree[K]) DeleteMin() (K, bool) {
	if t.root == nil {
		var zero K
		return zero, false
	}
	key := t.root.min().Key
	if !isRed(t.root.left) && !isRed(t.root.right) {
		t.root.red = true
	}
	t.root = t.deleteMin(t.root)
	t.finish()
	return key, true
}

// delete removes the node towards which dir steers, where dir returns the direction of the target relative to a given node.
func (t *Tree[K]) delete(dir func(*Node[K]) int) {
	if !isRed(t.root.left) && !isRed(t.root.right) {
		t.root.red = true
	}
	t.root = t.remove(t.root, dir)
	t.finish()
}

func (t *Tree[K]) finish() {
	if t.root != nil {
		t.root.parent = nil
		t.root.red = false
	}
	t.size--
}

func (t *Tree[K]) remove(h *Node[K], dir func(*Node[K]) int) *Node[K] {
	if dir(h) < 0 {
		if !isRed(h.left) && !isRed(h.left.left) {
			h = h.moveRedLeft()
		}
		h.setLeft(t.remove(h.left, dir))
	} else {
		if isRed(h.left) {
			h = h.rotateRight()
		}
		if dir(h) == 0 && h.right == nil {
			h.detach()
			return nil
		}
		if !isRed(h.right) && !isRed(h.right.left) {
			h = h.moveRedRight()
		}
		if dir(h) == 0 {
			// copy the successor's key into place and delete the successor
			h.Key = h.right.min().Key
			if t.bind != nil {
				t.bind(h)
			}
			h.setRight(t.deleteMin(h.right))
		} else {
			h.setRight(t.remove(h.right, dir))
		}
	}
	return h.fixUp()
}

func (t *Tree[K]) deleteMin(h *Node[K]) *Node[K] {
	if h.left == nil {
		h.detach()
		return nil
	}
	if !isRed(h.left) && !isRed(h.left.left) {
		h = h.moveRedLeft()
	}
	h.setLeft(t.deleteMin(h.left))
	return h.fixUp()
}

func (t *Tree[K]) String() string {
	if t.root == nil {
		return "nil"
	}

	sb := strings.Builder{}
	t.root.Print(&sb, 0)
	str := sb.String()
	if 0 < len(str) {
		str = str[:len(str)-1]
	}
	return str
}
