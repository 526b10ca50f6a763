// File: bptree.go
package bptree

import (
	"cmp"
	"sync"
)

// DefaultOrder is the fallback branching factor if a user-supplied order is too small.
const DefaultOrder = 4

// Compare orders two keys. It returns a negative number when a < b, zero when
// a == b and a positive number when a > b.
type Compare[K any] func(a, b K) int

// findChildIndex determines which child pointer to follow
// (or where to insert a new key) in an internal node.
func findChildIndex[K any](keys []K, searchKey K, compare Compare[K]) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if compare(searchKey, keys[mid]) < 0 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// lowerBound returns the first index whose key is >= searchKey.
func lowerBound[K any](keys []K, searchKey K, compare Compare[K]) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if compare(keys[mid], searchKey) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// BPlusTree is an in-memory B+Tree with linked leaves, ordered by a
// caller-supplied comparator.
type BPlusTree[K any, V any] struct {
	root    *node[K, V]
	order   int
	height  int
	size    int
	compare Compare[K]
	m       sync.RWMutex
}

// node represents both internal and leaf nodes in the B+Tree.
type node[K any, V any] struct {
	isLeaf   bool
	keys     []K
	children []*node[K, V] // used if !isLeaf
	values   []V           // used if isLeaf
	parent   *node[K, V]
	next     *node[K, V] // leaf-link pointer, for ordered scans
}

func newLeaf[K any, V any](order int) *node[K, V] {
	return &node[K, V]{
		isLeaf: true,
		keys:   make([]K, 0, order),
		values: make([]V, 0, order),
	}
}

// New creates a B+Tree with the given order and comparator.
// If the specified order < 3, we fall back to DefaultOrder.
func New[K any, V any](order int, compare Compare[K]) *BPlusTree[K, V] {
	if order < 3 {
		order = DefaultOrder
	}
	return &BPlusTree[K, V]{
		root:    newLeaf[K, V](order),
		order:   order,
		height:  1,
		compare: compare,
	}
}

// NewOrdered creates a B+Tree over a naturally ordered key type.
func NewOrdered[K cmp.Ordered, V any](order int) *BPlusTree[K, V] {
	return New[K, V](order, cmp.Compare[K])
}

// Height returns the number of levels in the tree.
func (tree *BPlusTree[K, V]) Height() int {
	tree.m.RLock()
	defer tree.m.RUnlock()
	return tree.height
}

// Len returns the number of keys stored in the tree.
func (tree *BPlusTree[K, V]) Len() int {
	tree.m.RLock()
	defer tree.m.RUnlock()
	return tree.size
}

// findLeaf descends to the leaf that holds (or would hold) key.
// Must be called with the tree lock held.
func (tree *BPlusTree[K, V]) findLeaf(key K) *node[K, V] {
	current := tree.root
	for !current.isLeaf {
		current = current.children[findChildIndex(current.keys, key, tree.compare)]
	}
	return current
}

// Search locates the value associated with `key` (if it exists).
func (tree *BPlusTree[K, V]) Search(key K) (V, bool) {
	tree.m.RLock()
	defer tree.m.RUnlock()

	leaf := tree.findLeaf(key)
	idx := lowerBound(leaf.keys, key, tree.compare)
	if idx < len(leaf.keys) && tree.compare(leaf.keys[idx], key) == 0 {
		return leaf.values[idx], true
	}

	var zero V
	return zero, false
}

// Insert adds a (key, value) pair to the B+Tree, replacing the value of an
// existing key.
func (tree *BPlusTree[K, V]) Insert(key K, value V) {
	tree.m.Lock()
	defer tree.m.Unlock()
	tree.insert(key, value, true)
}

// InsertUnique adds a (key, value) pair only if the key is not already
// present. It reports whether the pair was inserted; an existing entry is
// left untouched.
func (tree *BPlusTree[K, V]) InsertUnique(key K, value V) bool {
	tree.m.Lock()
	defer tree.m.Unlock()
	return tree.insert(key, value, false)
}

func (tree *BPlusTree[K, V]) insert(key K, value V, replace bool) bool {
	leaf := tree.findLeaf(key)

	idx := lowerBound(leaf.keys, key, tree.compare)
	if idx < len(leaf.keys) && tree.compare(leaf.keys[idx], key) == 0 {
		if replace {
			leaf.values[idx] = value
		}
		return false
	}

	leaf.keys = append(leaf.keys, key)
	copy(leaf.keys[idx+1:], leaf.keys[idx:])
	leaf.keys[idx] = key

	leaf.values = append(leaf.values, value)
	copy(leaf.values[idx+1:], leaf.values[idx:])
	leaf.values[idx] = value

	tree.size++

	if len(leaf.keys) > tree.order {
		tree.splitLeaf(leaf)
	}
	return true
}

// Ascend calls fn for every pair in ascending key order until fn returns
// false. fn must not modify the tree.
func (tree *BPlusTree[K, V]) Ascend(fn func(key K, value V) bool) {
	tree.m.RLock()
	defer tree.m.RUnlock()

	leaf := tree.root
	for !leaf.isLeaf {
		leaf = leaf.children[0]
	}
	for ; leaf != nil; leaf = leaf.next {
		for i := range leaf.keys {
			if !fn(leaf.keys[i], leaf.values[i]) {
				return
			}
		}
	}
}

// Clear removes every pair from the tree. When release is non-nil it is
// called on each pair, in ascending key order, before the tree is reset.
func (tree *BPlusTree[K, V]) Clear(release func(key K, value V)) {
	tree.m.Lock()
	defer tree.m.Unlock()

	if release != nil {
		leaf := tree.root
		for !leaf.isLeaf {
			leaf = leaf.children[0]
		}
		for ; leaf != nil; leaf = leaf.next {
			for i := range leaf.keys {
				release(leaf.keys[i], leaf.values[i])
			}
		}
	}

	tree.root = newLeaf[K, V](tree.order)
	tree.height = 1
	tree.size = 0
}

// splitLeaf handles splitting a leaf node that has overflowed.
func (tree *BPlusTree[K, V]) splitLeaf(leaf *node[K, V]) {
	mid := len(leaf.keys) / 2

	sibling := &node[K, V]{
		isLeaf: true,
		keys:   append([]K{}, leaf.keys[mid:]...),
		values: append([]V{}, leaf.values[mid:]...),
		next:   leaf.next,
		parent: leaf.parent,
	}

	// Adjust the original leaf
	leaf.keys = leaf.keys[:mid]
	leaf.values = leaf.values[:mid]
	leaf.next = sibling

	// If the leaf is the root (no parent), create a new root
	if leaf.parent == nil {
		newRoot := &node[K, V]{
			keys:     []K{sibling.keys[0]},
			children: []*node[K, V]{leaf, sibling},
		}

		leaf.parent = newRoot
		sibling.parent = newRoot

		tree.root = newRoot
		tree.height++
		return
	}

	tree.insertKeyInParent(leaf.parent, sibling.keys[0], sibling)
}

// insertKeyInParent inserts `key` into parent and links `rightChild` after it.
func (tree *BPlusTree[K, V]) insertKeyInParent(parent *node[K, V], key K, rightChild *node[K, V]) {
	idx := lowerBound(parent.keys, key, tree.compare)

	parent.keys = append(parent.keys, key)
	copy(parent.keys[idx+1:], parent.keys[idx:])
	parent.keys[idx] = key

	parent.children = append(parent.children, rightChild)
	copy(parent.children[idx+2:], parent.children[idx+1:])
	parent.children[idx+1] = rightChild

	rightChild.parent = parent

	if len(parent.keys) > tree.order {
		tree.splitInternalNode(parent)
	}
}

// splitInternalNode handles splitting an internal node that has overflowed.
func (tree *BPlusTree[K, V]) splitInternalNode(internal *node[K, V]) {
	mid := len(internal.keys) / 2
	splitKey := internal.keys[mid]

	sibling := &node[K, V]{
		keys:     append([]K{}, internal.keys[mid+1:]...),
		children: append([]*node[K, V]{}, internal.children[mid+1:]...),
		parent:   internal.parent,
	}

	for _, child := range sibling.children {
		child.parent = sibling
	}

	internal.keys = internal.keys[:mid]
	internal.children = internal.children[:mid+1]

	if internal.parent == nil {
		newRoot := &node[K, V]{
			keys:     []K{splitKey},
			children: []*node[K, V]{internal, sibling},
		}
		internal.parent = newRoot
		sibling.parent = newRoot
		tree.root = newRoot
		tree.height++
		return
	}

	tree.insertKeyInParent(internal.parent, splitKey, sibling)
}
