package bptree

// setOrder is the branching factor used by Set. Sets hold small protocol
// records, so a moderately wide node keeps the tree shallow.
const setOrder = 16

// Set is a sorted collection of unique elements backed by a BPlusTree. The
// element itself is the key; the comparator decides both order and identity.
//
// The zero Set has no comparator. It reads as empty and rejects inserts;
// use NewSet.
type Set[T any] struct {
	tree *BPlusTree[T, struct{}]
}

// NewSet creates an empty set ordered by compare.
func NewSet[T any](compare Compare[T]) *Set[T] {
	return &Set[T]{tree: New[T, struct{}](setOrder, compare)}
}

// Ready reports whether s was created by NewSet and can hold elements.
func (s *Set[T]) Ready() bool {
	return s != nil && s.tree != nil
}

// Insert adds v unless an element comparing equal is already present.
// It reports whether v was added.
func (s *Set[T]) Insert(v T) bool {
	if !s.Ready() {
		return false
	}
	return s.tree.InsertUnique(v, struct{}{})
}

// Get returns the stored element comparing equal to v.
func (s *Set[T]) Get(v T) (T, bool) {
	var found T
	ok := false
	if !s.Ready() {
		return found, ok
	}
	s.tree.m.RLock()
	leaf := s.tree.findLeaf(v)
	idx := lowerBound(leaf.keys, v, s.tree.compare)
	if idx < len(leaf.keys) && s.tree.compare(leaf.keys[idx], v) == 0 {
		found, ok = leaf.keys[idx], true
	}
	s.tree.m.RUnlock()
	return found, ok
}

// Contains reports whether an element comparing equal to v is present.
func (s *Set[T]) Contains(v T) bool {
	if !s.Ready() {
		return false
	}
	_, ok := s.tree.Search(v)
	return ok
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	if !s.Ready() {
		return 0
	}
	return s.tree.Len()
}

// Ascend calls fn on each element in ascending order until fn returns false.
func (s *Set[T]) Ascend(fn func(v T) bool) {
	if !s.Ready() {
		return
	}
	s.tree.Ascend(func(k T, _ struct{}) bool { return fn(k) })
}

// Items returns the elements in ascending order.
func (s *Set[T]) Items() []T {
	out := make([]T, 0, s.Len())
	s.Ascend(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Clear empties the set, calling release (if non-nil) on every element first.
func (s *Set[T]) Clear(release func(v T)) {
	if !s.Ready() {
		return
	}
	if release == nil {
		s.tree.Clear(nil)
		return
	}
	s.tree.Clear(func(k T, _ struct{}) { release(k) })
}
