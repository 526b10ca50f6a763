package persistence

import (
	"bytes"

	"github.com/ssargent/freyjastate/pkg/bptree"
)

// ElementHandler persists one collection element. It is called with a nil
// elem in ignore mode: it must then advance the stream past the element
// without materializing anything.
type ElementHandler[T any] func(c *Context, elem *T) error

// CleanupFunc releases whatever an ElementHandler attached to elem. It runs
// on restore failure paths only.
type CleanupFunc[T any] func(elem *T)

// collection is the shape-specific half of the collection codec. The mode
// decides direction; the collection decides traversal order and how a fresh
// element joins the destination.
type collection interface {
	size() int
	// each calls the handler on every live element in traversal order.
	each(c *Context) error
	// materialize builds one fresh element from the stream and attaches it.
	materialize(c *Context) error
	// skip advances the stream past one element.
	skip(c *Context) error
	// clear releases every attached element and empties the destination.
	clear()
}

type listCollection[T any] struct {
	list    *[]T
	handler ElementHandler[T]
	cleanup CleanupFunc[T]
}

func (l listCollection[T]) size() int { return len(*l.list) }

func (l listCollection[T]) each(c *Context) error {
	for i := range *l.list {
		if err := l.handler(c, &(*l.list)[i]); err != nil {
			return err
		}
	}
	return nil
}

// materialize appends a zero element at the tail before populating it, so a
// failing handler leaves it reachable by clear.
func (l listCollection[T]) materialize(c *Context) error {
	var zero T
	*l.list = append(*l.list, zero)
	return l.handler(c, &(*l.list)[len(*l.list)-1])
}

func (l listCollection[T]) skip(c *Context) error { return l.handler(c, nil) }

func (l listCollection[T]) clear() {
	if l.cleanup != nil {
		for i := range *l.list {
			l.cleanup(&(*l.list)[i])
		}
	}
	*l.list = nil
}

type setCollection[T any] struct {
	set     *bptree.Set[T]
	handler ElementHandler[T]
	cleanup CleanupFunc[T]
}

func (s setCollection[T]) size() int { return s.set.Len() }

func (s setCollection[T]) each(c *Context) error {
	var err error
	s.set.Ascend(func(v T) bool {
		err = s.handler(c, &v)
		return err == nil
	})
	return err
}

// materialize populates a detached element and only then inserts it. A
// failed handler and a rejected duplicate are handled alike: the element is
// released and never joins the set.
func (s setCollection[T]) materialize(c *Context) error {
	elem := new(T)
	err := s.handler(c, elem)
	if err == nil && !s.set.Insert(*elem) {
		c.logger.Error("duplicate key in sorted collection", "size", s.set.Len())
		err = decodeFailure("duplicate key in sorted collection")
	}
	if err != nil && s.cleanup != nil {
		s.cleanup(elem)
	}
	return err
}

func (s setCollection[T]) skip(c *Context) error { return s.handler(c, nil) }

func (s setCollection[T]) clear() {
	if s.cleanup == nil {
		s.set.Clear(nil)
		return
	}
	s.set.Clear(func(v T) { s.cleanup(&v) })
}

// List persists an ordered sequence as a 32-bit count followed by each
// element in insertion order.
//
// Restore requires *list to be empty and appends elements at the tail. If
// anything fails, cleanup runs on every element restored so far and *list is
// reset to nil. Ignore calls handler once per element with a nil element and
// never touches list, which may be nil.
func List[T any](c *Context, list *[]T, handler ElementHandler[T], cleanup CleanupFunc[T]) error {
	if err := c.ready(list == nil); err != nil {
		return err
	}
	if handler == nil {
		return invalidArgument("nil element handler")
	}
	if c.restoring() && len(*list) != 0 {
		return invalidArgument("restore into a non-empty list")
	}
	return c.mode.list(c, listCollection[T]{list: list, handler: handler, cleanup: cleanup})
}

// SortedSet persists a sorted unique collection as a 32-bit count followed
// by each element in ascending order.
//
// set must come from bptree.NewSet; a zero Set is rejected. Restore requires
// set to be empty. An element whose key is already present
// is a decode error. On any failure cleanup runs on the offending element and
// on every element already inserted, and the set is left empty.
func SortedSet[T any](c *Context, set *bptree.Set[T], handler ElementHandler[T], cleanup CleanupFunc[T]) error {
	if err := c.ready(set == nil); err != nil {
		return err
	}
	if set != nil && !set.Ready() {
		return invalidArgument("set has no comparator")
	}
	if handler == nil {
		return invalidArgument("nil element handler")
	}
	if c.restoring() && set.Len() != 0 {
		return invalidArgument("restore into a non-empty set")
	}
	return c.mode.tree(c, setCollection[T]{set: set, handler: handler, cleanup: cleanup})
}

// Magic persists a fixed marker. Restore fails with ErrDecode when the
// stream does not carry exactly magic.
func (c *Context) Magic(magic []byte) error {
	if err := c.check(); err != nil {
		return err
	}
	if !c.restoring() {
		return c.mode.bytes(c, magic)
	}
	got := make([]byte, len(magic))
	if err := c.mode.bytes(c, got); err != nil {
		return err
	}
	if !bytes.Equal(got, magic) {
		c.logger.Error("magic mismatch", "got", got, "want", magic)
		return decodeFailure("magic mismatch: got %x, want %x", got, magic)
	}
	return nil
}

// Skip runs fn over fields the reader does not want. When c reads, fn gets
// an ignore context sharing c's stream, so the fields are consumed without
// being materialized. When c stores, fn gets c itself and the fields are
// written as usual.
func (c *Context) Skip(fn func(*Context) error) error {
	if err := c.check(); err != nil {
		return err
	}
	if fn == nil {
		return invalidArgument("nil skip function")
	}
	if c.mode.direction() == Store {
		return fn(c)
	}
	sub := *c
	sub.mode = ignoreMode{}
	err := fn(&sub)
	c.scratch = sub.scratch
	return err
}
