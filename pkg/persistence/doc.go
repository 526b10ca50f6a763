// Package persistence saves and restores structured in-memory state to and
// from a byte stream in a fixed, portable wire format.
//
// A Context is bound to one stream and one direction:
//
//   - Store writes fields to an io.Writer.
//   - Restore reads fields from an io.Reader and materializes them.
//   - Ignore reads fields from an io.Reader and discards them.
//
// The same traversal function serves all three directions. The field order
// is the schema: writer and reader agree on it, nothing on the wire
// describes it.
//
//	func (s *Session) Persist(c *persistence.Context) error {
//	    if err := c.String(&s.Endpoint); err != nil {
//	        return err
//	    }
//	    if err := c.I32(&s.Lifetime); err != nil {
//	        return err
//	    }
//	    return persistence.List(c, &s.Servers, persistServer, nil)
//	}
//
// # Wire Format
//
// All multi-byte integers are big-endian.
//
//	u8/i8, bool        1 byte
//	u16/i16            2 bytes
//	u32/i32, float32   4 bytes
//	u64/i64, float64   8 bytes
//	sized buffer       [Length(4)][Bytes]
//	string             [Length(4)][Bytes][0x00]   (Length includes the NUL; 0 for "")
//	list, sorted set   [Count(4)][Element0]...[ElementN-1]
//
// Signed integers are stored as their two's-complement unsigned bit pattern
// and floats as their IEEE-754 bit pattern. A bool is stored as 0x00 or
// 0x01; restore accepts any byte and treats every non-zero byte as true.
//
// # Collections
//
// List persists an ordered slice; SortedSet persists a bptree.Set whose
// comparator defines both order and key uniqueness. Elements are encoded by a
// caller-supplied ElementHandler. In ignore mode the handler is called with a
// nil element and must only advance the stream, which is what lets a reader
// skip data it does not understand.
//
// # Failure Behavior
//
// Operations fail fast and the caller is expected to abandon the traversal
// on the first error. The stream position after a failed read is
// unspecified.
//
// A failed restore never leaves partial state behind: sized buffers and
// strings are reset to nil/empty, and collections are emptied after the
// CleanupFunc ran on every element that had been built. A failed store
// cannot take back bytes already written; in particular a handler failing
// in the middle of a collection leaves the already written count in place.
//
// Errors can be classified with errors.Is against ErrIO, ErrDecode,
// ErrOutOfMemory and ErrInvalidArgument.
//
// # Thread Safety
//
// A Context serves one traversal at a time and must not be shared between
// goroutines without external synchronization.
package persistence
