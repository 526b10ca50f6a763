package persistence

import (
	"io"
	"log/slog"
	"math"
)

// Direction is the execution mode a Context was created for.
type Direction int

const (
	DirectionUnknown Direction = iota
	Store
	Restore
	Ignore
)

func (d Direction) String() string {
	switch d {
	case Store:
		return "store"
	case Restore:
		return "restore"
	case Ignore:
		return "ignore"
	default:
		return "unknown"
	}
}

// DefaultScratchSize is the size of the buffer ignore mode reads skipped
// bytes into.
const DefaultScratchSize = 512

// mode is one complete set of field codecs. store, restore and ignore
// implement identical signatures; a Context picks one at construction.
type mode interface {
	direction() Direction
	u16(c *Context, v *uint16) error
	u32(c *Context, v *uint32) error
	u64(c *Context, v *uint64) error
	boolean(c *Context, v *bool) error
	bytes(c *Context, buf []byte) error
	float32(c *Context, v *float32) error
	float64(c *Context, v *float64) error
	sizedBuffer(c *Context, buf *[]byte) error
	str(c *Context, s *string) error
	list(c *Context, coll collection) error
	tree(c *Context, coll collection) error
}

// Context binds one mode to one stream for a single linear traversal. It is
// not safe for concurrent use.
type Context struct {
	mode   mode
	writer io.Writer
	reader io.Reader

	scratch     []byte
	scratchSize int
	maxAlloc    int
	maxElements int
	logger      *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger used to report rejected fields.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithScratchSize sets the size of the ignore-mode scratch buffer.
// Non-positive values keep DefaultScratchSize.
func WithScratchSize(n int) Option {
	return func(c *Context) {
		if n > 0 {
			c.scratchSize = n
		}
	}
}

// WithMaxAlloc caps the size of a single buffer or string allocated by
// restore. Zero means unlimited.
func WithMaxAlloc(n int) Option {
	return func(c *Context) {
		if n >= 0 {
			c.maxAlloc = n
		}
	}
}

// WithMaxElements caps the element count of a restored collection. Zero
// means unlimited.
func WithMaxElements(n int) Option {
	return func(c *Context) {
		if n >= 0 {
			c.maxElements = n
		}
	}
}

func newContext(m mode, w io.Writer, r io.Reader, opts []Option) *Context {
	c := &Context{
		mode:        m,
		writer:      w,
		reader:      r,
		scratchSize: DefaultScratchSize,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewStore creates a context that writes fields to w.
func NewStore(w io.Writer, opts ...Option) (*Context, error) {
	if w == nil {
		return nil, invalidArgument("nil stream")
	}
	return newContext(storeMode{}, w, nil, opts), nil
}

// NewRestore creates a context that reads fields from r and materializes
// them into the caller's destinations.
func NewRestore(r io.Reader, opts ...Option) (*Context, error) {
	if r == nil {
		return nil, invalidArgument("nil stream")
	}
	return newContext(restoreMode{}, nil, r, opts), nil
}

// NewIgnore creates a context that reads fields from r and discards them.
// Destinations passed to it are never touched and may be nil.
func NewIgnore(r io.Reader, opts ...Option) (*Context, error) {
	if r == nil {
		return nil, invalidArgument("nil stream")
	}
	return newContext(ignoreMode{}, nil, r, opts), nil
}

// Close unbinds the stream and releases the scratch buffer. Every later
// operation on c fails with ErrInvalidArgument. The stream itself is not
// closed; it belongs to the caller.
func (c *Context) Close() error {
	if c == nil {
		return nil
	}
	c.mode = nil
	c.writer = nil
	c.reader = nil
	c.scratch = nil
	return nil
}

// Direction reports the mode of c, or DirectionUnknown for a nil or closed
// context.
func (c *Context) Direction() Direction {
	if c == nil || c.mode == nil {
		return DirectionUnknown
	}
	return c.mode.direction()
}

func (c *Context) check() error {
	if c == nil || c.mode == nil {
		return invalidArgument("no persistence context")
	}
	return nil
}

// ready validates the context and the destination pointer. Ignore mode never
// dereferences destinations, so it accepts nil.
func (c *Context) ready(isNil bool) error {
	if err := c.check(); err != nil {
		return err
	}
	if isNil && c.mode.direction() != Ignore {
		return invalidArgument("nil destination")
	}
	return nil
}

func (c *Context) restoring() bool {
	return c.mode.direction() == Restore
}

func (c *Context) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := c.writer.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return ioFailure(err, "write %d bytes", len(p))
	}
	return nil
}

// read fills p completely; a short read is a failure.
func (c *Context) read(p []byte) error {
	if _, err := io.ReadFull(c.reader, p); err != nil {
		return ioFailure(err, "read %d bytes", len(p))
	}
	return nil
}

// discard consumes n bytes through the bounded scratch buffer.
func (c *Context) discard(n uint64) error {
	if c.scratch == nil {
		c.scratch = make([]byte, c.scratchSize)
	}
	for n > 0 {
		chunk := uint64(len(c.scratch))
		if n < chunk {
			chunk = n
		}
		if err := c.read(c.scratch[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// fitUint32 reports whether n is representable as a 32-bit wire length.
func fitUint32(n int) (uint32, bool) {
	if uint64(n) > math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

func (c *Context) allocate(size uint32) ([]byte, error) {
	if c.maxAlloc > 0 && uint64(size) > uint64(c.maxAlloc) {
		c.logger.Error("cannot allocate buffer", "size", size, "limit", c.maxAlloc)
		return nil, outOfMemory("buffer of %d bytes exceeds limit of %d", size, c.maxAlloc)
	}
	return make([]byte, size), nil
}

func (c *Context) admit(count uint32) error {
	if c.maxElements > 0 && uint64(count) > uint64(c.maxElements) {
		c.logger.Error("cannot allocate collection", "count", count, "limit", c.maxElements)
		return outOfMemory("collection of %d elements exceeds limit of %d", count, c.maxElements)
	}
	return nil
}

// U8 persists a single byte.
func (c *Context) U8(v *uint8) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	var buf [1]byte
	if v != nil {
		buf[0] = *v
	}
	if err := c.mode.bytes(c, buf[:]); err != nil {
		return err
	}
	if c.restoring() {
		*v = buf[0]
	}
	return nil
}

// I8 persists a signed byte as its unsigned bit pattern.
func (c *Context) I8(v *int8) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	var u uint8
	if v != nil {
		u = uint8(*v)
	}
	if err := c.U8(&u); err != nil {
		return err
	}
	if c.restoring() {
		*v = int8(u)
	}
	return nil
}

// U16 persists a 16-bit unsigned integer, big-endian.
func (c *Context) U16(v *uint16) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	return c.mode.u16(c, v)
}

// I16 persists a 16-bit signed integer via its unsigned bit pattern.
func (c *Context) I16(v *int16) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	var u uint16
	if v != nil {
		u = uint16(*v)
	}
	if err := c.mode.u16(c, &u); err != nil {
		return err
	}
	if c.restoring() {
		*v = int16(u)
	}
	return nil
}

// U32 persists a 32-bit unsigned integer, big-endian.
func (c *Context) U32(v *uint32) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	return c.mode.u32(c, v)
}

// I32 persists a 32-bit signed integer via its unsigned bit pattern.
func (c *Context) I32(v *int32) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	var u uint32
	if v != nil {
		u = uint32(*v)
	}
	if err := c.mode.u32(c, &u); err != nil {
		return err
	}
	if c.restoring() {
		*v = int32(u)
	}
	return nil
}

// U64 persists a 64-bit unsigned integer, big-endian.
func (c *Context) U64(v *uint64) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	return c.mode.u64(c, v)
}

// I64 persists a 64-bit signed integer via its unsigned bit pattern.
func (c *Context) I64(v *int64) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	var u uint64
	if v != nil {
		u = uint64(*v)
	}
	if err := c.mode.u64(c, &u); err != nil {
		return err
	}
	if c.restoring() {
		*v = int64(u)
	}
	return nil
}

// Bool persists a boolean as one byte. Restore treats any non-zero byte as
// true.
func (c *Context) Bool(v *bool) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	return c.mode.boolean(c, v)
}

// Bytes persists exactly len(buf) raw bytes with no length prefix.
func (c *Context) Bytes(buf []byte) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.mode.bytes(c, buf)
}

// Float32 persists an IEEE-754 single as its big-endian bit pattern.
func (c *Context) Float32(v *float32) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	return c.mode.float32(c, v)
}

// Float64 persists an IEEE-754 double as its big-endian bit pattern.
func (c *Context) Float64(v *float64) error {
	if err := c.ready(v == nil); err != nil {
		return err
	}
	return c.mode.float64(c, v)
}

// SizedBuffer persists a 32-bit length followed by the bytes of *buf.
//
// On restore *buf is replaced by a freshly allocated slice owned by the
// caller, or nil when the persisted length is zero. On any restore failure
// *buf is nil.
func (c *Context) SizedBuffer(buf *[]byte) error {
	if err := c.ready(buf == nil); err != nil {
		return err
	}
	return c.mode.sizedBuffer(c, buf)
}

// String persists a NUL-terminated string. The empty string is the absent
// string and is stored with length zero; anything after an embedded NUL is
// not persisted. On a failed restore *s is empty.
func (c *Context) String(s *string) error {
	if err := c.ready(s == nil); err != nil {
		return err
	}
	return c.mode.str(c, s)
}
