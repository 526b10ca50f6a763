package persistence

import (
	"bytes"
	"encoding/binary"
	"math"
)

type storeMode struct{}

func (storeMode) direction() Direction { return Store }

func (storeMode) u16(c *Context, v *uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], *v)
	return c.write(buf[:])
}

func (storeMode) u32(c *Context, v *uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], *v)
	return c.write(buf[:])
}

func (storeMode) u64(c *Context, v *uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], *v)
	return c.write(buf[:])
}

func (storeMode) boolean(c *Context, v *bool) error {
	var buf [1]byte
	if *v {
		buf[0] = 1
	}
	return c.write(buf[:])
}

func (storeMode) bytes(c *Context, buf []byte) error {
	return c.write(buf)
}

func (m storeMode) float32(c *Context, v *float32) error {
	bits := math.Float32bits(*v)
	return m.u32(c, &bits)
}

func (m storeMode) float64(c *Context, v *float64) error {
	bits := math.Float64bits(*v)
	return m.u64(c, &bits)
}

// length writes a 32-bit length or count prefix. A value that does not fit
// is rejected before anything reaches the stream, so a truncated prefix is
// never emitted.
func (m storeMode) length(c *Context, n int, what string) error {
	size, ok := fitUint32(n)
	if !ok {
		c.logger.Error(what+" too big to persist", "size", n)
		return decodeFailure("%s of %d does not fit a 32-bit length", what, n)
	}
	return m.u32(c, &size)
}

func (m storeMode) sizedBuffer(c *Context, buf *[]byte) error {
	if err := m.length(c, len(*buf), "element"); err != nil {
		return err
	}
	return c.write(*buf)
}

func (m storeMode) str(c *Context, s *string) error {
	var data []byte
	if *s != "" {
		data = []byte(*s)
		if i := bytes.IndexByte(data, 0); i >= 0 {
			data = data[:i]
		}
		data = append(data, 0)
	}
	return m.sizedBuffer(c, &data)
}

func (m storeMode) list(c *Context, coll collection) error {
	return m.collection(c, coll)
}

func (m storeMode) tree(c *Context, coll collection) error {
	return m.collection(c, coll)
}

// collection writes the count and then every element. A handler failure
// leaves the already written count in place; the caller owns the stream.
func (m storeMode) collection(c *Context, coll collection) error {
	if err := m.length(c, coll.size(), "collection"); err != nil {
		return err
	}
	return coll.each(c)
}
