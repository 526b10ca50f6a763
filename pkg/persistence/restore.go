package persistence

import (
	"bytes"
	"encoding/binary"
	"math"
)

type restoreMode struct{}

func (restoreMode) direction() Direction { return Restore }

func (restoreMode) u16(c *Context, v *uint16) error {
	var buf [2]byte
	if err := c.read(buf[:]); err != nil {
		return err
	}
	*v = binary.BigEndian.Uint16(buf[:])
	return nil
}

func (restoreMode) u32(c *Context, v *uint32) error {
	var buf [4]byte
	if err := c.read(buf[:]); err != nil {
		return err
	}
	*v = binary.BigEndian.Uint32(buf[:])
	return nil
}

func (restoreMode) u64(c *Context, v *uint64) error {
	var buf [8]byte
	if err := c.read(buf[:]); err != nil {
		return err
	}
	*v = binary.BigEndian.Uint64(buf[:])
	return nil
}

// boolean accepts any byte value; non-zero is true.
func (restoreMode) boolean(c *Context, v *bool) error {
	var buf [1]byte
	if err := c.read(buf[:]); err != nil {
		return err
	}
	*v = buf[0] != 0
	return nil
}

func (restoreMode) bytes(c *Context, buf []byte) error {
	return c.read(buf)
}

func (m restoreMode) float32(c *Context, v *float32) error {
	var bits uint32
	if err := m.u32(c, &bits); err != nil {
		return err
	}
	*v = math.Float32frombits(bits)
	return nil
}

func (m restoreMode) float64(c *Context, v *float64) error {
	var bits uint64
	if err := m.u64(c, &bits); err != nil {
		return err
	}
	*v = math.Float64frombits(bits)
	return nil
}

// sizedBuffer hands a new allocation to the caller only after the payload
// was read in full.
func (m restoreMode) sizedBuffer(c *Context, buf *[]byte) error {
	*buf = nil
	var size uint32
	if err := m.u32(c, &size); err != nil {
		return err
	}
	if size == 0 {
		return nil
	}
	data, err := c.allocate(size)
	if err != nil {
		return err
	}
	if err := c.read(data); err != nil {
		return err
	}
	*buf = data
	return nil
}

func (m restoreMode) str(c *Context, s *string) error {
	*s = ""
	var data []byte
	if err := m.sizedBuffer(c, &data); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if data[len(data)-1] != 0 {
		c.logger.Error("invalid string", "size", len(data))
		return decodeFailure("string of %d bytes is not NUL-terminated", len(data))
	}
	*s = string(data[:bytes.IndexByte(data, 0)])
	return nil
}

func (m restoreMode) list(c *Context, coll collection) error {
	return m.collection(c, coll)
}

func (m restoreMode) tree(c *Context, coll collection) error {
	return m.collection(c, coll)
}

// collection materializes count elements. On any failure every element built
// so far is released and the destination is left empty.
func (m restoreMode) collection(c *Context, coll collection) error {
	var count uint32
	err := m.u32(c, &count)
	if err == nil {
		err = c.admit(count)
	}
	for i := uint32(0); err == nil && i < count; i++ {
		err = coll.materialize(c)
	}
	if err != nil {
		coll.clear()
	}
	return err
}
