package persistence

type ignoreMode struct{}

func (ignoreMode) direction() Direction { return Ignore }

func (ignoreMode) u16(c *Context, _ *uint16) error { return c.discard(2) }

func (ignoreMode) u32(c *Context, _ *uint32) error { return c.discard(4) }

func (ignoreMode) u64(c *Context, _ *uint64) error { return c.discard(8) }

func (ignoreMode) boolean(c *Context, _ *bool) error { return c.discard(1) }

func (ignoreMode) bytes(c *Context, buf []byte) error { return c.discard(uint64(len(buf))) }

func (ignoreMode) float32(c *Context, _ *float32) error { return c.discard(4) }

func (ignoreMode) float64(c *Context, _ *float64) error { return c.discard(8) }

func (ignoreMode) sizedBuffer(c *Context, _ *[]byte) error {
	var size uint32
	if err := (restoreMode{}).u32(c, &size); err != nil {
		return err
	}
	return c.discard(uint64(size))
}

func (m ignoreMode) str(c *Context, _ *string) error {
	return m.sizedBuffer(c, nil)
}

func (m ignoreMode) list(c *Context, coll collection) error {
	return m.collection(c, coll)
}

func (m ignoreMode) tree(c *Context, coll collection) error {
	return m.collection(c, coll)
}

// collection reads the count and lets the handler advance past each element
// without materializing it.
func (ignoreMode) collection(c *Context, coll collection) error {
	var count uint32
	err := (restoreMode{}).u32(c, &count)
	for i := uint32(0); err == nil && i < count; i++ {
		err = coll.skip(c)
	}
	return err
}
