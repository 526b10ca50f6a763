package persistence

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errWriteFailed = errors.New("disk full")

// countingWriter accepts everything and records how much it was given.
type countingWriter struct {
	bytes  int
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.bytes += len(p)
	w.writes++
	return len(p), nil
}

// limitWriter accepts up to limit bytes and then fails every write.
type limitWriter struct {
	limit int
	buf   bytes.Buffer
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.limit {
		return 0, errWriteFailed
	}
	return w.buf.Write(p)
}

// shortWriter reports success for fewer bytes than it was given.
type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}

func storeBytes(t *testing.T, persist func(c *Context) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	c, err := NewStore(&buf)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, persist(c))
	return buf.Bytes()
}

func newRestore(t *testing.T, r *bytes.Reader, opts ...Option) *Context {
	t.Helper()
	c, err := NewRestore(r, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func newIgnore(t *testing.T, r *bytes.Reader, opts ...Option) *Context {
	t.Helper()
	c, err := NewIgnore(r, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}
