package persistence

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scalarCase struct {
	name    string
	wire    []byte
	want    any
	zero    any
	store   func(c *Context) error
	restore func(c *Context) (any, error)
}

func scalar[T any](name string, v T, wire []byte, op func(c *Context, p *T) error) scalarCase {
	var zero T
	return scalarCase{
		name: name,
		wire: wire,
		want: v,
		zero: zero,
		store: func(c *Context) error {
			x := v
			return op(c, &x)
		},
		restore: func(c *Context) (any, error) {
			var x T
			err := op(c, &x)
			return x, err
		},
	}
}

func scalarCases() []scalarCase {
	return []scalarCase{
		scalar("u8", uint8(0xAB), []byte{0xAB}, (*Context).U8),
		scalar("i8", int8(-2), []byte{0xFE}, (*Context).I8),
		scalar("u16", uint16(0xBEEF), []byte{0xBE, 0xEF}, (*Context).U16),
		scalar("i16", int16(-2), []byte{0xFF, 0xFE}, (*Context).I16),
		scalar("u32", uint32(0xDEADBEEF), []byte{0xDE, 0xAD, 0xBE, 0xEF}, (*Context).U32),
		scalar("i32 min", int32(math.MinInt32), []byte{0x80, 0x00, 0x00, 0x00}, (*Context).I32),
		scalar("u64", uint64(0x0102030405060708), []byte{1, 2, 3, 4, 5, 6, 7, 8}, (*Context).U64),
		scalar("i64", int64(-1), bytes.Repeat([]byte{0xFF}, 8), (*Context).I64),
		scalar("bool true", true, []byte{0x01}, (*Context).Bool),
		scalar("bool false", false, []byte{0x00}, (*Context).Bool),
		scalar("float32", float32(1.0), []byte{0x3F, 0x80, 0x00, 0x00}, (*Context).Float32),
		scalar("float32 inf", float32(math.Inf(-1)), []byte{0xFF, 0x80, 0x00, 0x00}, (*Context).Float32),
		scalar("float64", 1.0, []byte{0x3F, 0xF0, 0, 0, 0, 0, 0, 0}, (*Context).Float64),
		scalar("float64 pi", math.Pi, []byte{0x40, 0x09, 0x21, 0xFB, 0x54, 0x44, 0x2D, 0x18}, (*Context).Float64),
	}
}

func TestScalar_CanonicalWireBytes(t *testing.T) {
	for _, tc := range scalarCases() {
		t.Run(tc.name, func(t *testing.T) {
			got := storeBytes(t, tc.store)
			assert.Equal(t, tc.wire, got)
		})
	}
}

func TestScalar_RoundTrip(t *testing.T) {
	for _, tc := range scalarCases() {
		t.Run(tc.name, func(t *testing.T) {
			wire := storeBytes(t, tc.store)

			r := bytes.NewReader(wire)
			got, err := tc.restore(newRestore(t, r))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, 0, r.Len(), "restore must consume exactly the field width")
		})
	}
}

func TestScalar_IgnoreConsumesSameWidth(t *testing.T) {
	for _, tc := range scalarCases() {
		t.Run(tc.name, func(t *testing.T) {
			// A trailing byte proves ignore stops at the field boundary.
			r := bytes.NewReader(append(append([]byte{}, tc.wire...), 0x5A))
			got, err := tc.restore(newIgnore(t, r))
			require.NoError(t, err)
			assert.Equal(t, tc.zero, got, "ignore must not touch the destination")
			assert.Equal(t, 1, r.Len())
		})
	}
}

func TestScalar_ShortRead(t *testing.T) {
	for _, tc := range scalarCases() {
		t.Run(tc.name, func(t *testing.T) {
			r := bytes.NewReader(tc.wire[:len(tc.wire)-1])
			_, err := tc.restore(newRestore(t, r))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIO)
			assert.NotErrorIs(t, err, ErrDecode)
		})
	}
}

func TestScalar_WriteFailure(t *testing.T) {
	c, err := NewStore(&limitWriter{limit: 2})
	require.NoError(t, err)

	v := uint32(7)
	err = c.U32(&v)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, errWriteFailed)

	c, err = NewStore(shortWriter{})
	require.NoError(t, err)
	err = c.U32(&v)
	assert.ErrorIs(t, err, ErrIO)
}

func TestBool_AnyNonZeroByteIsTrue(t *testing.T) {
	tests := map[string]struct {
		wire byte
		want bool
	}{
		"zero":     {0x00, false},
		"one":      {0x01, true},
		"two":      {0x02, true},
		"high bit": {0x80, true},
		"all bits": {0xFF, true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got bool
			c := newRestore(t, bytes.NewReader([]byte{tt.wire}))
			require.NoError(t, c.Bool(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloat_BitExactRoundTrip(t *testing.T) {
	nan := math.Float64frombits(0x7FF8_0000_0000_0001)
	negZero := math.Copysign(0, -1)

	for _, v := range []float64{nan, negZero, math.SmallestNonzeroFloat64, math.MaxFloat64} {
		in := v
		wire := storeBytes(t, func(c *Context) error { return c.Float64(&in) })

		var out float64
		require.NoError(t, newRestore(t, bytes.NewReader(wire)).Float64(&out))
		assert.Equal(t, math.Float64bits(v), math.Float64bits(out))
	}
}
