package session

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/freyjastate/pkg/persistence"
)

// EncodeTo writes a snapshot of s to w.
func EncodeTo(w io.Writer, s *State, opts ...persistence.Option) error {
	if s == nil {
		return errors.Wrap(persistence.ErrInvalidArgument, "nil state")
	}
	c, err := persistence.NewStore(w, opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	return s.Persist(c)
}

// DecodeFrom reads one snapshot from r. On failure no state is returned.
func DecodeFrom(r io.Reader, opts ...persistence.Option) (*State, error) {
	c, err := persistence.NewRestore(r, opts...)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	s := &State{Observations: NewObservationSet()}
	if err := s.Persist(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode returns a snapshot of s.
func Encode(s *State, opts ...persistence.Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, s, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode restores a state from a snapshot. Trailing bytes after the
// snapshot are a decode error.
func Decode(data []byte, opts ...persistence.Option) (*State, error) {
	r := bytes.NewReader(data)
	s, err := DecodeFrom(r, opts...)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Wrapf(persistence.ErrDecode, "%d trailing bytes after snapshot", r.Len())
	}
	return s, nil
}

// Validate walks a snapshot without materializing it and returns the number
// of bytes it occupies. data must hold exactly one snapshot.
func Validate(data []byte, opts ...persistence.Option) (int, error) {
	r := bytes.NewReader(data)
	c, err := persistence.NewRestore(r, opts...)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	// The header is restored for its version; the body is only skipped.
	var header State
	if err := header.persistHeader(c); err != nil {
		return 0, err
	}
	if err := c.Skip(header.persistBody); err != nil {
		return 0, err
	}

	consumed := len(data) - r.Len()
	if r.Len() != 0 {
		return consumed, errors.Wrapf(persistence.ErrDecode, "%d trailing bytes after snapshot", r.Len())
	}
	return consumed, nil
}
