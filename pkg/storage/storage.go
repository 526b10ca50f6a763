// Package storage keeps persisted state snapshots in a pebble database,
// keyed by KSUID so that listing returns them in creation order.
package storage

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrSnapshotNotFound is returned when no snapshot exists for an id.
var ErrSnapshotNotFound = errors.New("snapshot not found")

var snapshotPrefix = []byte("snap/")

const idLength = 20 // encoded KSUID size

// SnapshotStore persists opaque snapshot blobs.
type SnapshotStore struct {
	db *pebble.DB
}

// Open opens (or creates) the snapshot store in directory path.
func Open(path string) (*SnapshotStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open snapshot store %s", path)
	}
	return &SnapshotStore{db: db}, nil
}

func snapshotKey(id ksuid.KSUID) []byte {
	key := make([]byte, 0, len(snapshotPrefix)+idLength)
	key = append(key, snapshotPrefix...)
	return append(key, id.Bytes()...)
}

// Create stores data under a fresh id.
func (s *SnapshotStore) Create(data []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := s.db.Set(snapshotKey(id), data, pebble.Sync); err != nil {
		return ksuid.Nil, errors.Wrap(err, "create snapshot")
	}
	return id, nil
}

// Read returns a copy of the snapshot stored under id.
func (s *SnapshotStore) Read(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(snapshotKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Wrapf(ErrSnapshotNotFound, "read %s", id)
		}
		return nil, errors.Wrapf(err, "read %s", id)
	}
	defer closer.Close()

	// data is only valid until closer is closed
	return bytes.Clone(data), nil
}

// Update replaces the snapshot stored under id.
func (s *SnapshotStore) Update(id ksuid.KSUID, data []byte) error {
	if err := s.exists(id); err != nil {
		return err
	}
	return errors.Wrapf(s.db.Set(snapshotKey(id), data, pebble.Sync), "update %s", id)
}

// Delete removes the snapshot stored under id.
func (s *SnapshotStore) Delete(id ksuid.KSUID) error {
	if err := s.exists(id); err != nil {
		return err
	}
	return errors.Wrapf(s.db.Delete(snapshotKey(id), pebble.Sync), "delete %s", id)
}

// List returns the ids of all snapshots in id order, which is creation
// order at one second resolution.
func (s *SnapshotStore) List() ([]ksuid.KSUID, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: snapshotPrefix,
		UpperBound: prefixUpperBound(snapshotPrefix),
	})
	if err != nil {
		return nil, errors.Wrap(err, "list snapshots")
	}
	defer iter.Close()

	var ids []ksuid.KSUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(snapshotPrefix):])
		if err != nil {
			return nil, errors.Wrapf(err, "malformed snapshot key %q", iter.Key())
		}
		ids = append(ids, id)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "list snapshots")
	}
	return ids, nil
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

func (s *SnapshotStore) exists(id ksuid.KSUID) error {
	_, closer, err := s.db.Get(snapshotKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return errors.Wrapf(ErrSnapshotNotFound, "%s", id)
		}
		return errors.Wrapf(err, "lookup %s", id)
	}
	return closer.Close()
}

func prefixUpperBound(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
