package storage

import (
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSnapshotStore_CreateRead(t *testing.T) {
	store := openStore(t)

	id, err := store.Create([]byte("FSS\x02payload"))
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)

	data, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("FSS\x02payload"), data)
}

func TestSnapshotStore_Update(t *testing.T) {
	store := openStore(t)

	id, err := store.Create([]byte("v1"))
	require.NoError(t, err)
	require.NoError(t, store.Update(id, []byte("v2")))

	data, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestSnapshotStore_NotFound(t *testing.T) {
	store := openStore(t)
	missing := ksuid.New()

	_, err := store.Read(missing)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.ErrorIs(t, store.Update(missing, []byte("x")), ErrSnapshotNotFound)
	assert.ErrorIs(t, store.Delete(missing), ErrSnapshotNotFound)
}

func TestSnapshotStore_Delete(t *testing.T) {
	store := openStore(t)

	id, err := store.Create([]byte("gone"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(id))

	_, err = store.Read(id)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotStore_List(t *testing.T) {
	store := openStore(t)

	ids, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, ids)

	created := make(map[ksuid.KSUID]bool)
	for i := 0; i < 5; i++ {
		id, err := store.Create([]byte{byte(i)})
		require.NoError(t, err)
		created[id] = true
	}

	ids, err = store.List()
	require.NoError(t, err)
	require.Len(t, ids, 5)
	for i, id := range ids {
		assert.True(t, created[id])
		if i > 0 {
			assert.Equal(t, -1, ksuid.Compare(ids[i-1], id))
		}
	}
}

func TestSnapshotStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots")

	store, err := Open(path)
	require.NoError(t, err)
	id, err := store.Create([]byte("durable"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	data, err := store.Read(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), data)
}

func TestPrefixUpperBound(t *testing.T) {
	tests := []struct {
		name     string
		prefix   []byte
		expected []byte
	}{
		{"simple", []byte("snap/"), []byte("snap0")},
		{"trailing max byte", []byte{0x01, 0xFF}, []byte{0x02}},
		{"all max bytes", []byte{0xFF, 0xFF}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, prefixUpperBound(tt.prefix))
		})
	}
}
