package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RecordStore {
	t.Helper()

	dir, err := os.MkdirTemp("", "binrec-storage-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	store, err := Open(filepath.Join(dir, "records"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestRecordStore_AppendGet(t *testing.T) {
	store := newTestStore(t)

	first := []byte{0x2A, 0x00, 0x00, 0x00}
	second := []byte{0xFF, 0xFE}

	id1, err := store.Append(first)
	require.NoError(t, err)
	id2, err := store.Append(second)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	got, err := store.Get(id1)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = store.Get(id2)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestRecordStore_GetReturnsACopy(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Append([]byte{1, 2, 3})
	require.NoError(t, err)

	got, err := store.Get(id)
	require.NoError(t, err)
	got[0] = 99

	again, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestRecordStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(ksuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestRecordStore_Update(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Append([]byte{1, 2})
	require.NoError(t, err)

	require.NoError(t, store.Update(id, []byte{3, 4}))

	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4}, got)

	err = store.Update(ksuid.New(), []byte{5})
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestRecordStore_Delete(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Append([]byte{1})
	require.NoError(t, err)

	require.NoError(t, store.Delete(id))

	_, err = store.Get(id)
	assert.True(t, errors.Is(err, ErrRecordNotFound))

	// Deleting an absent record is not an error.
	assert.NoError(t, store.Delete(ksuid.New()))
}

func TestRecordStore_Scan(t *testing.T) {
	store := newTestStore(t)

	payloads := map[string][]byte{}
	for _, data := range [][]byte{{1}, {2, 2}, {3, 3, 3}} {
		id, err := store.Append(data)
		require.NoError(t, err)
		payloads[id.String()] = data
	}

	seen := map[string][]byte{}
	err := store.Scan(func(id ksuid.KSUID, data []byte) error {
		out := make([]byte, len(data))
		copy(out, data)
		seen[id.String()] = out
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, payloads, seen)
}

func TestRecordStore_ScanStopsOnError(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := store.Append([]byte{byte(i)})
		require.NoError(t, err)
	}

	stop := errors.New("stop")
	visited := 0
	err := store.Scan(func(id ksuid.KSUID, data []byte) error {
		visited++
		return stop
	})
	assert.True(t, errors.Is(err, stop))
	assert.Equal(t, 1, visited)
}

func TestOpen_InvalidPath(t *testing.T) {
	dir, err := os.MkdirTemp("", "binrec-storage-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	// A regular file where the database directory should be.
	path := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0644))

	_, err = Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open record store")
}
