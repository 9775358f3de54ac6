// Package storage persists packed record buffers in an embedded
// Pebble database. Every stored buffer is keyed by a KSUID, so keys
// sort by creation time and a scan replays records roughly in the
// order they were appended.
package storage

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// StoreError represents a record store error.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// Errors
var (
	ErrRecordNotFound = &StoreError{"record not found"}
)

// RecordStore is a Pebble-backed vault for packed record buffers.
type RecordStore struct {
	db *pebble.DB
}

// Open opens (or creates) a record store at the given path.
func Open(path string) (*RecordStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	return &RecordStore{db: db}, nil
}

// Append stores a packed buffer under a fresh KSUID and returns the id.
func (s *RecordStore) Append(data []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := s.db.Set(id.Bytes(), data, pebble.NoSync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to append record: %w", err)
	}
	return id, nil
}

// Get returns a copy of the buffer stored under id.
func (s *RecordStore) Get(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("record %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to read record %s: %w", id, err)
	}

	// The buffer is only valid until the closer releases it.
	out := make([]byte, len(data))
	copy(out, data)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the buffer stored under an existing id.
func (s *RecordStore) Update(id ksuid.KSUID, data []byte) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.Set(id.Bytes(), data, pebble.NoSync)
}

// Delete removes the buffer stored under id.
func (s *RecordStore) Delete(id ksuid.KSUID) error {
	return s.db.Delete(id.Bytes(), pebble.NoSync)
}

// Scan calls fn for every stored record in key order. The data slice
// passed to fn is reused between calls; fn must copy it to retain it.
// Returning an error from fn stops the scan.
func (s *RecordStore) Scan(fn func(id ksuid.KSUID, data []byte) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return fmt.Errorf("failed to open scan iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return fmt.Errorf("store holds a non-KSUID key: %w", err)
		}
		if err := fn(id, iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Close flushes and closes the underlying database.
func (s *RecordStore) Close() error {
	return s.db.Close()
}
