// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package storage provides the default embedded implementation of
// recommend.Store: an on-disk key-value namespace backed by BadgerDB,
// with values integrity-checked by a SHA-256 checksum the way the
// teacher's model snapshot store checksums its gob payloads.
package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/dgraph-io/badger/v4"
)

// envelope is the on-disk wrapper around every stored value: a gzip
// payload plus its SHA-256 checksum, so corruption is caught on read
// rather than silently propagated into the policy.
type envelope struct {
	checksum string
	payload  []byte
}

func encodeEnvelope(value []byte) []byte {
	hash := sha256.Sum256(value)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	_, _ = gzw.Write(value)
	_ = gzw.Close()

	checksum := hex.EncodeToString(hash[:])
	out := make([]byte, 0, len(checksum)+1+compressed.Len())
	out = append(out, []byte(checksum)...)
	out = append(out, '\n')
	out = append(out, compressed.Bytes()...)
	return out
}

func decodeEnvelope(raw []byte) ([]byte, error) {
	sep := bytes.IndexByte(raw, '\n')
	if sep < 0 {
		return nil, errors.New("storage: malformed record, missing checksum separator")
	}
	checksum := string(raw[:sep])
	compressed := raw[sep+1:]

	gzr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("storage: decompress record: %w", err)
	}
	defer func() { _ = gzr.Close() }()

	value, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("storage: read decompressed record: %w", err)
	}

	hash := sha256.Sum256(value)
	if hex.EncodeToString(hash[:]) != checksum {
		return nil, errors.New("storage: checksum mismatch, record is corrupt")
	}
	return value, nil
}

// BadgerStore implements recommend.Store on top of an embedded BadgerDB
// instance. The caller owns the *badger.DB lifecycle (Open/Close).
type BadgerStore struct {
	db *badger.DB
}

// Open creates or opens a BadgerDB database at dir and returns a store
// backed by it.
func Open(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore wraps an already-open BadgerDB handle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Get returns the raw value for key, or ok=false if absent.
func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, decErr := decodeEnvelope(val)
			if decErr != nil {
				return decErr
			}
			value = decoded
			return nil
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("storage: get %q: %w", key, err)
	}
	return value, value != nil, nil
}

// Put writes value for key, creating or overwriting it.
func (s *BadgerStore) Put(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encodeEnvelope(value))
	})
	if err != nil {
		return fmt.Errorf("storage: put %q: %w", key, err)
	}
	return nil
}

// Range calls fn for every key with the given prefix, in key order.
// An error from fn stops iteration and propagates.
func (s *BadgerStore) Range(_ context.Context, prefix string, fn func(key string, value []byte) error) error {
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))

			var callErr error
			valErr := item.Value(func(val []byte) error {
				decoded, decErr := decodeEnvelope(val)
				if decErr != nil {
					return decErr
				}
				callErr = fn(key, decoded)
				return nil
			})
			if valErr != nil {
				return valErr
			}
			if callErr != nil {
				return callErr
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: range %q: %w", prefix, err)
	}
	return nil
}
