// Marvin - MaNGA Survey Data Browser and API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marvin

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// OpenBadger opens (or creates) a BadgerDB at path with logging suppressed.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", path, err)
	}
	return db, nil
}

// Badger stores JSON-encoded values of type V under a key prefix.
// Entries expire after the configured TTL.
type Badger[V any] struct {
	db     *badger.DB
	prefix string
	ttl    time.Duration
}

// NewBadger wraps an open BadgerDB. Several typed caches may share one DB
// as long as their prefixes differ.
func NewBadger[V any](db *badger.DB, prefix string, ttl time.Duration) *Badger[V] {
	return &Badger[V]{db: db, prefix: prefix, ttl: ttl}
}

// Get returns the cached value. A missing or expired key yields found=false
// and a nil error.
func (b *Badger[V]) Get(key string) (value V, found bool, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(b.prefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &value)
		})
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return value, found, nil
}

// Set stores value with the cache TTL.
func (b *Badger[V]) Set(key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(b.prefix+key), data).WithTTL(b.ttl)
		return txn.SetEntry(e)
	})
}

// Delete removes a key. Deleting a missing key is not an error.
func (b *Badger[V]) Delete(key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(b.prefix + key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	})
}

// Len counts live entries under the prefix.
func (b *Badger[V]) Len() (int, error) {
	count := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(b.prefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// GCBadger runs value log garbage collection until no more files can be
// rewritten. Expired spectra only free disk space through it.
func GCBadger(db *badger.DB, discardRatio float64) error {
	for {
		err := db.RunValueLogGC(discardRatio)
		switch {
		case err == nil:
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
			return nil
		default:
			return fmt.Errorf("badger value log gc: %w", err)
		}
	}
}
