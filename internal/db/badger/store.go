// Package badger implements db.Store on an embedded BadgerDB.
package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/kailas-cloud/shopsense/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Key layout: "m/<key>" holds the list length, "l/<key>/<seq>" one element.
const (
	metaPrefix = "m/"
	itemPrefix = "l/"
)

// Config holds BadgerDB options.
type Config struct {
	// Path is the data directory. Empty selects an in-memory database.
	Path string
}

// Store implements db.Store over BadgerDB.
type Store struct {
	db *badger.DB
	// mu serializes writers so the length counter never races.
	mu     sync.Mutex
	closed bool
}

// NewStore opens (or creates) a BadgerDB at cfg.Path.
func NewStore(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: bdb}, nil
}

// Ping reports whether the database is open.
func (s *Store) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	return nil
}

// Close flushes and closes the database.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	_ = s.db.Close()
}

// WaitForReady returns immediately: an opened embedded database is ready.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// RPush appends values under a single transaction.
func (s *Store) RPush(_ context.Context, key string, values ...[]byte) (int64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("rpush %s: no values", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, &db.Error{Op: db.OpRPush, Err: db.ErrClosed}
	}

	var n int64
	err := s.db.Update(func(txn *badger.Txn) error {
		length, err := readLength(txn, key)
		if err != nil {
			return err
		}
		for _, v := range values {
			if err := txn.Set(itemKey(key, length), v); err != nil {
				return fmt.Errorf("set item: %w", err)
			}
			length++
		}
		n = length
		return txn.Set(metaKey(key), encodeLength(length))
	})
	if err != nil {
		return 0, &db.Error{Op: db.OpRPush, Err: err}
	}
	return n, nil
}

// LRange reads elements start..stop inclusive with Redis index semantics.
func (s *Store) LRange(_ context.Context, key string, start, stop int64) ([][]byte, error) {
	if s.db.IsClosed() {
		return nil, &db.Error{Op: db.OpLRange, Err: db.ErrClosed}
	}

	var out [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		length, err := readLength(txn, key)
		if err != nil {
			return err
		}
		from, to, ok := clampRange(start, stop, length)
		if !ok {
			return nil
		}

		out = make([][]byte, 0, to-from+1)
		for i := from; i <= to; i++ {
			item, err := txn.Get(itemKey(key, i))
			if err != nil {
				return fmt.Errorf("get item %d: %w", i, err)
			}
			v, err := item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("copy item %d: %w", i, err)
			}
			out = append(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	return out, nil
}

func readLength(txn *badger.Txn, key string) (int64, error) {
	item, err := txn.Get(metaKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get length: %w", err)
	}
	var length int64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt length for %q", key)
		}
		length = int64(binary.BigEndian.Uint64(val)) //nolint:gosec // written by encodeLength
		return nil
	})
	return length, err
}

func encodeLength(n int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n)) //nolint:gosec // n is never negative
	return buf
}

func metaKey(key string) []byte { return []byte(metaPrefix + key) }

func itemKey(key string, seq int64) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d", itemPrefix, key, seq))
}

// clampRange converts Redis-style indexes into a valid [from, to] window.
func clampRange(start, stop, length int64) (from, to int64, ok bool) {
	if length == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}
	if start > stop || start >= length {
		return 0, 0, false
	}
	return start, stop, true
}
