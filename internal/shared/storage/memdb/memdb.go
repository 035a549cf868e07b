package memdb

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrNotConnected indicates a store access was attempted while disconnected.
	ErrNotConnected = errors.New("memdb: not connected")
	// ErrAlreadyConnected indicates Connect was called on a connected DB.
	ErrAlreadyConnected = errors.New("memdb: already connected")
	// ErrNoKey indicates the requested key is absent from the store.
	ErrNoKey = errors.New("memdb: key not found")
)

// DB is an explicit-lifecycle in-memory key-value store. The store exists
// only between Connect and Disconnect; a fresh Connect always yields an
// empty store, so nothing survives a connection cycle.
type DB struct {
	mu   sync.Mutex
	data map[string]any
}

// New returns a DB in the disconnected state.
func New() *DB {
	return &DB{}
}

// Connect transitions the DB to connected and allocates an empty store.
// Connecting an already-connected DB fails with ErrAlreadyConnected.
func (d *DB) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data != nil {
		return ErrAlreadyConnected
	}
	d.data = make(map[string]any)
	return nil
}

// Disconnect discards the store and transitions to disconnected.
// Disconnecting an already-disconnected DB is a no-op.
func (d *DB) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = nil
}

// IsConnected reports whether the DB currently holds a store.
func (d *DB) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data != nil
}

// Save stores value under key. Fails with ErrNotConnected while
// disconnected; an existing key is overwritten.
func (d *DB) Save(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data == nil {
		return ErrNotConnected
	}
	d.data[key] = value
	return nil
}

// Get returns the value stored under key. Fails with ErrNotConnected
// while disconnected and ErrNoKey when the key is absent.
func (d *DB) Get(ctx context.Context, key string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data == nil {
		return nil, ErrNotConnected
	}
	value, ok := d.data[key]
	if !ok {
		return nil, ErrNoKey
	}
	return value, nil
}

// Keys returns a sorted snapshot of the keys matching prefix.
func (d *DB) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data == nil {
		return nil, ErrNotConnected
	}
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// With runs fn against a connected DB and guarantees Disconnect on every
// exit path, including a panic inside fn.
func With(db *DB, fn func(*DB) error) error {
	if err := db.Connect(); err != nil {
		return err
	}
	defer db.Disconnect()
	return fn(db)
}
