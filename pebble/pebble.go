// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/counter/state"
)

var _ state.Mutable = (*Database)(nil)

type Config struct {
	CacheSize             int  `json:"cacheSize" yaml:"cacheSize" toml:"cacheSize"`
	BytesPerSync          int  `json:"bytesPerSync" yaml:"bytesPerSync" toml:"bytesPerSync"`
	WALBytesPerSync       int  `json:"walBytesPerSync" yaml:"walBytesPerSync" toml:"walBytesPerSync"` // 0 means no background syncing
	MaxOpenFiles          int  `json:"maxOpenFiles" yaml:"maxOpenFiles" toml:"maxOpenFiles"`
	ConcurrentCompactions int  `json:"concurrentCompactions" yaml:"concurrentCompactions" toml:"concurrentCompactions"`
	Sync                  bool `json:"sync" yaml:"sync" toml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:             64 * units.MiB,
		BytesPerSync:          units.MiB,
		WALBytesPerSync:       units.MiB,
		MaxOpenFiles:          1_024,
		ConcurrentCompactions: 1,
		Sync:                  true,
	}
}

// Database stores key-value pairs on disk with cockroachdb/pebble.
type Database struct {
	lock   sync.RWMutex
	db     *pebble.DB
	wo     *pebble.WriteOptions
	closed bool

	metrics *metrics
	closing chan struct{}
	done    sync.WaitGroup
}

// New opens (or creates) the database at [file]. The returned registry holds
// the database metrics.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()

	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	db := &Database{
		wo:      &pebble.WriteOptions{Sync: cfg.Sync},
		metrics: metrics,
		closing: make(chan struct{}),
	}
	opts := &pebble.Options{
		Cache:                    cache,
		BytesPerSync:             cfg.BytesPerSync,
		Comparer:                 pebble.DefaultComparer,
		WALBytesPerSync:          cfg.WALBytesPerSync,
		MaxOpenFiles:             cfg.MaxOpenFiles,
		MaxConcurrentCompactions: func() int { return cfg.ConcurrentCompactions },
		EventListener: &pebble.EventListener{
			CompactionBegin: db.onCompactionBegin,
			CompactionEnd:   db.onCompactionEnd,
			WriteStallBegin: db.onWriteStallBegin,
			WriteStallEnd:   db.onWriteStallEnd,
		},
	}
	d, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	db.db = d

	db.done.Add(1)
	go func() {
		defer db.done.Done()
		db.collectMetrics()
	}()
	return db, registry, nil
}

func (db *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	start := time.Now()
	v, closer, err := db.db.Get(key)
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// [v] is only valid until [closer] is closed
	value := make([]byte, len(v))
	copy(value, v)
	return value, nil
}

func (db *Database) Insert(_ context.Context, key []byte, value []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	if err := db.db.Set(key, value, db.wo); err != nil {
		return err
	}
	db.metrics.writes.Inc()
	return nil
}

func (db *Database) Remove(_ context.Context, key []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	if err := db.db.Delete(key, db.wo); err != nil {
		return err
	}
	db.metrics.deletes.Inc()
	return nil
}

func (db *Database) Close() error {
	db.lock.Lock()
	if db.closed {
		db.lock.Unlock()
		return database.ErrClosed
	}
	db.closed = true
	close(db.closing)
	db.lock.Unlock()

	db.done.Wait()
	return db.db.Close()
}
