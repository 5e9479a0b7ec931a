// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
)

var _ Mutable = (*InMemoryStore)(nil)

// InMemoryStore is an in-memory implementation of [Mutable] that is safe for
// concurrent use.
type InMemoryStore struct {
	l       sync.RWMutex
	storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		storage: make(map[string][]byte),
	}
}

func (i *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	i.l.RLock()
	defer i.l.RUnlock()

	val, ok := i.storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return copyBytes(val), nil
}

func (i *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	i.l.Lock()
	defer i.l.Unlock()

	i.storage[string(key)] = copyBytes(value)
	return nil
}

func (i *InMemoryStore) Remove(_ context.Context, key []byte) error {
	i.l.Lock()
	defer i.l.Unlock()

	delete(i.storage, string(key))
	return nil
}

// Len returns the number of stored keys.
func (i *InMemoryStore) Len() int {
	i.l.RLock()
	defer i.l.RUnlock()

	return len(i.storage)
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
