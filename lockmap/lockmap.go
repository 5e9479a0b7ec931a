// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lockmap

import (
	"sort"
	"sync"
)

type holderLock struct {
	holders int
	mu      sync.RWMutex
}

// Lockmap is a set of read-write locks keyed by string. Entries are created
// on first use and dropped once no holder remains.
type Lockmap struct {
	l sync.Mutex
	m map[string]*holderLock
}

func New(initSize int) *Lockmap {
	return &Lockmap{
		m: make(map[string]*holderLock, initSize),
	}
}

func (l *Lockmap) Lock(key string) {
	l.lock(key, true)
}

func (l *Lockmap) Unlock(key string) {
	l.unlock(key, true)
}

func (l *Lockmap) RLock(key string) {
	l.lock(key, false)
}

func (l *Lockmap) RUnlock(key string) {
	l.unlock(key, false)
}

// LockAll write-locks every distinct key in sorted order and returns a
// function that releases them.
func (l *Lockmap) LockAll(keys []string) func() {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	for _, k := range sorted {
		l.Lock(k)
	}
	return func() {
		for i := len(sorted) - 1; i >= 0; i-- {
			l.Unlock(sorted[i])
		}
	}
}

func (l *Lockmap) lock(key string, write bool) {
	l.l.Lock()
	hl, ok := l.m[key]
	if !ok {
		hl = &holderLock{}
		l.m[key] = hl
	}
	hl.holders++
	l.l.Unlock()

	if write {
		hl.mu.Lock()
	} else {
		hl.mu.RLock()
	}
}

func (l *Lockmap) unlock(key string, write bool) {
	l.l.Lock()
	hl := l.m[key]
	hl.holders--
	if hl.holders == 0 {
		delete(l.m, key)
	}
	l.l.Unlock()

	if write {
		hl.mu.Unlock()
	} else {
		hl.mu.RUnlock()
	}
}

// Locks returns the number of keys with at least one holder.
func (l *Lockmap) Locks() int {
	l.l.Lock()
	defer l.l.Unlock()

	return len(l.m)
}
