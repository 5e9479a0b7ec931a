// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	Name = "counter"

	IDLen     = 32
	ByteLen   = 1
	BoolLen   = 1
	Uint32Len = 4
	MaxUint32 = ^uint32(0)

	// CounterStateLen is the number of leading account bytes holding the
	// persisted counter.
	CounterStateLen = Uint32Len

	// MaxAccountSize bounds the data allocated for a single account.
	MaxAccountSize = 10 * 1024

	// CounterAccountTypeID prefixes addresses of counter accounts.
	CounterAccountTypeID uint8 = 0
)
