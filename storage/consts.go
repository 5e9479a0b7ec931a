// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "github.com/ava-labs/counter/codec"

const (
	accountPrefix = 0x0

	// owner
	accountHeaderLen = codec.AddressLen
)
