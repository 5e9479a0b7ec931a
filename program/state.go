// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/ava-labs/counter/consts"
)

// CounterState is the value persisted in the leading bytes of a counter
// account.
type CounterState struct {
	Counter uint32
}

// DecodeState reads the state from the first [consts.CounterStateLen] bytes
// of [data]. Any bytes after that are ignored.
func DecodeState(data []byte) (CounterState, error) {
	var s CounterState
	if len(data) < consts.CounterStateLen {
		return s, fmt.Errorf(
			"%w: account data is %d bytes, need at least %d",
			ErrDeserialization,
			len(data),
			consts.CounterStateLen,
		)
	}
	if err := borsh.Deserialize(&s, data[:consts.CounterStateLen]); err != nil {
		return CounterState{}, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	return s, nil
}

// EncodeState overwrites the first [consts.CounterStateLen] bytes of [dst]
// with [s].
func EncodeState(s CounterState, dst []byte) error {
	if len(dst) < consts.CounterStateLen {
		return fmt.Errorf(
			"%w: account data is %d bytes, need at least %d",
			ErrSerialization,
			len(dst),
			consts.CounterStateLen,
		)
	}
	b, err := borsh.Serialize(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	copy(dst[:consts.CounterStateLen], b)
	return nil
}
