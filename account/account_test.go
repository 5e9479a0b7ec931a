// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package account

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/counter/codec"
)

func TestNext(t *testing.T) {
	require := require.New(t)

	_, _, err := Next(nil)
	require.ErrorIs(err, ErrMissingAccount)

	first := New(codec.CreateAddress(0, ids.GenerateTestID()), codec.EmptyAddress, 4)
	second := New(codec.CreateAddress(0, ids.GenerateTestID()), codec.EmptyAddress, 4)

	acct, rest, err := Next([]*Account{first, second})
	require.NoError(err)
	require.Same(first, acct)
	require.Len(rest, 1)
	require.Same(second, rest[0])
}

func TestClone(t *testing.T) {
	require := require.New(t)

	acct := New(codec.CreateAddress(0, ids.GenerateTestID()), codec.EmptyAddress, 8)
	clone := acct.Clone()
	require.Equal(acct, clone)

	clone.Data[0] = 1
	require.Zero(acct.Data[0])
}
