// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/counter/account"
	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/consts"
)

func newTestAccount(size int) *account.Account {
	return account.New(
		codec.CreateAddress(consts.CounterAccountTypeID, ids.GenerateTestID()),
		codec.EmptyAddress,
		size,
	)
}

func mustPack(t *testing.T, ix Instruction) []byte {
	data, err := Pack(ix)
	require.NoError(t, err)
	return data
}

func counterOf(t *testing.T, acct *account.Account) uint32 {
	s, err := DecodeState(acct.Data)
	require.NoError(t, err)
	return s.Counter
}

func TestProcessInstructionSequence(t *testing.T) {
	require := require.New(t)
	acct := newTestAccount(consts.CounterStateLen)
	accounts := []*account.Account{acct}

	for _, step := range []struct {
		data     []byte
		expected uint32
	}{
		{mustPack(t, Increment{Value: 1}), 1},
		{mustPack(t, Decrement{Value: 5}), 0},
		{mustPack(t, Update{Value: 33}), 33},
		{mustPack(t, Reset{}), 0},
	} {
		require.NoError(ProcessInstruction(logging.NoLog{}, accounts, step.data))
		require.Equal(step.expected, counterOf(t, acct))
	}
}

func TestProcessInstructionUsesFirstAccount(t *testing.T) {
	require := require.New(t)
	first := newTestAccount(consts.CounterStateLen)
	second := newTestAccount(consts.CounterStateLen)

	require.NoError(ProcessInstruction(
		logging.NoLog{},
		[]*account.Account{first, second},
		mustPack(t, Update{Value: 9}),
	))
	require.Equal(uint32(9), counterOf(t, first))
	require.Zero(counterOf(t, second))
}

func TestProcessInstructionPreservesTrailingData(t *testing.T) {
	require := require.New(t)
	acct := newTestAccount(8)
	copy(acct.Data[consts.CounterStateLen:], []byte{1, 2, 3, 4})

	require.NoError(ProcessInstruction(logging.NoLog{}, []*account.Account{acct}, mustPack(t, Update{Value: 2})))
	require.Equal([]byte{2, 0, 0, 0, 1, 2, 3, 4}, acct.Data)
}

func TestProcessInstructionWraps(t *testing.T) {
	require := require.New(t)
	acct := newTestAccount(consts.CounterStateLen)
	accounts := []*account.Account{acct}

	require.NoError(ProcessInstruction(logging.NoLog{}, accounts, mustPack(t, Update{Value: consts.MaxUint32})))
	require.NoError(ProcessInstruction(logging.NoLog{}, accounts, mustPack(t, Increment{Value: 2})))
	require.Equal(uint32(1), counterOf(t, acct))
}

func TestProcessInstructionErrors(t *testing.T) {
	tests := []struct {
		name     string
		accounts func() []*account.Account
		data     []byte
		err      error
	}{
		{
			name:     "empty data",
			accounts: func() []*account.Account { return []*account.Account{newTestAccount(4)} },
			data:     nil,
			err:      ErrInvalidInstructionData,
		},
		{
			name:     "unknown tag",
			accounts: func() []*account.Account { return []*account.Account{newTestAccount(4)} },
			data:     []byte{4},
			err:      ErrInvalidInstructionData,
		},
		{
			name:     "bad data is reported before missing account",
			accounts: func() []*account.Account { return nil },
			data:     []byte{},
			err:      ErrInvalidInstructionData,
		},
		{
			name:     "missing account",
			accounts: func() []*account.Account { return nil },
			data:     []byte{byte(ResetTag)},
			err:      ErrMissingAccount,
		},
		{
			name:     "short payload",
			accounts: func() []*account.Account { return []*account.Account{newTestAccount(4)} },
			data:     []byte{byte(IncrementTag), 1},
			err:      ErrDeserialization,
		},
		{
			name:     "short account",
			accounts: func() []*account.Account { return []*account.Account{newTestAccount(3)} },
			data:     []byte{byte(ResetTag)},
			err:      ErrDeserialization,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			accounts := tt.accounts()
			before := make([][]byte, len(accounts))
			for i, acct := range accounts {
				before[i] = append([]byte(nil), acct.Data...)
			}

			err := ProcessInstruction(logging.NoLog{}, accounts, tt.data)
			require.ErrorIs(err, tt.err)
			for i, acct := range accounts {
				require.Equal(before[i], acct.Data)
			}
		})
	}
}

func TestExecuteReturnsWrittenState(t *testing.T) {
	require := require.New(t)
	acct := newTestAccount(consts.CounterStateLen + 2)
	acct.Data[consts.CounterStateLen] = 0xaa

	s, err := Execute(logging.NoLog{}, []*account.Account{acct}, Update{Value: 9})
	require.NoError(err)
	require.Equal(CounterState{Counter: 9}, s)
	require.Equal(uint32(9), counterOf(t, acct))
	require.Equal(byte(0xaa), acct.Data[consts.CounterStateLen])

	s, err = Execute(logging.NoLog{}, []*account.Account{acct}, Decrement{Value: 4})
	require.NoError(err)
	require.Equal(uint32(5), s.Counter)

	_, err = Execute(logging.NoLog{}, nil, Reset{})
	require.ErrorIs(err, ErrMissingAccount)

	short := newTestAccount(2)
	_, err = Execute(logging.NoLog{}, []*account.Account{short}, Reset{})
	require.ErrorIs(err, ErrDeserialization)
	require.Equal([]byte{0, 0}, short.Data)
}
