// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/counter/consts"
)

const samples = 1_000

func TestApplyIncrement(t *testing.T) {
	require := require.New(t)

	require.Equal(uint32(5), Apply(CounterState{Counter: 2}, Increment{Value: 3}).Counter)
	// wraps instead of saturating
	require.Equal(uint32(0), Apply(CounterState{Counter: consts.MaxUint32}, Increment{Value: 1}).Counter)
	require.Equal(uint32(4), Apply(CounterState{Counter: consts.MaxUint32 - 1}, Increment{Value: 6}).Counter)
}

func TestApplyDecrementClamp(t *testing.T) {
	require := require.New(t)

	require.Zero(Apply(CounterState{Counter: 0}, Decrement{Value: 1}).Counter)
	require.Zero(Apply(CounterState{Counter: 1}, Decrement{Value: consts.MaxUint32}).Counter)
	for i := 0; i < samples; i++ {
		counter := rand.Uint32()
		if counter == consts.MaxUint32 {
			continue
		}
		v := counter + 1 + rand.Uint32()%(consts.MaxUint32-counter)
		require.Zero(Apply(CounterState{Counter: counter}, Decrement{Value: v}).Counter)
	}
}

func TestApplyDecrementExact(t *testing.T) {
	require := require.New(t)

	require.Equal(uint32(0), Apply(CounterState{Counter: 7}, Decrement{Value: 7}).Counter)
	for i := 0; i < samples; i++ {
		counter := rand.Uint32()
		v := rand.Uint32() % (counter/2 + 1)
		require.Equal(counter-v, Apply(CounterState{Counter: counter}, Decrement{Value: v}).Counter)
	}
}

func TestApplyUpdate(t *testing.T) {
	require := require.New(t)

	for i := 0; i < samples; i++ {
		prev := CounterState{Counter: rand.Uint32()}
		v := rand.Uint32()
		require.Equal(v, Apply(prev, Update{Value: v}).Counter)
	}
}

func TestApplyReset(t *testing.T) {
	require := require.New(t)

	for i := 0; i < samples; i++ {
		prev := CounterState{Counter: rand.Uint32()}
		once := Apply(prev, Reset{})
		require.Zero(once.Counter)
		require.Equal(once, Apply(once, Reset{}))
	}
}

func TestApplySequence(t *testing.T) {
	require := require.New(t)

	s := CounterState{}
	for _, step := range []struct {
		ix       Instruction
		expected uint32
	}{
		{Increment{Value: 1}, 1},
		{Decrement{Value: 5}, 0},
		{Update{Value: 33}, 33},
		{Reset{}, 0},
	} {
		s = Apply(s, step.ix)
		require.Equal(step.expected, s.Counter, step.ix.String())
	}
}
