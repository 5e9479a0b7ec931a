// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/consts"
	"github.com/ava-labs/counter/program"
	"github.com/ava-labs/counter/utils"
)

const testPlan = `
name: sequence
description: basic counter walk
accounts:
  - name: alice
  - name: bob
    size: 8
steps:
  - description: first increment
    accounts: [alice]
    instruction: increment
    value: 5
    require:
      counter: 5
  - accounts: [alice]
    instruction: decrement
    value: 10
    require:
      counter: 0
  - accounts: [alice, bob]
    instruction: update
    value: 42
    require:
      counter: 42
  - accounts: [bob]
    data: "0x03ff"
    require:
      counter: 0
  - accounts: []
    instruction: reset
    require:
      error: missing account
  - accounts: [alice]
    data: "07"
    require:
      error: invalid instruction data
`

func readResponses(t *testing.T, out string) []Response {
	require := require.New(t)

	var resps []Response
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var r Response
		require.NoError(json.Unmarshal([]byte(line), &r))
		resps = append(resps, r)
	}
	return resps
}

func TestRunPlan(t *testing.T) {
	require := require.New(t)

	var out bytes.Buffer
	r := &runCmd{log: logging.NoLog{}, out: &out}
	require.NoError(r.Init("-", strings.NewReader(testPlan)))
	require.NoError(r.Run(context.Background()))

	resps := readResponses(t, out.String())
	require.Len(resps, 6)
	require.Equal("increment", resps[0].Instruction)
	require.Equal(uint32(5), resps[0].Counter)
	require.Equal(uint32(42), resps[2].Counter)
	require.Equal("reset", resps[3].Instruction)
	require.Contains(resps[4].Error, "missing account")
	require.Contains(resps[5].Error, "invalid instruction data")
	for _, r := range resps {
		require.Empty(r.RequireError)
	}
}

func TestRunPlanRequireFailed(t *testing.T) {
	require := require.New(t)

	plan := `
accounts:
  - name: alice
steps:
  - accounts: [alice]
    instruction: increment
    value: 1
    require:
      counter: 2
  - accounts: [alice]
    instruction: increment
    value: 1
`
	var out bytes.Buffer
	r := &runCmd{log: logging.NoLog{}, out: &out}
	require.NoError(r.Init("-", strings.NewReader(plan)))
	err := r.Run(context.Background())
	require.ErrorIs(err, ErrRequireFailed)

	// later steps still run
	resps := readResponses(t, out.String())
	require.Len(resps, 2)
	require.NotEmpty(resps[0].RequireError)
	require.Equal(uint32(2), resps[1].Counter)
}

func TestPlanVerify(t *testing.T) {
	tests := []struct {
		name string
		plan string
		err  error
	}{
		{
			name: "no steps",
			plan: "accounts: [{name: a}]",
			err:  ErrInvalidPlan,
		},
		{
			name: "duplicate account",
			plan: "accounts: [{name: a}, {name: a}]\nsteps: [{accounts: [a], instruction: reset}]",
			err:  ErrInvalidPlan,
		},
		{
			name: "unknown account",
			plan: "accounts: [{name: a}]\nsteps: [{accounts: [b], instruction: reset}]",
			err:  ErrUnknownAccount,
		},
		{
			name: "unknown instruction",
			plan: "accounts: [{name: a}]\nsteps: [{accounts: [a], instruction: double}]",
			err:  program.ErrUnknownInstruction,
		},
		{
			name: "bad hex",
			plan: "accounts: [{name: a}]\nsteps: [{accounts: [a], data: zz}]",
			err:  ErrInvalidStep,
		},
		{
			name: "malformed account address",
			plan: "accounts: [{name: \"0x01\"}]\nsteps: [{accounts: [\"0x01\"], instruction: reset}]",
			err:  ErrInvalidAddress,
		},
		{
			name: "malformed",
			plan: "steps: {",
			err:  ErrInvalidPlan,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &runCmd{log: logging.NoLog{}}
			err := r.Init("-", strings.NewReader(tt.plan))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseAddress(t *testing.T) {
	require := require.New(t)

	named, err := parseAddress("alice")
	require.NoError(err)
	require.Equal(codec.CreateAddress(consts.CounterAccountTypeID, utils.ToID([]byte("alice"))), named)

	again, err := parseAddress("alice")
	require.NoError(err)
	require.Equal(named, again)

	other, err := parseAddress("bob")
	require.NoError(err)
	require.NotEqual(named, other)

	// hex round trips
	parsed, err := parseAddress(named.String())
	require.NoError(err)
	require.Equal(named, parsed)
}

func TestParseAddressRejectsMalformedHex(t *testing.T) {
	named, err := parseAddress("alice")
	require.NoError(t, err)
	hexAddr := named.String()

	for _, s := range []string{
		hexAddr[:len(hexAddr)-1], // odd length
		hexAddr[:len(hexAddr)-2], // one byte short
		hexAddr + "00",           // one byte long
		"0xzz",
		"0x",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := parseAddress(s)
			require.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestParseValue(t *testing.T) {
	require := require.New(t)

	v, err := parseValue("42")
	require.NoError(err)
	require.Equal(uint32(42), v)

	v, err = parseValue("4294967295")
	require.NoError(err)
	require.Equal(uint32(consts.MaxUint32), v)

	_, err = parseValue("4294967296")
	require.ErrorIs(err, ErrInvalidValue)

	_, err = parseValue("-1")
	require.ErrorIs(err, ErrInvalidValue)
}
