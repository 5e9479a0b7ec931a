// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/counter/account"
)

// ProcessInstruction is the program entrypoint. It decodes [data], applies
// it to the counter stored in the first of [accounts] and writes the result
// back into that account's data. Additional accounts are ignored.
//
// The account data is only written once every other step has succeeded.
func ProcessInstruction(log logging.Logger, accounts []*account.Account, data []byte) error {
	log.Debug("counter program entrypoint",
		zap.Int("accounts", len(accounts)),
		zap.Int("dataLen", len(data)),
	)

	ix, err := Unpack(data)
	if err != nil {
		return err
	}
	_, err = Execute(log, accounts, ix)
	return err
}

// Execute applies an already decoded [ix] to the first of [accounts] and
// returns the state written back to it.
func Execute(log logging.Logger, accounts []*account.Account, ix Instruction) (CounterState, error) {
	acct, _, err := account.Next(accounts)
	if err != nil {
		return CounterState{}, err
	}

	prev, err := DecodeState(acct.Data)
	if err != nil {
		return CounterState{}, err
	}

	log.Debug("instruction",
		zap.Stringer("type", ix),
		zap.Stringer("account", acct.Address),
	)
	next := Apply(prev, ix)
	if _, ok := ix.(Increment); ok && next.Counter < prev.Counter {
		log.Warn("counter wrapped on increment",
			zap.Stringer("account", acct.Address),
			zap.Uint32("previous", prev.Counter),
			zap.Uint32("counter", next.Counter),
		)
	}

	if err := EncodeState(next, acct.Data); err != nil {
		return CounterState{}, err
	}
	return next, nil
}
