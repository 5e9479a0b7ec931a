// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package account

import (
	"errors"

	"github.com/ava-labs/counter/codec"
)

var ErrMissingAccount = errors.New("missing account")

// Account is a handle to an account loaded by the host for the duration of
// a single invocation. [Data] is borrowed from the host and may be mutated
// in place by the program.
type Account struct {
	Address codec.Address
	Owner   codec.Address
	Data    []byte
}

func New(address codec.Address, owner codec.Address, size int) *Account {
	return &Account{
		Address: address,
		Owner:   owner,
		Data:    make([]byte, size),
	}
}

// Next returns the first account in [accounts] and the remainder.
func Next(accounts []*Account) (*Account, []*Account, error) {
	if len(accounts) == 0 {
		return nil, nil, ErrMissingAccount
	}
	return accounts[0], accounts[1:], nil
}

// Clone returns a copy of [a] that does not share its data buffer.
func (a *Account) Clone() *Account {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return &Account{
		Address: a.Address,
		Owner:   a.Owner,
		Data:    data,
	}
}
