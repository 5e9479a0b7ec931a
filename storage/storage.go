// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/counter/account"
	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/state"
)

var ErrCorruptAccount = errors.New("corrupt account")

// [accountPrefix] + [address]
func AccountKey(addr codec.Address) (k []byte) {
	k = make([]byte, 1+codec.AddressLen)
	k[0] = accountPrefix
	copy(k[1:], addr[:])
	return
}

// GetAccount loads the account stored at [addr]. The returned account owns
// its data buffer.
func GetAccount(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
) (
	*account.Account,
	bool, // exists
	error,
) {
	v, err := im.GetValue(ctx, AccountKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	acct, err := unmarshalAccount(addr, v)
	if err != nil {
		return nil, false, err
	}
	return acct, true, nil
}

func HasAccount(ctx context.Context, im state.Immutable, addr codec.Address) (bool, error) {
	_, err := im.GetValue(ctx, AccountKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func SetAccount(ctx context.Context, mu state.Mutable, acct *account.Account) error {
	return mu.Insert(ctx, AccountKey(acct.Address), marshalAccount(acct))
}

func marshalAccount(acct *account.Account) []byte {
	p := &wrappers.Packer{Bytes: make([]byte, 0, accountHeaderLen+len(acct.Data)), MaxSize: accountHeaderLen + len(acct.Data)}
	p.PackFixedBytes(acct.Owner[:])
	p.PackFixedBytes(acct.Data)
	return p.Bytes
}

func unmarshalAccount(addr codec.Address, v []byte) (*account.Account, error) {
	if len(v) < accountHeaderLen {
		return nil, fmt.Errorf("%w: %s has %d bytes", ErrCorruptAccount, addr, len(v))
	}
	p := &wrappers.Packer{Bytes: v}
	owner, err := codec.ToAddress(p.UnpackFixedBytes(codec.AddressLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptAccount, err)
	}
	if p.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptAccount, p.Err)
	}
	data := make([]byte, len(v)-p.Offset)
	copy(data, v[p.Offset:])
	return &account.Account{
		Address: addr,
		Owner:   owner,
		Data:    data,
	}, nil
}
