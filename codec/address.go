// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/counter/consts"
)

const AddressLen = consts.ByteLen + consts.IDLen

// Address represents the 33 byte address of an account
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	var a Address
	a[0] = typeID
	copy(a[1:], id[:])
	return a
}

// ToAddress returns [b] as an Address. [b] must be exactly [AddressLen] bytes.
func ToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, fmt.Errorf("%w: expected %d bytes but found %d", ErrInvalidSize, AddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// StringToAddress parses the hex form produced by [Address.String]. The
// leading 0x is optional.
func StringToAddress(s string) (Address, error) {
	b, err := LoadHex(s, AddressLen)
	if err != nil {
		return EmptyAddress, err
	}
	return ToAddress(b)
}

// TypeID returns the leading type byte of [a].
func (a Address) TypeID() uint8 {
	return a[0]
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
