// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// LoadHex decodes [s], with or without a 0x prefix. If [expectedSize] is not
// -1 the decoded length must match it.
func LoadHex(s string, expectedSize int) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(b) != expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes but found %d", ErrInvalidSize, expectedSize, len(b))
	}
	return b, nil
}

// Bytes is raw instruction or account data that travels as 0x-prefixed hex.
type Bytes []byte

func (b Bytes) String() string {
	return "0x" + hex.EncodeToString(b)
}

func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes) UnmarshalText(text []byte) error {
	decoded, err := LoadHex(string(text), -1)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
