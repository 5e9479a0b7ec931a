// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"errors"

	"github.com/ava-labs/counter/account"
)

var (
	ErrInvalidInstructionData = errors.New("invalid instruction data")
	ErrDeserialization        = errors.New("deserialization error")
	ErrSerialization          = errors.New("serialization error")
	ErrUnknownInstruction     = errors.New("unknown instruction")

	// ErrMissingAccount is returned when no account handle is supplied.
	ErrMissingAccount = account.ErrMissingAccount
)
