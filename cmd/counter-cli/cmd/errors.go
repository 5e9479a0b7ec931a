// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidPlan    = errors.New("invalid plan")
	ErrInvalidStep    = errors.New("invalid step")
	ErrUnknownAccount = errors.New("unknown plan account")
	ErrRequireFailed  = errors.New("require failed")
	ErrInvalidValue   = errors.New("invalid value")
	ErrInvalidAddress = errors.New("invalid address")
)
