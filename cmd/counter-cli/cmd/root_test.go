// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/counter/runtime"
)

func TestExecuteReleasesStore(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	base := []string{"--log-level", "error", "--data-dir", t.TempDir()}
	run := func(args ...string) error {
		return Execute(ctx, append(append([]string{}, base...), args...))
	}

	require.NoError(run("account", "create", "alice"))
	require.NoError(run("invoke", "alice", "increment", "2"))

	// the store is opened before the lookup fails and must still be closed
	require.ErrorIs(run("invoke", "bob", "increment", "1"), runtime.ErrAccountNotFound)
	require.NoError(run("get", "alice"))
}

func TestExecuteRejectsMalformedAddress(t *testing.T) {
	err := Execute(context.Background(), []string{
		"--log-level", "error",
		"--data-dir", t.TempDir(),
		"account", "create", "0x1234",
	})
	require.ErrorIs(t, err, ErrInvalidAddress)
}
