// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/utils"
)

func newAccountCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage counter accounts",
	}
	cmd.AddCommand(newAccountCreateCmd(c))
	return cmd
}

func newAccountCreateCmd(c *cli) *cobra.Command {
	var (
		owner string
		size  int
	)
	cmd := &cobra.Command{
		Use:   "create [address|name]",
		Short: "Create a zero-filled counter account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			ownerAddr := codec.EmptyAddress
			if owner != "" {
				ownerAddr, err = parseAddress(owner)
				if err != nil {
					return err
				}
			}
			b, err := c.backend()
			if err != nil {
				return err
			}
			if err := b.CreateAccount(cmd.Context(), addr, ownerAddr, size); err != nil {
				return err
			}
			utils.Outf("{{green}}created account:{{/}} %s\n", addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner address or name")
	cmd.Flags().IntVar(&size, "size", 0, "account data size in bytes (0 allocates just the counter)")
	return cmd
}
