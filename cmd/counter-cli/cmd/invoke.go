// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/program"
	"github.com/ava-labs/counter/utils"
)

func newInvokeCmd(c *cli) *cobra.Command {
	var extra []string
	cmd := &cobra.Command{
		Use:   "invoke [address|name] [increment|decrement|update|reset] [value]",
		Short: "Apply an instruction to a counter account",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := uint32(0)
			if len(args) == 3 {
				v, err := parseValue(args[2])
				if err != nil {
					return err
				}
				value = v
			}
			ix, err := program.ParseInstruction(args[1], value)
			if err != nil {
				return err
			}
			data, err := program.Pack(ix)
			if err != nil {
				return err
			}

			addrs := make([]codec.Address, 0, 1+len(extra))
			for _, s := range append([]string{args[0]}, extra...) {
				addr, err := parseAddress(s)
				if err != nil {
					return err
				}
				addrs = append(addrs, addr)
			}

			b, err := c.backend()
			if err != nil {
				return err
			}
			result, err := b.Invoke(cmd.Context(), addrs, data)
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}%s:{{/}} counter=%d\n", result.Instruction, result.Counter)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&extra, "extra", nil, "additional accounts passed after the counter account")
	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get [address|name]",
		Short: "Print the counter stored in an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			b, err := c.backend()
			if err != nil {
				return err
			}
			counter, err := b.Counter(cmd.Context(), addr)
			if err != nil {
				return err
			}
			utils.Outf("{{cyan}}%s:{{/}} %d\n", addr, counter)
			return nil
		},
	}
}

func parseValue(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return uint32(v), nil
}
