// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/counter/rpc"
	"github.com/ava-labs/counter/server"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the counter JSON-RPC API backed by the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.localRuntime()
			if err != nil {
				return err
			}

			listener, err := net.Listen("tcp", c.cfg.HTTPAddress)
			if err != nil {
				return err
			}
			s := server.New(
				rpc.BaseURL,
				c.log,
				listener,
				c.cfg.HTTP,
				c.cfg.AllowedOrigins,
				c.cfg.ShutdownTimeout,
			)
			if err := rpc.Register(s, c.log, rt, c.registry); err != nil {
				return err
			}

			errs := make(chan error, 1)
			go func() {
				errs <- s.Dispatch()
			}()
			c.log.Info("serving",
				zap.Stringer("address", listener.Addr()),
			)

			select {
			case err := <-errs:
				return err
			case <-cmd.Context().Done():
				c.log.Info("shutting down")
				if err := s.Shutdown(); err != nil {
					return err
				}
				return <-errs
			}
		},
	}
}
