// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/config"
	"github.com/ava-labs/counter/consts"
	"github.com/ava-labs/counter/pebble"
	"github.com/ava-labs/counter/rpc"
	"github.com/ava-labs/counter/runtime"
	"github.com/ava-labs/counter/trace"
	"github.com/ava-labs/counter/utils"
)

const stateFolder = "state"

// backend is implemented by the local runtime and by [remoteBackend].
type backend interface {
	CreateAccount(ctx context.Context, addr codec.Address, owner codec.Address, size int) error
	Invoke(ctx context.Context, addrs []codec.Address, data []byte) (*runtime.Result, error)
	Counter(ctx context.Context, addr codec.Address) (uint32, error)
}

type cli struct {
	configPath string
	logLevel   string
	dataDir    string
	endpoint   string

	cfg        config.Config
	log        logging.Logger
	logFactory *logFactory

	registry *prometheus.Registry
	db       *pebble.Database
	rt       *runtime.Runtime
	closers  []func() error
}

// Execute runs the CLI with [args] and releases the store, tracer and loggers
// it opened, whether or not the command succeeded.
func Execute(ctx context.Context, args []string) error {
	c := &cli{}
	cmd := newRootCmd(c)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return errors.Join(err, c.close())
}

func newRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter-cli",
		Short: "Counter program runtime and CLI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
		SilenceUsage: true,
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a json, yaml or toml config file")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides config)")
	cmd.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "directory of the local account store (overrides config)")
	cmd.PersistentFlags().StringVar(&c.endpoint, "endpoint", "", "URI of a running counter node; uses the local store when empty")

	cmd.AddCommand(
		newAccountCmd(c),
		newInvokeCmd(c),
		newGetCmd(c),
		newRunCmd(c),
		newServeCmd(c),
	)
	return cmd
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = c.dataDir
	}
	c.cfg = cfg

	level, err := cfg.GetLogLevel()
	if err != nil {
		return err
	}
	c.logFactory = newLogFactory(newLoggingConfig(level, cfg.LogDir))
	c.log, err = c.logFactory.Make(consts.Name)
	if err != nil {
		c.logFactory.Close()
		return err
	}
	c.log.Debug("cli initialized",
		zap.String("logLevel", cfg.LogLevel),
		zap.String("dataDir", cfg.DataDir),
		zap.String("endpoint", c.endpoint),
	)
	return nil
}

// backend returns the remote node if --endpoint is set and the local
// runtime otherwise.
func (c *cli) backend() (backend, error) {
	if c.endpoint != "" {
		return &remoteBackend{cli: rpc.NewJSONRPCClient(c.endpoint)}, nil
	}
	return c.localRuntime()
}

// localRuntime opens the pebble store under the data directory on first use.
func (c *cli) localRuntime() (*runtime.Runtime, error) {
	if c.rt != nil {
		return c.rt, nil
	}

	tracer, err := trace.New(&c.cfg.Trace)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, tracer.Close)

	dbPath, err := utils.InitSubDirectory(c.cfg.DataDir, stateFolder)
	if err != nil {
		return nil, err
	}
	db, registry, err := pebble.New(dbPath, c.cfg.Pebble)
	if err != nil {
		return nil, err
	}
	c.db = db
	c.registry = registry
	c.closers = append(c.closers, db.Close)

	c.rt, err = runtime.New(c.log, tracer, db, registry)
	if err != nil {
		return nil, err
	}
	return c.rt, nil
}

func (c *cli) close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	if c.logFactory != nil {
		c.logFactory.Close()
		c.logFactory = nil
	}
	return errors.Join(errs...)
}

// parseAddress accepts either the 0x-prefixed hex form of an address or a
// name, which is hashed into a counter account address. A 0x-prefixed
// string that is not a valid address is an error.
func parseAddress(s string) (codec.Address, error) {
	if strings.HasPrefix(s, "0x") {
		addr, err := codec.StringToAddress(s)
		if err != nil {
			return codec.EmptyAddress, fmt.Errorf("%w %q: %w", ErrInvalidAddress, s, err)
		}
		return addr, nil
	}
	return codec.CreateAddress(consts.CounterAccountTypeID, utils.ToID([]byte(s))), nil
}

type remoteBackend struct {
	cli *rpc.JSONRPCClient
}

func (r *remoteBackend) CreateAccount(ctx context.Context, addr codec.Address, owner codec.Address, size int) error {
	return r.cli.CreateAccount(ctx, addr, owner, size)
}

func (r *remoteBackend) Invoke(ctx context.Context, addrs []codec.Address, data []byte) (*runtime.Result, error) {
	reply, err := r.cli.Invoke(ctx, addrs, data)
	if err != nil {
		return nil, err
	}
	return &runtime.Result{
		Instruction: reply.Instruction,
		Counter:     reply.Counter,
	}, nil
}

func (r *remoteBackend) Counter(ctx context.Context, addr codec.Address) (uint32, error) {
	return r.cli.Counter(ctx, addr)
}
