// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/runtime"
	"github.com/ava-labs/counter/state"
	"github.com/ava-labs/counter/trace"
)

type runCmd struct {
	plan *Plan
	log  logging.Logger
	out  io.Writer
}

func newRunCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "run [path]",
		Short: "Run a plan of invocations against an in-memory store (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &runCmd{
				log: c.log,
				out: cmd.OutOrStdout(),
			}
			if err := r.Init(args[0], cmd.InOrStdin()); err != nil {
				return err
			}
			return r.Run(cmd.Context())
		},
	}
}

func (r *runCmd) Init(path string, stdin io.Reader) error {
	var (
		planBytes []byte
		err       error
	)
	if path == "-" {
		planBytes, err = io.ReadAll(stdin)
	} else {
		planBytes, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	r.plan, err = unmarshalPlan(planBytes)
	if err != nil {
		return err
	}
	return r.plan.Verify()
}

func (r *runCmd) Run(ctx context.Context) error {
	r.log.Info("running plan",
		zap.String("name", r.plan.Name),
		zap.String("description", r.plan.Description),
		zap.Int("steps", len(r.plan.Steps)),
	)

	rt, err := runtime.New(r.log, trace.Noop(), state.NewInMemoryStore(), prometheus.NewRegistry())
	if err != nil {
		return err
	}
	addrs := make(map[string]codec.Address, len(r.plan.Accounts))
	for _, a := range r.plan.Accounts {
		addr, err := parseAddress(a.Name)
		if err != nil {
			return err
		}
		if err := rt.CreateAccount(ctx, addr, codec.EmptyAddress, a.Size); err != nil {
			return err
		}
		addrs[a.Name] = addr
	}

	failed := 0
	for i, step := range r.plan.Steps {
		r.log.Debug("step",
			zap.Int("step", i),
			zap.String("description", step.Description),
			zap.Strings("accounts", step.Accounts),
			zap.String("instruction", step.Instruction),
		)

		resp := r.runStep(ctx, rt, addrs, i, &step)
		if resp.RequireError != "" {
			failed++
		}
		if err := resp.Print(r.out); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d steps", ErrRequireFailed, failed, len(r.plan.Steps))
	}
	return nil
}

func (*runCmd) runStep(
	ctx context.Context,
	rt *runtime.Runtime,
	planAddrs map[string]codec.Address,
	i int,
	step *Step,
) *Response {
	resp := &Response{
		ID:          i,
		Description: step.Description,
	}
	// already checked by Verify
	data, _ := step.InstructionData()

	addrs := make([]codec.Address, len(step.Accounts))
	for j, name := range step.Accounts {
		addrs[j] = planAddrs[name]
	}
	result, err := rt.Invoke(ctx, addrs, data)
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Instruction = result.Instruction
		resp.Counter = result.Counter
	}

	if step.Require == nil {
		return resp
	}
	switch {
	case step.Require.Error != "" && err == nil:
		resp.RequireError = fmt.Sprintf("expected error containing %q", step.Require.Error)
	case step.Require.Error != "" && !strings.Contains(err.Error(), step.Require.Error):
		resp.RequireError = fmt.Sprintf("expected error containing %q", step.Require.Error)
	case step.Require.Error == "" && err != nil:
		resp.RequireError = "unexpected error"
	case step.Require.Counter != nil && err == nil && *step.Require.Counter != result.Counter:
		resp.RequireError = fmt.Sprintf("expected counter %d", *step.Require.Counter)
	}
	return resp
}
