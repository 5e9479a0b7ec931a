// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/counter/account"
	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/consts"
	"github.com/ava-labs/counter/lockmap"
	"github.com/ava-labs/counter/program"
	"github.com/ava-labs/counter/state"
	"github.com/ava-labs/counter/storage"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Runtime hosts the counter program. It loads accounts from [state.Mutable],
// hands them to the program and persists the result.
//
// Invocations touching the same account are serialized.
type Runtime struct {
	log     logging.Logger
	tracer  trace.Tracer
	db      state.Mutable
	locks   *lockmap.Lockmap
	metrics *metrics
}

type Result struct {
	Instruction string `json:"instruction"`
	Counter     uint32 `json:"counter"`
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	db state.Mutable,
	registerer prometheus.Registerer,
) (*Runtime, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		log:     log,
		tracer:  tracer,
		db:      db,
		locks:   lockmap.New(16),
		metrics: m,
	}, nil
}

// CreateAccount stores a zero-filled account of [size] bytes at [addr]. A
// [size] of 0 allocates just enough for the counter state. [size] may not
// exceed [consts.MaxAccountSize].
func (r *Runtime) CreateAccount(ctx context.Context, addr codec.Address, owner codec.Address, size int) error {
	ctx, span := r.tracer.Start(ctx, "Runtime.CreateAccount")
	defer span.End()

	if size < 0 || size > consts.MaxAccountSize {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidAccountSize, size, consts.MaxAccountSize)
	}
	if size == 0 {
		size = consts.CounterStateLen
	}

	unlock := r.locks.LockAll([]string{string(addr[:])})
	defer unlock()

	exists, err := storage.HasAccount(ctx, r.db, addr)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAccountExists, addr)
	}
	if err := storage.SetAccount(ctx, r.db, account.New(addr, owner, size)); err != nil {
		return err
	}
	r.metrics.accountsCreated.Inc()
	r.log.Info("account created",
		zap.Stringer("address", addr),
		zap.Stringer("owner", owner),
		zap.Int("size", size),
	)
	return nil
}

// Invoke runs the program with the accounts at [addrs] and instruction
// [data]. Accounts are only written back if the program succeeds.
func (r *Runtime) Invoke(ctx context.Context, addrs []codec.Address, data []byte) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "Runtime.Invoke",
		oteltrace.WithAttributes(
			attribute.Int("accounts", len(addrs)),
			attribute.Int("dataLen", len(data)),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := r.invoke(ctx, addrs, data)
	r.metrics.invokeLatency.Observe(float64(time.Since(start)))
	if err != nil {
		r.metrics.failures.Inc()
		r.log.Debug("invocation failed",
			zap.Int("accounts", len(addrs)),
			zap.Error(err),
		)
		return nil, err
	}
	r.metrics.invocations.WithLabelValues(result.Instruction).Inc()
	return result, nil
}

func (r *Runtime) invoke(ctx context.Context, addrs []codec.Address, data []byte) (*Result, error) {
	ix, err := program.Unpack(data)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(addrs))
	for i, addr := range addrs {
		keys[i] = string(addr[:])
	}
	unlock := r.locks.LockAll(keys)
	defer unlock()

	accounts := make([]*account.Account, len(addrs))
	originals := make([]*account.Account, len(addrs))
	for i, addr := range addrs {
		acct, exists, err := storage.GetAccount(ctx, r.db, addr)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
		}
		accounts[i] = acct
		originals[i] = acct.Clone()
	}

	s, err := program.Execute(r.log, accounts, ix)
	if err != nil {
		return nil, err
	}

	for i, acct := range accounts {
		if bytes.Equal(originals[i].Data, acct.Data) {
			continue
		}
		if err := storage.SetAccount(ctx, r.db, acct); err != nil {
			return nil, err
		}
	}

	r.log.Debug("invocation succeeded",
		zap.Stringer("account", addrs[0]),
		zap.Stringer("instruction", ix),
		zap.Uint32("counter", s.Counter),
	)
	return &Result{
		Instruction: ix.String(),
		Counter:     s.Counter,
	}, nil
}

// Counter returns the counter stored at [addr].
func (r *Runtime) Counter(ctx context.Context, addr codec.Address) (uint32, error) {
	ctx, span := r.tracer.Start(ctx, "Runtime.Counter")
	defer span.End()

	key := string(addr[:])
	r.locks.RLock(key)
	defer r.locks.RUnlock(key)

	acct, exists, err := storage.GetAccount(ctx, r.db, addr)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	s, err := program.DecodeState(acct.Data)
	if err != nil {
		return 0, err
	}
	return s.Counter, nil
}
