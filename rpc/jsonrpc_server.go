// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/runtime"
)

type Runtime interface {
	CreateAccount(ctx context.Context, addr codec.Address, owner codec.Address, size int) error
	Invoke(ctx context.Context, addrs []codec.Address, data []byte) (*runtime.Result, error)
	Counter(ctx context.Context, addr codec.Address) (uint32, error)
}

type JSONRPCServer struct {
	log logging.Logger
	rt  Runtime
}

func NewJSONRPCServer(log logging.Logger, rt Runtime) *JSONRPCServer {
	return &JSONRPCServer{log: log, rt: rt}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type CreateAccountArgs struct {
	Address codec.Address `json:"address"`
	Owner   codec.Address `json:"owner"`
	Size    int           `json:"size"`
}

type CreateAccountReply struct {
	Address codec.Address `json:"address"`
}

func (j *JSONRPCServer) CreateAccount(req *http.Request, args *CreateAccountArgs, reply *CreateAccountReply) error {
	if err := j.rt.CreateAccount(req.Context(), args.Address, args.Owner, args.Size); err != nil {
		return err
	}
	reply.Address = args.Address
	return nil
}

type InvokeArgs struct {
	Accounts []codec.Address `json:"accounts"`
	Data     codec.Bytes     `json:"data"`
}

type InvokeReply struct {
	Instruction string `json:"instruction"`
	Counter     uint32 `json:"counter"`
}

func (j *JSONRPCServer) Invoke(req *http.Request, args *InvokeArgs, reply *InvokeReply) error {
	result, err := j.rt.Invoke(req.Context(), args.Accounts, args.Data)
	if err != nil {
		j.log.Debug("invoke rejected",
			zap.Int("accounts", len(args.Accounts)),
			zap.Error(err),
		)
		return err
	}
	reply.Instruction = result.Instruction
	reply.Counter = result.Counter
	return nil
}

type CounterArgs struct {
	Address codec.Address `json:"address"`
}

type CounterReply struct {
	Counter uint32 `json:"counter"`
}

func (j *JSONRPCServer) Counter(req *http.Request, args *CounterArgs, reply *CounterReply) error {
	counter, err := j.rt.Counter(req.Context(), args.Address)
	if err != nil {
		return err
	}
	reply.Counter = counter
	return nil
}
