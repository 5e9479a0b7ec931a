// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/program"
)

type JSONRPCClient struct {
	requester rpc.EndpointRequester
}

// NewJSONRPCClient returns a client for the node at [uri] (e.g.
// http://127.0.0.1:9650).
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += BaseURL + "/" + Name + JSONRPCEndpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		Name+".ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) CreateAccount(ctx context.Context, addr codec.Address, owner codec.Address, size int) error {
	resp := new(CreateAccountReply)
	return cli.requester.SendRequest(ctx,
		Name+".createAccount",
		&CreateAccountArgs{
			Address: addr,
			Owner:   owner,
			Size:    size,
		},
		resp,
	)
}

// Invoke sends raw instruction [data] for [accounts].
func (cli *JSONRPCClient) Invoke(ctx context.Context, accounts []codec.Address, data []byte) (*InvokeReply, error) {
	resp := new(InvokeReply)
	err := cli.requester.SendRequest(ctx,
		Name+".invoke",
		&InvokeArgs{
			Accounts: accounts,
			Data:     data,
		},
		resp,
	)
	return resp, err
}

// InvokeInstruction packs [ix] and sends it for [accounts].
func (cli *JSONRPCClient) InvokeInstruction(
	ctx context.Context,
	accounts []codec.Address,
	ix program.Instruction,
) (*InvokeReply, error) {
	data, err := program.Pack(ix)
	if err != nil {
		return nil, err
	}
	return cli.Invoke(ctx, accounts, data)
}

func (cli *JSONRPCClient) Counter(ctx context.Context, addr codec.Address) (uint32, error) {
	resp := new(CounterReply)
	err := cli.requester.SendRequest(ctx,
		Name+".counter",
		&CounterArgs{Address: addr},
		resp,
	)
	return resp.Counter, err
}
