// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import "github.com/ava-labs/counter/consts"

const (
	Name            = consts.Name
	BaseURL         = "/ext"
	JSONRPCEndpoint = "/counterapi"
	MetricsEndpoint = "/metrics"
)
