// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ava-labs/counter/server"

	gorillarpc "github.com/gorilla/rpc/v2"
)

// Register adds the JSON-RPC service for [rt] and, if [gatherer] is not nil,
// a metrics endpoint to [s].
func Register(s server.PathAdder, log logging.Logger, rt Runtime, gatherer prometheus.Gatherer) error {
	handler, err := newJSONRPCHandler(NewJSONRPCServer(log, rt))
	if err != nil {
		return err
	}
	if err := s.AddRoute(handler, Name, JSONRPCEndpoint); err != nil {
		return err
	}
	if gatherer == nil {
		return nil
	}
	log.Debug("exposing metrics",
		zap.String("endpoint", BaseURL+"/"+Name+MetricsEndpoint),
	)
	return s.AddRoute(
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		Name,
		MetricsEndpoint,
	)
}

// newJSONRPCHandler serves the exported methods of [service] as
// "counter.<method>" using avalanchego's lower-cased JSON codec.
func newJSONRPCHandler(service *JSONRPCServer) (http.Handler, error) {
	s := gorillarpc.NewServer()
	codec := json.NewCodec()
	s.RegisterCodec(codec, "application/json")
	s.RegisterCodec(codec, "application/json;charset=UTF-8")
	if err := s.RegisterService(service, Name); err != nil {
		return nil, err
	}
	return s, nil
}
