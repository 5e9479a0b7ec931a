// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "counter_runtime"

type metrics struct {
	invocations     *prometheus.CounterVec
	failures        prometheus.Counter
	accountsCreated prometheus.Counter
	invokeLatency   metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	invokeLatency, err := metric.NewAverager(
		namespace+"_invoke_latency",
		"time spent processing an invocation",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		invokeLatency: invokeLatency,
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations",
			Help:      "number of successful invocations by instruction",
		}, []string{"instruction"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures",
			Help:      "number of invocations that returned an error",
		}),
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_created",
			Help:      "number of accounts created",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.invocations),
		r.Register(m.failures),
		r.Register(m.accountsCreated),
	)
	return m, errs.Err
}
