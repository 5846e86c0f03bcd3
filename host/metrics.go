// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/upgradevm/contract"
)

const namespace = "upgradevm"

type metrics struct {
	calls            *prometheus.CounterVec
	callLatency      *prometheus.HistogramVec
	upgrades         prometheus.Counter
	installedVersion prometheus.Gauge
	counter          prometheus.Gauge
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls",
			Help:      "number of invocations by method and outcome",
		}, []string{"method", "outcome"}),
		callLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_latency_seconds",
			Help:      "time spent executing and committing an invocation",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"method"}),
		upgrades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upgrades",
			Help:      "number of code upgrades applied",
		}),
		installedVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "installed_version",
			Help:      "version reported by the installed code",
		}),
		counter: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "counter",
			Help:      "last counter value returned by increment",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.calls),
		r.Register(m.callLatency),
		r.Register(m.upgrades),
		r.Register(m.installedVersion),
		r.Register(m.counter),
	)
	return m, errs.Err
}

func (m *metrics) observe(method string, err error, elapsed time.Duration) {
	m.calls.WithLabelValues(method, outcome(err)).Inc()
	m.callLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, contract.ErrAlreadyInitialized):
		return "already_initialized"
	case errors.Is(err, contract.ErrUninitialized):
		return "uninitialized"
	case errors.Is(err, contract.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, contract.ErrCounterOverflow):
		return "overflow"
	case errors.Is(err, ErrUnknownMethod), errors.Is(err, ErrInvalidArgs):
		return "invalid"
	default:
		return "error"
	}
}
