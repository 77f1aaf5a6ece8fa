// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

// Package prometheus wires the go-kit metric types used by the repository
// middleware to their Prometheus backends.
package prometheus

import (
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// MakeMetrics registers and returns the operation counter and latency
// summary tracked for every repository method.
//
//	counter, latency := prometheus.MakeMetrics("shelter", "repository")
func MakeMetrics(namespace, subsystem string) (*kitprometheus.Counter, *kitprometheus.Summary) {
	counter := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_count",
		Help:      "Number of repository operations performed.",
	}, []string{"method"})
	latency := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace:  namespace,
		Subsystem:  subsystem,
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		Name:       "request_latency_seconds",
		Help:       "Total duration of repository operations in seconds.",
	}, []string{"method"})

	return counter, latency
}
