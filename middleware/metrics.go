// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/salvare/shelter"
)

var _ shelter.Repository = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	repo    shelter.Repository
}

// MetricsMiddleware instruments the repository by tracking request count
// and latency.
func MetricsMiddleware(repo shelter.Repository, counter metrics.Counter, latency metrics.Histogram) shelter.Repository {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		repo:    repo,
	}
}

func (ms *metricsMiddleware) Create(ctx context.Context, doc shelter.Document) (bool, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "create").Add(1)
		ms.latency.With("method", "create").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.repo.Create(ctx, doc)
}

func (ms *metricsMiddleware) Read(ctx context.Context, qry shelter.Query, opts shelter.ReadOptions) ([]shelter.Document, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "read").Add(1)
		ms.latency.With("method", "read").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.repo.Read(ctx, qry, opts)
}

func (ms *metricsMiddleware) Update(ctx context.Context, qry shelter.Query, upd shelter.UpdateSpec, many, upsert bool) (int64, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "update").Add(1)
		ms.latency.With("method", "update").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.repo.Update(ctx, qry, upd, many, upsert)
}

func (ms *metricsMiddleware) Delete(ctx context.Context, qry shelter.Query, many bool) (int64, error) {
	defer func(begin time.Time) {
		ms.counter.With("method", "delete").Add(1)
		ms.latency.With("method", "delete").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.repo.Delete(ctx, qry, many)
}

func (ms *metricsMiddleware) Ping(ctx context.Context) error {
	defer func(begin time.Time) {
		ms.counter.With("method", "ping").Add(1)
		ms.latency.With("method", "ping").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.repo.Ping(ctx)
}

func (ms *metricsMiddleware) Close(ctx context.Context) error {
	defer func(begin time.Time) {
		ms.counter.With("method", "close").Add(1)
		ms.latency.With("method", "close").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return ms.repo.Close(ctx)
}

func (ms *metricsMiddleware) String() string {
	return ms.repo.String()
}
