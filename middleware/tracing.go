// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"

	"github.com/salvare/shelter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var _ shelter.Repository = (*tracingMiddleware)(nil)

type tracingMiddleware struct {
	tracer trace.Tracer
	repo   shelter.Repository
}

// TracingMiddleware adds spans to context for every repository operation.
func TracingMiddleware(tracer trace.Tracer, repo shelter.Repository) shelter.Repository {
	return tracingMiddleware{
		tracer: tracer,
		repo:   repo,
	}
}

// Create traces the "Create" operation of the wrapped repository.
func (tm tracingMiddleware) Create(ctx context.Context, doc shelter.Document) (bool, error) {
	ctx, span := tm.tracer.Start(ctx, "create_document", trace.WithAttributes(attribute.Int("document.fields", len(doc))))
	defer span.End()

	return tm.repo.Create(ctx, doc)
}

// Read traces the "Read" operation of the wrapped repository.
func (tm tracingMiddleware) Read(ctx context.Context, qry shelter.Query, opts shelter.ReadOptions) ([]shelter.Document, error) {
	ctx, span := tm.tracer.Start(ctx, "read_documents", trace.WithAttributes(
		attribute.Int("query.terms", len(qry)),
		attribute.Int64("query.limit", opts.Limit),
	))
	defer span.End()

	return tm.repo.Read(ctx, qry, opts)
}

// Update traces the "Update" operation of the wrapped repository.
func (tm tracingMiddleware) Update(ctx context.Context, qry shelter.Query, upd shelter.UpdateSpec, many, upsert bool) (int64, error) {
	ctx, span := tm.tracer.Start(ctx, "update_documents", trace.WithAttributes(
		attribute.Bool("update.many", many),
		attribute.Bool("update.upsert", upsert),
	))
	defer span.End()

	return tm.repo.Update(ctx, qry, upd, many, upsert)
}

// Delete traces the "Delete" operation of the wrapped repository.
func (tm tracingMiddleware) Delete(ctx context.Context, qry shelter.Query, many bool) (int64, error) {
	ctx, span := tm.tracer.Start(ctx, "delete_documents", trace.WithAttributes(attribute.Bool("delete.many", many)))
	defer span.End()

	return tm.repo.Delete(ctx, qry, many)
}

// Ping traces the "Ping" operation of the wrapped repository.
func (tm tracingMiddleware) Ping(ctx context.Context) error {
	ctx, span := tm.tracer.Start(ctx, "ping")
	defer span.End()

	return tm.repo.Ping(ctx)
}

// Close traces the "Close" operation of the wrapped repository.
func (tm tracingMiddleware) Close(ctx context.Context) error {
	ctx, span := tm.tracer.Start(ctx, "close")
	defer span.End()

	return tm.repo.Close(ctx)
}

func (tm tracingMiddleware) String() string {
	return tm.repo.String()
}
