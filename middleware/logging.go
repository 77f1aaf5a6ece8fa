// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/salvare/shelter"
)

var _ shelter.Repository = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	repo   shelter.Repository
}

// LoggingMiddleware adds logging facilities to the repository.
func LoggingMiddleware(repo shelter.Repository, logger *slog.Logger) shelter.Repository {
	return &loggingMiddleware{
		logger: logger,
		repo:   repo,
	}
}

func (lm *loggingMiddleware) Create(ctx context.Context, doc shelter.Document) (created bool, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("document",
				slog.Int("fields", len(doc)),
				slog.Bool("created", created),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Create document failed", args...)
			return
		}
		lm.logger.Info("Create document completed successfully", args...)
	}(time.Now())

	return lm.repo.Create(ctx, doc)
}

func (lm *loggingMiddleware) Read(ctx context.Context, qry shelter.Query, opts shelter.ReadOptions) (docs []shelter.Document, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("query",
				slog.Int("terms", len(qry)),
				slog.Int64("limit", opts.Limit),
				slog.Int("matched", len(docs)),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Read documents failed", args...)
			return
		}
		lm.logger.Info("Read documents completed successfully", args...)
	}(time.Now())

	return lm.repo.Read(ctx, qry, opts)
}

func (lm *loggingMiddleware) Update(ctx context.Context, qry shelter.Query, upd shelter.UpdateSpec, many, upsert bool) (modified int64, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("update",
				slog.Bool("many", many),
				slog.Bool("upsert", upsert),
				slog.Int64("modified", modified),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Update documents failed", args...)
			return
		}
		lm.logger.Info("Update documents completed successfully", args...)
	}(time.Now())

	return lm.repo.Update(ctx, qry, upd, many, upsert)
}

func (lm *loggingMiddleware) Delete(ctx context.Context, qry shelter.Query, many bool) (deleted int64, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("delete",
				slog.Bool("many", many),
				slog.Int64("deleted", deleted),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Delete documents failed", args...)
			return
		}
		lm.logger.Info("Delete documents completed successfully", args...)
	}(time.Now())

	return lm.repo.Delete(ctx, qry, many)
}

func (lm *loggingMiddleware) Ping(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Ping failed", args...)
			return
		}
		lm.logger.Info("Ping completed successfully", args...)
	}(time.Now())

	return lm.repo.Ping(ctx)
}

func (lm *loggingMiddleware) Close(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Close repository failed", args...)
			return
		}
		lm.logger.Info("Close repository completed successfully", args...)
	}(time.Now())

	return lm.repo.Close(ctx)
}

func (lm *loggingMiddleware) String() string {
	return lm.repo.String()
}
