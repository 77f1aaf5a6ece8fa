// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"os"

	"github.com/salvare/shelter"
	shlog "github.com/salvare/shelter/logger"
	"github.com/salvare/shelter/middleware"
	"github.com/salvare/shelter/mongodb"
)

var (
	dbConfig   mongodb.Config
	repository shelter.Repository
)

// SetConfig sets the repository configuration used by the commands.
func SetConfig(cfg mongodb.Config) {
	dbConfig = cfg
}

// SetRepository sets a connected repository instance for the commands to
// run against instead of dialing one per command.
func SetRepository(repo shelter.Repository) {
	repository = repo
}

// runWithRepository hands fn a repository. Unless one was injected with
// SetRepository, it is connected for the duration of a single command run
// and released on all exit paths.
func runWithRepository(ctx context.Context, fn func(repo shelter.Repository) error) error {
	run := func(repo shelter.Repository) error {
		if Verbose {
			logger, err := shlog.New(os.Stderr, "debug")
			if err != nil {
				return err
			}
			repo = middleware.LoggingMiddleware(repo, logger)
		}

		return fn(repo)
	}

	if repository != nil {
		return run(repository)
	}

	return mongodb.With(ctx, dbConfig, run)
}
