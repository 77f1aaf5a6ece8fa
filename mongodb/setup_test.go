// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

// Package mongodb_test contains integration tests for the MongoDB
// repository implementation.
package mongodb_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/salvare/shelter"
	"github.com/salvare/shelter/mongodb"
	"github.com/stretchr/testify/require"
)

const (
	testUser = "aacuser"
	testPass = "aacpass"
	testHost = "localhost"
)

var testPort string

func TestMain(m *testing.M) {
	// Credential overrides from the outer environment would defeat the
	// explicit configs used by the tests.
	os.Unsetenv(mongodb.EnvUser)
	os.Unsetenv(mongodb.EnvPass)

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not connect to docker: %s", err)
	}

	container, err := pool.Run("mongo", "7.0", []string{
		"MONGO_INITDB_ROOT_USERNAME=" + testUser,
		"MONGO_INITDB_ROOT_PASSWORD=" + testPass,
	})
	if err != nil {
		log.Fatalf("Could not start container: %s", err)
	}

	testPort = container.GetPort("27017/tcp")

	if err := pool.Retry(func() error {
		repo, err := mongodb.New(context.Background(), testConfig())
		if err != nil {
			return err
		}
		return repo.Close(context.Background())
	}); err != nil {
		log.Fatalf("Could not connect to docker: %s", err)
	}

	code := m.Run()

	if err := pool.Purge(container); err != nil {
		log.Fatalf("Could not purge container: %s", err)
	}

	os.Exit(code)
}

func testConfig() mongodb.Config {
	return mongodb.Config{
		User: testUser,
		Pass: testPass,
		Host: testHost,
		Port: testPort,
	}
}

func newRepository(t *testing.T, collection string) shelter.Repository {
	cfg := testConfig()
	cfg.Collection = collection

	repo, err := mongodb.New(context.Background(), cfg)
	require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))

	return repo
}
