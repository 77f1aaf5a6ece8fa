// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

// Package mongodb contains the MongoDB implementation of the shelter
// document repository.
package mongodb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/salvare/shelter"
	"github.com/salvare/shelter/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// EnvPrefix is the environment prefix under which repository
	// configuration is looked up.
	EnvPrefix = "SHELTER_DB_"

	// EnvUser and EnvPass name the variables that override explicitly
	// provided credentials, so deployments never hardcode secrets in
	// calling code. Empty values do not override.
	EnvUser = EnvPrefix + "USER"
	EnvPass = EnvPrefix + "PASS"
)

const (
	defHost          = "localhost"
	defPort          = "27017"
	defName          = "aac"
	defCollection    = "animals"
	defAuthSource    = "admin"
	defAuthMechanism = "SCRAM-SHA-256"
	defSelectTimeout = 5 * time.Second
)

var (
	errConfig     = errors.New("failed to load mongodb configuration")
	errConnect    = errors.New("failed to connect to mongodb server")
	errDisconnect = errors.New("failed to disconnect from mongodb server")

	// ErrMissingCredentials indicates that the database username or
	// password resolved to an empty value.
	ErrMissingCredentials = errors.New("missing database username or password")
)

// Config defines the options that are used when connecting to a MongoDB
// instance. Zero fields fall back to the aac/animals defaults. Defaults
// are applied in New, so the same Config works whether it was built
// explicitly or parsed from the environment.
type Config struct {
	User          string        `env:"USER"`
	Pass          string        `env:"PASS"`
	Host          string        `env:"HOST"`
	Port          string        `env:"PORT"`
	Name          string        `env:"NAME"`
	Collection    string        `env:"COLLECTION"`
	AuthSource    string        `env:"AUTH_SOURCE"`
	AuthMechanism string        `env:"AUTH_MECHANISM"`
	SelectTimeout time.Duration `env:"SELECT_TIMEOUT"`
	DisableDirect bool          `env:"DISABLE_DIRECT"`
	KeepID        bool          `env:"KEEP_ID"`
}

// New connects to the MongoDB instance described by cfg and returns a
// repository over the configured collection. Credentials from EnvUser
// and EnvPass take precedence over the ones in cfg. Construction fails
// before any connection attempt if the resolved credentials are empty,
// and the connection is probed with a bounded liveness check before the
// repository is handed out.
func New(ctx context.Context, cfg Config) (shelter.Repository, error) {
	cfg = cfg.withDefaults().withEnvCredentials()
	if cfg.User == "" || cfg.Pass == "" {
		return nil, errors.Wrap(errConfig, ErrMissingCredentials)
	}

	client, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &animalRepository{
		coll:   client.Database(cfg.Name).Collection(cfg.Collection),
		keepID: cfg.KeepID,
	}, nil
}

// Setup loads configuration from environment variables with the given
// prefix, connects to the MongoDB server and returns a repository over
// the configured collection.
func Setup(ctx context.Context, envPrefix string) (shelter.Repository, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, errors.Wrap(errConfig, err)
	}

	return New(ctx, cfg)
}

// With connects a repository, runs fn against it and releases the
// connection on all exit paths. The error from fn wins over the error
// from the release.
func With(ctx context.Context, cfg Config, fn func(repo shelter.Repository) error) error {
	repo, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	err = fn(repo)
	if cerr := repo.Close(ctx); err == nil {
		err = cerr
	}

	return err
}

func connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	addr := fmt.Sprintf("mongodb://%s:%s", cfg.Host, cfg.Port)
	opts := options.Client().
		ApplyURI(addr).
		SetDirect(!cfg.DisableDirect).
		SetServerSelectionTimeout(cfg.SelectTimeout).
		SetAuth(options.Credential{
			AuthMechanism: cfg.AuthMechanism,
			AuthSource:    cfg.AuthSource,
			Username:      cfg.User,
			Password:      cfg.Pass,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(errConnect, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errConnect, err)
	}

	return client, nil
}

func (cfg Config) withDefaults() Config {
	if cfg.Host == "" {
		cfg.Host = defHost
	}
	if cfg.Port == "" {
		cfg.Port = defPort
	}
	if cfg.Name == "" {
		cfg.Name = defName
	}
	if cfg.Collection == "" {
		cfg.Collection = defCollection
	}
	if cfg.AuthSource == "" {
		cfg.AuthSource = defAuthSource
	}
	if cfg.AuthMechanism == "" {
		cfg.AuthMechanism = defAuthMechanism
	}
	if cfg.SelectTimeout == 0 {
		cfg.SelectTimeout = defSelectTimeout
	}

	return cfg
}

func (cfg Config) withEnvCredentials() Config {
	if user := os.Getenv(EnvUser); user != "" {
		cfg.User = user
	}
	if pass := os.Getenv(EnvPass); pass != "" {
		cfg.Pass = pass
	}

	return cfg
}
