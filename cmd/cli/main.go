// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

// Package main contains the entry point of the shelter CLI.
package main

import (
	"log"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/salvare/shelter"
	"github.com/salvare/shelter/cli"
	"github.com/salvare/shelter/mongodb"
	"github.com/spf13/cobra"
)

func main() {
	dbConfig := mongodb.Config{}

	rootCmd := &cobra.Command{
		Use:   "shelter-cli",
		Short: "Shelter CLI",
		Long:  `Manage animal shelter records kept in MongoDB`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cli.EnvFile != "" {
				if err := shelter.LoadEnvFile(cli.EnvFile); err != nil {
					return err
				}
			}

			cfg, err := cli.ParseConfig(dbConfig)
			if err != nil {
				return err
			}
			cli.SetConfig(cfg)

			return nil
		},
	}

	// API commands
	animalsCmd := cli.NewAnimalsCmd()
	healthCmd := cli.NewHealthCmd()
	provisionCmd := cli.NewProvisionCmd()
	configCmd := cli.NewConfigCmd()
	versionCmd := cli.NewVersionCmd()

	// Root Commands
	rootCmd.AddCommand(animalsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	// Root Flags
	rootCmd.PersistentFlags().StringVar(
		&dbConfig.Host,
		"host",
		dbConfig.Host,
		"MongoDB host",
	)

	rootCmd.PersistentFlags().StringVar(
		&dbConfig.Port,
		"port",
		dbConfig.Port,
		"MongoDB port",
	)

	rootCmd.PersistentFlags().StringVarP(
		&dbConfig.Name,
		"database",
		"d",
		dbConfig.Name,
		"database name",
	)

	rootCmd.PersistentFlags().StringVarP(
		&dbConfig.Collection,
		"collection",
		"c",
		dbConfig.Collection,
		"collection name",
	)

	rootCmd.PersistentFlags().StringVar(
		&dbConfig.AuthSource,
		"auth-source",
		dbConfig.AuthSource,
		"authentication database",
	)

	rootCmd.PersistentFlags().StringVar(
		&dbConfig.AuthMechanism,
		"auth-mechanism",
		dbConfig.AuthMechanism,
		"authentication mechanism",
	)

	rootCmd.PersistentFlags().StringVar(
		&dbConfig.User,
		"user",
		dbConfig.User,
		"database username, "+mongodb.EnvUser+" takes precedence when set",
	)

	rootCmd.PersistentFlags().StringVar(
		&dbConfig.Pass,
		"password",
		dbConfig.Pass,
		"database password, "+mongodb.EnvPass+" takes precedence when set",
	)

	rootCmd.PersistentFlags().DurationVar(
		&dbConfig.SelectTimeout,
		"timeout",
		dbConfig.SelectTimeout,
		"server selection timeout",
	)

	rootCmd.PersistentFlags().BoolVar(
		&dbConfig.DisableDirect,
		"disable-direct",
		dbConfig.DisableDirect,
		"connect through topology discovery instead of directly",
	)

	rootCmd.PersistentFlags().BoolVar(
		&dbConfig.KeepID,
		"keep-id",
		dbConfig.KeepID,
		"keep the store identity field in read results",
	)

	rootCmd.PersistentFlags().StringVar(
		&cli.ConfigPath,
		"config",
		"",
		"config file path",
	)

	rootCmd.PersistentFlags().StringVarP(
		&cli.EnvFile,
		"env-file",
		"e",
		"",
		"environment file path",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"r",
		cli.RawOutput,
		"enables raw output mode for easier parsing of output",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.Verbose,
		"verbose",
		"v",
		cli.Verbose,
		"log every repository operation to stderr",
	)

	cc.Init(&cc.Config{
		RootCmd:       rootCmd,
		Headings:      cc.HiCyan + cc.Bold + cc.Underline,
		Commands:      cc.HiYellow + cc.Bold,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Flags:         cc.Bold,
		FlagsDataType: cc.Italic + cc.HiBlue,
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %s", err)
	}
}
