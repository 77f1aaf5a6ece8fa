// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/salvare/shelter"
	"github.com/spf13/cobra"
)

// NewHealthCmd returns health check command.
func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Health Check",
		Long: "Shelter store health check\n" +
			"usage:\n" +
			"\tshelter-cli health\n",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var info shelter.HealthInfo
			err := runWithRepository(cmd.Context(), func(repo shelter.Repository) error {
				if err := repo.Ping(cmd.Context()); err != nil {
					return err
				}

				info = shelter.HealthInfo{
					Status:      "pass",
					Version:     shelter.Version,
					Description: "shelter document repository",
					Store:       repo.String(),
				}

				return nil
			})
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, info)
		},
	}
}
