// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/salvare/shelter"
	"github.com/spf13/cobra"
)

// NewVersionCmd returns version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get shelter version",
		Long:  `Print the version of the shelter module`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			logJSONCmd(*cmd, shelter.VersionInfo{Service: "shelter", Version: shelter.Version})
		},
	}
}
