// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"bytes"
	"testing"

	"github.com/salvare/shelter/cli"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

type outputLog uint8

const (
	usageLog outputLog = iota
	errLog
	entityLog
	okLog
	countLog
)

// CRUD commands
const (
	createCmd = "create"
	readCmd   = "read"
	updateCmd = "update"
	deleteCmd = "delete"
)

// Provision commands
const (
	recordsCmd = "animals"
	sampleCmd  = "sample"
)

var extraArg = "extra-arg"

func executeCommand(t *testing.T, root *cobra.Command, args ...string) string {
	buffer := new(bytes.Buffer)
	root.SetOut(buffer)
	root.SetErr(buffer)
	root.SetArgs(args)
	err := root.Execute()
	assert.NoError(t, err, "Error executing command")
	return buffer.String()
}

// resetFlags clears the package level query parameters that persist
// between command executions.
func resetFlags() {
	cli.Limit = 0
	cli.Sort = ""
	cli.Projection = ""
	cli.Many = false
	cli.Upsert = false
	cli.ConfigPath = ""
	cli.EnvFile = ""
	cli.RawOutput = false
	cli.Verbose = false
}
