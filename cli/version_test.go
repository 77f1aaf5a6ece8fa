// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/salvare/shelter"
	"github.com/salvare/shelter/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	versionCmd := cli.NewVersionCmd()
	resetFlags()

	out := executeCommand(t, versionCmd)

	var info shelter.VersionInfo
	err := json.Unmarshal([]byte(out), &info)
	require.Nil(t, err, fmt.Sprintf("invalid JSON response %s", out))

	expected := shelter.VersionInfo{Service: "shelter", Version: shelter.Version}
	assert.Equal(t, expected, info, fmt.Sprintf("expected %v got %v", expected, info))
}
