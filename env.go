// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package shelter

import (
	"github.com/subosito/gotenv"
)

// LoadEnvFile loads environment variables defined in an .env formatted file.
func LoadEnvFile(envfilepath string) error {
	return gotenv.Load(envfilepath)
}
