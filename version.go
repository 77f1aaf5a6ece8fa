// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package shelter

// Version of the shelter module.
const Version string = "0.1.0"

// VersionInfo contains the version command response.
type VersionInfo struct {
	// Service contains the service name.
	Service string `json:"service"`

	// Version contains the current version value.
	Version string `json:"version"`
}
