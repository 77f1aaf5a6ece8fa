// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package shelter

// HealthInfo contains the health command response.
type HealthInfo struct {
	// Status contains the store liveness status.
	Status string `json:"status"`

	// Version contains the current version value.
	Version string `json:"version"`

	// Description contains the repository description.
	Description string `json:"description"`

	// Store names the database and collection the repository is bound to.
	Store string `json:"store"`
}
