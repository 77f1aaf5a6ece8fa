// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

// Package shelter contains the domain types and the repository contract for
// accessing animal shelter records kept in a MongoDB collection. The mongodb
// package provides the implementation, and the middleware package provides
// logging, metrics and tracing decorators over the same contract.
package shelter
