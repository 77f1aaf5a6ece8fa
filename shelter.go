// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package shelter

import (
	"context"
	"fmt"
)

// IDKey is the name of the identity field the store assigns to every
// inserted record. It is owned by the store, never by this layer.
const IDKey = "_id"

// Document is an open-ended shelter record. No schema is enforced by this
// layer; field values may be text, numbers, booleans, nested documents,
// sequences, or null.
type Document map[string]interface{}

// Query is a MongoDB filter document. It is forwarded to the store verbatim,
// operators included; this layer assigns no meaning to its contents. A nil
// Query matches every record where the operation permits it.
type Query map[string]interface{}

// UpdateSpec is a MongoDB update document ($set, $inc, ...). Like Query, it
// is an opaque pass-through value interpreted entirely by the store.
type UpdateSpec map[string]interface{}

// Projection selects which record fields find operations return. Forwarded
// to the store verbatim; nil means all fields.
type Projection map[string]interface{}

// Order is a sort direction in store-native encoding.
type Order int

const (
	// Ascending sorts smallest value first.
	Ascending Order = 1
	// Descending sorts largest value first.
	Descending Order = -1
)

// SortField pairs a record field with a sort direction.
type SortField struct {
	Field string
	Order Order
}

// ReadOptions carries the optional find parameters. Sort fields apply in
// listed priority order and before Limit; Limit of zero or less means
// unbounded.
type ReadOptions struct {
	Projection Projection
	Limit      int64
	Sort       []SortField
}

// Repository specifies a shelter record persistence API over a single
// collection. Implementations own exactly one live connection handle,
// acquired at construction and released once via Close; a closed instance
// fails every operation. Implementations are safe for concurrent use.
type Repository interface {
	// Create inserts a single record, letting the store assign the identity
	// field. It returns true only if the store acknowledged the write and
	// assigned an identity. Nil or empty documents are rejected.
	Create(ctx context.Context, doc Document) (bool, error)

	// Read retrieves the records matching the query, nil meaning all of
	// them. The result is never nil; a query matching nothing yields an
	// empty slice.
	Read(ctx context.Context, qry Query, opts ReadOptions) ([]Document, error)

	// Update applies the update specification to one (many=false) or every
	// (many=true) matching record, inserting a new one when upsert is set
	// and nothing matches. It returns the number of records actually
	// modified. Nil or empty query and update documents are rejected.
	Update(ctx context.Context, qry Query, upd UpdateSpec, many, upsert bool) (int64, error)

	// Delete removes one (many=false) or every (many=true) matching record
	// and returns the number removed. The query must be non-empty: removing
	// the whole collection requires a filter that spells that intent out.
	Delete(ctx context.Context, qry Query, many bool) (int64, error)

	// Ping probes the store for liveness using the same round trip the
	// constructor issues before handing out a usable instance.
	Ping(ctx context.Context) error

	// Close releases the connection handle. It is idempotent; calls after
	// the first are no-ops.
	Close(ctx context.Context) error

	fmt.Stringer
}
