// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

// Package mocks contains an in-memory implementation of the document
// repository used in tests.
package mocks

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/salvare/shelter"
	"github.com/salvare/shelter/pkg/errors"
	repoerr "github.com/salvare/shelter/pkg/errors/repository"
	"github.com/salvare/shelter/pkg/uuid"
)

var (
	errEmptyDocument     = errors.New("empty document")
	errEmptyQuery        = errors.New("empty query")
	errEmptyUpdate       = errors.New("empty update specification")
	errUnsupportedUpdate = errors.New("unsupported update operator")
)

var _ shelter.Repository = (*repositoryMock)(nil)

// repositoryMock keeps documents in a map keyed by generated identity.
// It honors the validation and lifecycle contract of the MongoDB
// implementation while supporting only equality queries and $set
// updates, and always strips the identity field from read results.
type repositoryMock struct {
	mu     sync.Mutex
	idp    shelter.IDProvider
	docs   map[string]shelter.Document
	closed bool
}

// NewRepository creates an in-memory document repository.
func NewRepository() shelter.Repository {
	return &repositoryMock{
		idp:  uuid.NewMock(),
		docs: make(map[string]shelter.Document),
	}
}

func (rm *repositoryMock) Create(ctx context.Context, doc shelter.Document) (bool, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.closed {
		return false, repoerr.ErrNotInitialized
	}
	if len(doc) == 0 {
		return false, errors.Wrap(repoerr.ErrMalformedEntity, errEmptyDocument)
	}

	id, err := rm.idp.ID()
	if err != nil {
		return false, errors.Wrap(repoerr.ErrCreateEntity, err)
	}

	stored := shelter.Document{shelter.IDKey: id}
	for k, v := range doc {
		stored[k] = v
	}
	rm.docs[id] = stored

	return true, nil
}

func (rm *repositoryMock) Read(ctx context.Context, qry shelter.Query, opts shelter.ReadOptions) ([]shelter.Document, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.closed {
		return nil, repoerr.ErrNotInitialized
	}

	ids := rm.match(qry)
	if opts.Limit > 0 && int64(len(ids)) > opts.Limit {
		ids = ids[:opts.Limit]
	}

	results := []shelter.Document{}
	for _, id := range ids {
		doc := shelter.Document{}
		for k, v := range rm.docs[id] {
			if k == shelter.IDKey {
				continue
			}
			doc[k] = v
		}
		results = append(results, doc)
	}

	return results, nil
}

func (rm *repositoryMock) Update(ctx context.Context, qry shelter.Query, upd shelter.UpdateSpec, many, upsert bool) (int64, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.closed {
		return 0, repoerr.ErrNotInitialized
	}
	if len(qry) == 0 {
		return 0, errors.Wrap(repoerr.ErrMalformedEntity, errEmptyQuery)
	}
	if len(upd) == 0 {
		return 0, errors.Wrap(repoerr.ErrMalformedEntity, errEmptyUpdate)
	}

	var set map[string]interface{}
	switch s := upd["$set"].(type) {
	case shelter.Document:
		set = s
	case map[string]interface{}:
		set = s
	default:
		return 0, errors.Wrap(repoerr.ErrUpdateEntity, errUnsupportedUpdate)
	}

	ids := rm.match(qry)
	if len(ids) == 0 {
		if upsert {
			return 0, rm.insertFromUpsert(qry, set)
		}
		return 0, nil
	}
	if !many {
		ids = ids[:1]
	}

	var modified int64
	for _, id := range ids {
		doc := rm.docs[id]
		changed := false
		for k, v := range set {
			if !reflect.DeepEqual(doc[k], v) {
				doc[k] = v
				changed = true
			}
		}
		if changed {
			modified++
		}
	}

	return modified, nil
}

func (rm *repositoryMock) Delete(ctx context.Context, qry shelter.Query, many bool) (int64, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.closed {
		return 0, repoerr.ErrNotInitialized
	}
	if len(qry) == 0 {
		return 0, errors.Wrap(repoerr.ErrMalformedEntity, errEmptyQuery)
	}

	ids := rm.match(qry)
	if !many && len(ids) > 1 {
		ids = ids[:1]
	}
	for _, id := range ids {
		delete(rm.docs, id)
	}

	return int64(len(ids)), nil
}

func (rm *repositoryMock) Ping(ctx context.Context) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.closed {
		return repoerr.ErrNotInitialized
	}

	return nil
}

func (rm *repositoryMock) Close(ctx context.Context) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.closed = true

	return nil
}

func (rm *repositoryMock) String() string {
	return fmt.Sprintf("<ShelterRepository db=%q col=%q>", "aac", "animals")
}

// match returns ids of documents whose fields equal all query terms, in
// insertion order.
func (rm *repositoryMock) match(qry shelter.Query) []string {
	ids := make([]string, 0, len(rm.docs))
	for id, doc := range rm.docs {
		matches := true
		for k, v := range qry {
			if !reflect.DeepEqual(doc[k], v) {
				matches = false
				break
			}
		}
		if matches {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return ids
}

func (rm *repositoryMock) insertFromUpsert(qry shelter.Query, set map[string]interface{}) error {
	doc := shelter.Document{}
	for k, v := range qry {
		if !strings.HasPrefix(k, "$") {
			doc[k] = v
		}
	}
	for k, v := range set {
		doc[k] = v
	}

	id, err := rm.idp.ID()
	if err != nil {
		return errors.Wrap(repoerr.ErrUpdateEntity, err)
	}
	doc[shelter.IDKey] = id
	rm.docs[id] = doc

	return nil
}
