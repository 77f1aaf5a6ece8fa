// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package mongodb_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/salvare/shelter"
	"github.com/salvare/shelter/mongodb"
	"github.com/salvare/shelter/pkg/errors"
	repoerr "github.com/salvare/shelter/pkg/errors/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	repo := newRepository(t, "create")
	defer repo.Close(context.Background())

	cases := []struct {
		desc    string
		doc     shelter.Document
		created bool
		err     error
	}{
		{
			desc:    "create new document",
			doc:     shelter.Document{"name": "Rex", "animal_type": "Dog", "breed": "Labrador Retriever Mix"},
			created: true,
			err:     nil,
		},
		{
			desc:    "create duplicate content document",
			doc:     shelter.Document{"name": "Rex", "animal_type": "Dog", "breed": "Labrador Retriever Mix"},
			created: true,
			err:     nil,
		},
		{
			desc:    "create empty document",
			doc:     shelter.Document{},
			created: false,
			err:     repoerr.ErrMalformedEntity,
		},
		{
			desc:    "create nil document",
			doc:     nil,
			created: false,
			err:     repoerr.ErrMalformedEntity,
		},
	}

	for _, tc := range cases {
		created, err := repo.Create(context.Background(), tc.doc)
		assert.Equal(t, tc.created, created, fmt.Sprintf("%s: expected created %v got %v\n", tc.desc, tc.created, created))
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
	}
}

func TestRead(t *testing.T) {
	repo := newRepository(t, "read")
	defer repo.Close(context.Background())

	seed := []shelter.Document{
		{"name": "Alpha", "animal_type": "Dog", "outcome_type": "Adoption"},
		{"name": "Bravo", "animal_type": "Cat", "outcome_type": "Transfer"},
		{"name": "Charlie", "animal_type": "Dog", "outcome_type": "Adoption"},
	}
	for _, doc := range seed {
		created, err := repo.Create(context.Background(), doc)
		require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
		require.True(t, created, "expected document to be created")
	}

	byName := []shelter.SortField{{Field: "name", Order: shelter.Ascending}}

	cases := []struct {
		desc  string
		qry   shelter.Query
		opts  shelter.ReadOptions
		names []string
	}{
		{
			desc:  "read all documents",
			qry:   nil,
			opts:  shelter.ReadOptions{Sort: byName},
			names: []string{"Alpha", "Bravo", "Charlie"},
		},
		{
			desc:  "read by equality query",
			qry:   shelter.Query{"animal_type": "Dog"},
			opts:  shelter.ReadOptions{Sort: byName},
			names: []string{"Alpha", "Charlie"},
		},
		{
			desc:  "read with operator query",
			qry:   shelter.Query{"animal_type": shelter.Query{"$in": []string{"Cat"}}},
			opts:  shelter.ReadOptions{Sort: byName},
			names: []string{"Bravo"},
		},
		{
			desc:  "read with no match",
			qry:   shelter.Query{"animal_type": "Bird"},
			opts:  shelter.ReadOptions{},
			names: []string{},
		},
		{
			desc:  "read with limit",
			qry:   nil,
			opts:  shelter.ReadOptions{Limit: 2, Sort: byName},
			names: []string{"Alpha", "Bravo"},
		},
		{
			desc:  "read sorted descending",
			qry:   nil,
			opts:  shelter.ReadOptions{Sort: []shelter.SortField{{Field: "name", Order: shelter.Descending}}},
			names: []string{"Charlie", "Bravo", "Alpha"},
		},
	}

	for _, tc := range cases {
		docs, err := repo.Read(context.Background(), tc.qry, tc.opts)
		require.Nil(t, err, fmt.Sprintf("%s: unexpected error %s\n", tc.desc, err))
		require.NotNil(t, docs, fmt.Sprintf("%s: expected non-nil result", tc.desc))

		names := []string{}
		for _, doc := range docs {
			_, ok := doc[shelter.IDKey]
			assert.False(t, ok, fmt.Sprintf("%s: expected identity field to be stripped", tc.desc))
			name, _ := doc["name"].(string)
			names = append(names, name)
		}
		assert.Equal(t, tc.names, names, fmt.Sprintf("%s: expected %v got %v\n", tc.desc, tc.names, names))
	}
}

func TestReadProjection(t *testing.T) {
	repo := newRepository(t, "projection")
	defer repo.Close(context.Background())

	created, err := repo.Create(context.Background(), shelter.Document{"name": "Luna", "animal_type": "Cat", "color": "Black"})
	require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
	require.True(t, created, "expected document to be created")

	docs, err := repo.Read(context.Background(), shelter.Query{"name": "Luna"}, shelter.ReadOptions{
		Projection: shelter.Projection{"name": 1},
	})
	require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
	require.Len(t, docs, 1, fmt.Sprintf("expected a single document got %d", len(docs)))

	assert.Equal(t, shelter.Document{"name": "Luna"}, docs[0], fmt.Sprintf("expected projected document got %v", docs[0]))
}

func TestReadKeepID(t *testing.T) {
	cfg := testConfig()
	cfg.Collection = "keepid"
	cfg.KeepID = true

	repo, err := mongodb.New(context.Background(), cfg)
	require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
	defer repo.Close(context.Background())

	created, err := repo.Create(context.Background(), shelter.Document{"name": "Milo"})
	require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
	require.True(t, created, "expected document to be created")

	docs, err := repo.Read(context.Background(), shelter.Query{"name": "Milo"}, shelter.ReadOptions{})
	require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
	require.Len(t, docs, 1, fmt.Sprintf("expected a single document got %d", len(docs)))

	_, ok := docs[0][shelter.IDKey]
	assert.True(t, ok, "expected identity field to be kept")
}

func TestRoundTrip(t *testing.T) {
	repo := newRepository(t, "roundtrip")
	defer repo.Close(context.Background())

	doc := shelter.Document{
		"animal_id":    "A721033",
		"name":         "Stella",
		"animal_type":  "Dog",
		"breed":        "Australian Cattle Dog Mix",
		"outcome_type": "Adoption",
	}
	created, err := repo.Create(context.Background(), doc)
	require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
	require.True(t, created, "expected document to be created")

	docs, err := repo.Read(context.Background(), shelter.Query{"animal_id": "A721033"}, shelter.ReadOptions{})
	require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
	require.Len(t, docs, 1, fmt.Sprintf("expected a single document got %d", len(docs)))

	assert.Equal(t, doc, docs[0], fmt.Sprintf("expected %v got %v\n", doc, docs[0]))
}

func TestUpdate(t *testing.T) {
	repo := newRepository(t, "update")
	defer repo.Close(context.Background())

	seed := []shelter.Document{
		{"name": "Daisy", "outcome_type": "Return to Owner"},
		{"name": "Ella", "outcome_type": "Transfer"},
		{"name": "Finn", "outcome_type": "Transfer"},
	}
	for _, doc := range seed {
		created, err := repo.Create(context.Background(), doc)
		require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
		require.True(t, created, "expected document to be created")
	}

	cases := []struct {
		desc     string
		qry      shelter.Query
		upd      shelter.UpdateSpec
		many     bool
		upsert   bool
		modified int64
		err      error
	}{
		{
			desc:     "update one document",
			qry:      shelter.Query{"name": "Daisy"},
			upd:      shelter.UpdateSpec{"$set": shelter.Document{"outcome_type": "Adoption"}},
			many:     false,
			modified: 1,
			err:      nil,
		},
		{
			desc:     "update many documents",
			qry:      shelter.Query{"outcome_type": "Transfer"},
			upd:      shelter.UpdateSpec{"$set": shelter.Document{"available": true}},
			many:     true,
			modified: 2,
			err:      nil,
		},
		{
			desc:     "update with no match",
			qry:      shelter.Query{"name": "Zeus"},
			upd:      shelter.UpdateSpec{"$set": shelter.Document{"outcome_type": "Adoption"}},
			many:     false,
			modified: 0,
			err:      nil,
		},
		{
			desc:     "update to the value already stored",
			qry:      shelter.Query{"name": "Daisy"},
			upd:      shelter.UpdateSpec{"$set": shelter.Document{"outcome_type": "Adoption"}},
			many:     false,
			modified: 0,
			err:      nil,
		},
		{
			desc:     "upsert a missing document",
			qry:      shelter.Query{"name": "Zeus"},
			upd:      shelter.UpdateSpec{"$set": shelter.Document{"outcome_type": "Adoption"}},
			many:     false,
			upsert:   true,
			modified: 0,
			err:      nil,
		},
		{
			desc:     "update with empty query",
			qry:      shelter.Query{},
			upd:      shelter.UpdateSpec{"$set": shelter.Document{"outcome_type": "Adoption"}},
			many:     true,
			modified: 0,
			err:      repoerr.ErrMalformedEntity,
		},
		{
			desc:     "update with empty update spec",
			qry:      shelter.Query{"name": "Daisy"},
			upd:      shelter.UpdateSpec{},
			many:     false,
			modified: 0,
			err:      repoerr.ErrMalformedEntity,
		},
	}

	for _, tc := range cases {
		modified, err := repo.Update(context.Background(), tc.qry, tc.upd, tc.many, tc.upsert)
		assert.Equal(t, tc.modified, modified, fmt.Sprintf("%s: expected modified %d got %d\n", tc.desc, tc.modified, modified))
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
	}

	docs, err := repo.Read(context.Background(), shelter.Query{"name": "Zeus"}, shelter.ReadOptions{})
	require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
	assert.Len(t, docs, 1, fmt.Sprintf("expected upserted document got %d", len(docs)))
}

func TestDelete(t *testing.T) {
	repo := newRepository(t, "delete")
	defer repo.Close(context.Background())

	seed := []shelter.Document{
		{"name": "Gus", "animal_type": "Dog"},
		{"name": "Hazel", "animal_type": "Dog"},
		{"name": "Iris", "animal_type": "Dog"},
	}
	for _, doc := range seed {
		created, err := repo.Create(context.Background(), doc)
		require.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
		require.True(t, created, "expected document to be created")
	}

	cases := []struct {
		desc    string
		qry     shelter.Query
		many    bool
		deleted int64
		err     error
	}{
		{
			desc:    "delete one of several matches",
			qry:     shelter.Query{"animal_type": "Dog"},
			many:    false,
			deleted: 1,
			err:     nil,
		},
		{
			desc:    "delete remaining matches",
			qry:     shelter.Query{"animal_type": "Dog"},
			many:    true,
			deleted: 2,
			err:     nil,
		},
		{
			desc:    "delete with no match",
			qry:     shelter.Query{"animal_type": "Dog"},
			many:    true,
			deleted: 0,
			err:     nil,
		},
		{
			desc:    "delete one with empty query",
			qry:     shelter.Query{},
			many:    false,
			deleted: 0,
			err:     repoerr.ErrMalformedEntity,
		},
		{
			desc:    "delete many with empty query",
			qry:     shelter.Query{},
			many:    true,
			deleted: 0,
			err:     repoerr.ErrMalformedEntity,
		},
	}

	for _, tc := range cases {
		deleted, err := repo.Delete(context.Background(), tc.qry, tc.many)
		assert.Equal(t, tc.deleted, deleted, fmt.Sprintf("%s: expected deleted %d got %d\n", tc.desc, tc.deleted, deleted))
		assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected %s got %s\n", tc.desc, tc.err, err))
	}
}

func TestPing(t *testing.T) {
	repo := newRepository(t, "ping")
	defer repo.Close(context.Background())

	err := repo.Ping(context.Background())
	assert.Nil(t, err, fmt.Sprintf("unexpected error %s", err))
}

func TestClose(t *testing.T) {
	repo := newRepository(t, "close")

	err := repo.Close(context.Background())
	assert.Nil(t, err, fmt.Sprintf("unexpected error %s", err))

	err = repo.Close(context.Background())
	assert.Nil(t, err, fmt.Sprintf("expected repeated close to be a no-op, got %s", err))

	_, err = repo.Create(context.Background(), shelter.Document{"name": "Rex"})
	assert.True(t, errors.Contains(err, repoerr.ErrNotInitialized), fmt.Sprintf("expected %s got %s\n", repoerr.ErrNotInitialized, err))

	_, err = repo.Read(context.Background(), nil, shelter.ReadOptions{})
	assert.True(t, errors.Contains(err, repoerr.ErrNotInitialized), fmt.Sprintf("expected %s got %s\n", repoerr.ErrNotInitialized, err))

	_, err = repo.Update(context.Background(), shelter.Query{"name": "Rex"}, shelter.UpdateSpec{"$set": shelter.Document{"name": "Max"}}, false, false)
	assert.True(t, errors.Contains(err, repoerr.ErrNotInitialized), fmt.Sprintf("expected %s got %s\n", repoerr.ErrNotInitialized, err))

	_, err = repo.Delete(context.Background(), shelter.Query{"name": "Rex"}, false)
	assert.True(t, errors.Contains(err, repoerr.ErrNotInitialized), fmt.Sprintf("expected %s got %s\n", repoerr.ErrNotInitialized, err))

	err = repo.Ping(context.Background())
	assert.True(t, errors.Contains(err, repoerr.ErrNotInitialized), fmt.Sprintf("expected %s got %s\n", repoerr.ErrNotInitialized, err))
}
