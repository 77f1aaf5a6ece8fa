// Copyright (c) Salvare
// SPDX-License-Identifier: Apache-2.0

package mongodb

import (
	"context"
	"fmt"
	"sync"

	"github.com/salvare/shelter"
	"github.com/salvare/shelter/pkg/errors"
	repoerr "github.com/salvare/shelter/pkg/errors/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	// ErrEmptyDocument indicates an attempt to store a document with no
	// fields.
	ErrEmptyDocument = errors.New("empty document")

	// ErrEmptyQuery indicates a selective operation invoked with a query
	// that would match the whole collection.
	ErrEmptyQuery = errors.New("empty query")

	// ErrEmptyUpdate indicates an update with no mutation instructions.
	ErrEmptyUpdate = errors.New("empty update specification")
)

var _ shelter.Repository = (*animalRepository)(nil)

// animalRepository mediates access to a single MongoDB collection. The
// underlying driver is safe for concurrent use, so one repository may be
// shared between goroutines.
type animalRepository struct {
	coll   *mongo.Collection
	keepID bool

	mu     sync.Mutex
	closed bool
}

func (repo *animalRepository) Create(ctx context.Context, doc shelter.Document) (bool, error) {
	if err := repo.active(); err != nil {
		return false, err
	}
	if len(doc) == 0 {
		return false, errors.Wrap(repoerr.ErrMalformedEntity, ErrEmptyDocument)
	}

	res, err := repo.coll.InsertOne(ctx, doc)
	if err != nil {
		return false, errors.Wrap(repoerr.ErrCreateEntity, err)
	}

	return res.InsertedID != nil, nil
}

func (repo *animalRepository) Read(ctx context.Context, qry shelter.Query, opts shelter.ReadOptions) ([]shelter.Document, error) {
	if err := repo.active(); err != nil {
		return nil, err
	}
	if qry == nil {
		qry = shelter.Query{}
	}

	findOpts := options.Find()
	if len(opts.Projection) > 0 {
		findOpts.SetProjection(opts.Projection)
	}
	if len(opts.Sort) > 0 {
		sort := bson.D{}
		for _, sf := range opts.Sort {
			sort = append(sort, bson.E{Key: sf.Field, Value: int(sf.Order)})
		}
		findOpts.SetSort(sort)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cur, err := repo.coll.Find(ctx, qry, findOpts)
	if err != nil {
		return nil, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	return repo.decodeDocuments(ctx, cur)
}

func (repo *animalRepository) Update(ctx context.Context, qry shelter.Query, upd shelter.UpdateSpec, many, upsert bool) (int64, error) {
	if err := repo.active(); err != nil {
		return 0, err
	}
	if len(qry) == 0 {
		return 0, errors.Wrap(repoerr.ErrMalformedEntity, ErrEmptyQuery)
	}
	if len(upd) == 0 {
		return 0, errors.Wrap(repoerr.ErrMalformedEntity, ErrEmptyUpdate)
	}

	uopts := options.Update().SetUpsert(upsert)

	var (
		res *mongo.UpdateResult
		err error
	)
	if many {
		res, err = repo.coll.UpdateMany(ctx, qry, upd, uopts)
	} else {
		res, err = repo.coll.UpdateOne(ctx, qry, upd, uopts)
	}
	if err != nil {
		return 0, errors.Wrap(repoerr.ErrUpdateEntity, err)
	}

	return res.ModifiedCount, nil
}

func (repo *animalRepository) Delete(ctx context.Context, qry shelter.Query, many bool) (int64, error) {
	if err := repo.active(); err != nil {
		return 0, err
	}
	if len(qry) == 0 {
		return 0, errors.Wrap(repoerr.ErrMalformedEntity, ErrEmptyQuery)
	}

	var (
		res *mongo.DeleteResult
		err error
	)
	if many {
		res, err = repo.coll.DeleteMany(ctx, qry)
	} else {
		res, err = repo.coll.DeleteOne(ctx, qry)
	}
	if err != nil {
		return 0, errors.Wrap(repoerr.ErrRemoveEntity, err)
	}

	return res.DeletedCount, nil
}

func (repo *animalRepository) Ping(ctx context.Context) error {
	if err := repo.active(); err != nil {
		return err
	}
	if err := repo.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrap(errConnect, err)
	}

	return nil
}

// Close releases the underlying client connection. Subsequent calls are
// no-ops, and any further operation fails with ErrNotInitialized.
func (repo *animalRepository) Close(ctx context.Context) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.closed {
		return nil
	}
	repo.closed = true

	if err := repo.coll.Database().Client().Disconnect(ctx); err != nil {
		return errors.Wrap(errDisconnect, err)
	}

	return nil
}

func (repo *animalRepository) String() string {
	return fmt.Sprintf("<ShelterRepository db=%q col=%q>", repo.coll.Database().Name(), repo.coll.Name())
}

func (repo *animalRepository) active() error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.closed {
		return repoerr.ErrNotInitialized
	}

	return nil
}

func (repo *animalRepository) decodeDocuments(ctx context.Context, cur *mongo.Cursor) ([]shelter.Document, error) {
	defer cur.Close(ctx)

	results := []shelter.Document{}
	for cur.Next(ctx) {
		doc := shelter.Document{}
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(repoerr.ErrViewEntity, err)
		}
		if !repo.keepID {
			delete(doc, shelter.IDKey)
		}
		results = append(results, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(repoerr.ErrViewEntity, err)
	}

	return results, nil
}
