package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrTransientStore is returned when an atomic update could not commit after
// all retries. The caller must not persist any dependent record.
var ErrTransientStore = errors.New("transient store failure")

var errWriteConflict = errors.New("concurrent write conflict")

const maxAtomicRetries = 3

// AtomicFn receives the current document (nil when absent) and returns the
// document to write back. Returning an error aborts without writing.
type AtomicFn func(current bson.M, exists bool) (bson.M, error)

// RunAtomic performs a read-modify-write on a single document with
// optimistic concurrency. The write only commits if the document is still
// byte-for-byte what was read; a lost race is retried with a short backoff,
// and ErrTransientStore is returned once the retries are exhausted.
func (s *Store) RunAtomic(ctx context.Context, collection, id string, fn AtomicFn) (bson.M, error) {
	coll := s.db.Collection(collection)
	var lastErr error

	for attempt := 0; attempt <= maxAtomicRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(50*attempt) * time.Millisecond)
		}

		var snapshot bson.M
		err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snapshot)
		exists := true
		if errors.Is(err, mongo.ErrNoDocuments) {
			exists = false
			snapshot = nil
		} else if err != nil {
			return nil, fmt.Errorf("read %s/%s: %w", collection, id, err)
		}

		next, err := fn(snapshot, exists)
		if err != nil {
			return nil, err
		}
		write := bson.M{"_id": id}
		for k, v := range next {
			if k != "_id" {
				write[k] = v
			}
		}

		if !exists {
			_, err := coll.InsertOne(ctx, write)
			if err == nil {
				return write, nil
			}
			if IsDuplicateKeyError(err) {
				// Another caller created it between our read and write.
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("insert %s/%s: %w", collection, id, err)
		}

		// Matching on the full snapshot detects any concurrent change to
		// the fields we read.
		res, err := coll.ReplaceOne(ctx, snapshot, write)
		if err != nil {
			return nil, fmt.Errorf("replace %s/%s: %w", collection, id, err)
		}
		if res.MatchedCount == 1 {
			return write, nil
		}
		lastErr = errWriteConflict
	}

	return nil, fmt.Errorf("%w: %s/%s: %v", ErrTransientStore, collection, id, lastErr)
}

// IsDuplicateKeyError reports whether err is a MongoDB duplicate key error
// (code 11000).
func IsDuplicateKeyError(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}
