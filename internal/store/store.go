package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNotFound is returned when a document lookup matches nothing. Callers
// treat it as a recoverable condition (re-prompt the user), not a failure.
var ErrNotFound = errors.New("document not found")

// DecodeError reports a document that does not match its expected shape.
// Malformed documents are rejected at the store boundary instead of being
// trusted at use time.
type DecodeError struct {
	Collection string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed document in %q: %v", e.Collection, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Store wraps the MongoDB database with the collection-level operations the
// rest of the app uses. Every read is a full snapshot at call time; nothing
// here assumes ordering or real-time push.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var DB *Store

// Connect reads MONGO_URI / MONGO_DB from the environment and establishes
// the global store handle, waiting for the database to come up.
func Connect() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("❌ Error: MONGO_URI not found in .env file. Please configure your database.")
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "shopmanager"
	}

	var client *mongo.Client
	var err error

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
		}
		cancel()
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal("Failed to connect to database after 5 attempts:", err)
	}

	DB = &Store{client: client, db: client.Database(dbName)}
	log.Println("✅ Successfully connected to MongoDB!")
}

// Disconnect closes the client connection.
func (s *Store) Disconnect() error {
	if s == nil || s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// GetAll reads every document of a collection into out (a pointer to a slice).
func (s *Store) GetAll(ctx context.Context, collection string, out any) error {
	return s.Query(ctx, collection, bson.M{}, out)
}

// Query reads all documents matching the field predicates into out.
func (s *Store) Query(ctx context.Context, collection string, filter bson.M, out any) error {
	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("query %s: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return &DecodeError{Collection: collection, Err: err}
	}
	return nil
}

// QuerySorted is Query with a sort order and an optional limit (0 = no limit).
func (s *Store) QuerySorted(ctx context.Context, collection string, filter bson.M, sort bson.D, limit int64, out any) error {
	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("query %s: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return &DecodeError{Collection: collection, Err: err}
	}
	return nil
}

// GetByID reads one document by its key into out. Returns ErrNotFound when
// the document does not exist.
func (s *Store) GetByID(ctx context.Context, collection, id string, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return &DecodeError{Collection: collection, Err: err}
	}
	return nil
}

// Put writes a document under the given key, creating or replacing it.
func (s *Store) Put(ctx context.Context, collection, id string, doc any) error {
	_, err := s.db.Collection(collection).ReplaceOne(
		ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes a document by its key. Deleting a missing document is not
// an error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}
