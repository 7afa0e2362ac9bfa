package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/omicalign/omicalign/pkg/errors"
	"github.com/omicalign/omicalign/pkg/resultio"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "alignments"

// storedRun is the MongoDB document shape: a result document plus the
// run id it is keyed by.
type storedRun struct {
	RunID    string            `bson:"run_id"`
	Document resultio.Document `bson:"document"`
}

// MongoStore persists result documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection.
// An empty collection name selects [DefaultCollection].
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "MongoDB unreachable")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Save persists a document under runID, replacing any previous document
// with the same id.
func (s *MongoStore) Save(ctx context.Context, runID string, doc resultio.Document) error {
	run := storedRun{RunID: runID, Document: doc}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"run_id": runID}, run, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "failed to save result")
	}
	return nil
}

// Load retrieves the document stored under runID.
func (s *MongoStore) Load(ctx context.Context, runID string) (resultio.Document, error) {
	var run storedRun
	err := s.coll.FindOne(ctx, bson.M{"run_id": runID}).Decode(&run)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return resultio.Document{}, errors.New(errors.ErrCodeResultNotFound, "no result stored for run %s", runID)
	}
	if err != nil {
		return resultio.Document{}, errors.Wrap(errors.ErrCodeStore, err, "failed to load result")
	}
	return run.Document, nil
}

// List returns summaries of all stored runs, newest first.
func (s *MongoStore) List(ctx context.Context) ([]RunInfo, error) {
	opts := options.Find().
		SetProjection(bson.M{"run_id": 1, "document.created": 1, "document.stats": 1}).
		SetSort(bson.M{"document.created": -1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "failed to list results")
	}
	defer cur.Close(ctx)

	var infos []RunInfo
	for cur.Next(ctx) {
		var run storedRun
		if err := cur.Decode(&run); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "failed to decode run summary")
		}
		infos = append(infos, RunInfo{
			RunID:   run.RunID,
			Created: run.Document.Created,
			Stats:   run.Document.Stats,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "failed to iterate run summaries")
	}
	return infos, nil
}

// Delete removes the document stored under runID.
func (s *MongoStore) Delete(ctx context.Context, runID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"run_id": runID})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "failed to delete result")
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeResultNotFound, "no result stored for run %s", runID)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
