// Package report persists validate.Violation documents to MongoDB so a
// large validation run leaves a rerun-able audit trail instead of only
// console output. This is a record of validator findings, not game
// state — the engine itself persists nothing (spec.md §1 non-goal).
package report

import (
	"context"
	"fmt"
	"time"

	"riichiengine/validate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store writes validation results to a Mongo collection, adapted from
// the teacher's common/database/mongo.go connection setup and
// runtime/game/engines/mahjong/persist.go's collect-then-bulk-insert
// shape — violations accumulate in memory during a run and are written
// once at the end, not streamed document-by-document.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// document is the persisted shape of one violation, plus a RunAt
// stamp supplied by the caller (this package never calls time.Now
// itself so callers can keep runs reproducible in tests).
type document struct {
	LogPath string    `bson:"log_path"`
	Line    int       `bson:"line"`
	Actor   int       `bson:"actor"`
	Type    string    `bson:"type"`
	Detail  string    `bson:"detail"`
	Dump    string    `bson:"dump"`
	RunAt   time.Time `bson:"run_at"`
}

// Connect dials url and binds to db/collection.
func Connect(ctx context.Context, url, db, collection string) (*Store, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("report: connect: %w", err)
	}
	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("report: ping: %w", err)
	}
	return &Store{client: client, coll: client.Database(db).Collection(collection)}, nil
}

// Save bulk-inserts every violation across a Report. A nil/empty
// report is a no-op.
func (s *Store) Save(ctx context.Context, rep *validate.Report, runAt time.Time) error {
	if rep == nil {
		return nil
	}
	var docs []interface{}
	for _, res := range rep.Results {
		for _, v := range res.Violations {
			docs = append(docs, document{
				LogPath: v.LogPath,
				Line:    v.Line,
				Actor:   v.Actor,
				Type:    string(v.Type),
				Detail:  v.Detail,
				Dump:    v.Dump,
				RunAt:   runAt,
			})
		}
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("report: insert %d violations: %w", len(docs), err)
	}
	return nil
}

// Recent returns the most recently stored violations for path, newest
// first, for a quick "has this log always failed this way" lookup.
func (s *Store) Recent(ctx context.Context, logPath string, limit int64) ([]bson.M, error) {
	opts := options.Find().SetSort(bson.D{{Key: "run_at", Value: -1}}).SetLimit(limit)
	cur, err := s.coll.Find(ctx, bson.M{"log_path": logPath}, opts)
	if err != nil {
		return nil, fmt.Errorf("report: find: %w", err)
	}
	defer cur.Close(ctx)

	var out []bson.M
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("report: decode: %w", err)
	}
	return out, nil
}

// Close disconnects the underlying Mongo client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
