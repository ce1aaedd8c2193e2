package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
)

// Defaults for MongoConfig.
const (
	DefaultMongoDatabase   = "rover"
	DefaultMongoCollection = "runs"
	DefaultMongoTimeout    = 5 * time.Second
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string        `toml:"uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	Timeout    time.Duration `toml:"timeout"`
}

func (c *MongoConfig) setDefaults() {
	if c.Database == "" {
		c.Database = DefaultMongoDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultMongoCollection
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultMongoTimeout
	}
}

// MongoStore keeps runs in a MongoDB collection, one document per run keyed
// by run ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to cfg.URI, checks the server answers, and ensures
// the (document, created_at) index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, rerrors.New(rerrors.ErrCodeInvalidInput, "mongo uri is required")
	}
	cfg.setDefaults()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout).
		SetConnectTimeout(cfg.Timeout))
	if err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInvalidInput, err, "mongo client")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, rerrors.Wrap(rerrors.ErrCodeNetwork, err, "connect to mongo")
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "document", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, rerrors.Wrap(rerrors.ErrCodeNetwork, err, "create run index")
	}
	return s, nil
}

func (s *MongoStore) SaveRun(ctx context.Context, run *Run) error {
	if run == nil || run.ID == "" {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "run has no ID")
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": run.ID}, run, options.Replace().SetUpsert(true))
	if err != nil {
		return rerrors.Wrap(rerrors.ErrCodeNetwork, err, "save run %s", run.ID)
	}
	return nil
}

func (s *MongoStore) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, rerrors.New(rerrors.ErrCodeNotFound, "run %q not found", id)
	}
	if err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeNetwork, err, "get run %s", id)
	}
	return &run, nil
}

func (s *MongoStore) ListRuns(ctx context.Context, opts ListOptions) ([]*Run, error) {
	filter := bson.M{}
	if opts.Document != "" {
		filter["document"] = opts.Document
	}
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(opts.limit()))

	cur, err := s.coll.Find(ctx, filter, find)
	if err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeNetwork, err, "list runs")
	}
	var runs []*Run
	if err := cur.All(ctx, &runs); err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeNetwork, err, "decode runs")
	}
	return runs, nil
}

func (s *MongoStore) DeleteRun(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return rerrors.Wrap(rerrors.ErrCodeNetwork, err, "delete run %s", id)
	}
	if res.DeletedCount == 0 {
		return rerrors.New(rerrors.ErrCodeNotFound, "run %q not found", id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultMongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
