package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/framewright/framewright/pkg/errors"
	"github.com/framewright/framewright/pkg/frame"
)

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	URI        string
	Database   string // defaults to "framewright"
	Collection string // defaults to "assemblies"
}

// mongoDoc wraps the serialized assembly. The assembly JSON is stored
// as raw bytes so the frame codec stays the single source of truth for
// the on-disk shape; Mongo only indexes the ID and timestamp.
type mongoDoc struct {
	ID        string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore persists assemblies in MongoDB, one document each.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "framewright"
	}
	if cfg.Collection == "" {
		cfg.Collection = "assemblies"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		col:    client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, a *frame.Assembly) error {
	data, err := frame.Marshal(a)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "marshal assembly %s", a.ID)
	}
	doc := mongoDoc{ID: a.ID, Data: data, UpdatedAt: time.Now().UTC()}

	_, err = s.col.ReplaceOne(ctx,
		bson.M{"_id": a.ID},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "save assembly %s", a.ID)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, id string) (*frame.Assembly, error) {
	var doc mongoDoc
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "load assembly %s", id)
	}
	a, err := frame.Unmarshal(doc.Data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "parse assembly %s", id)
	}
	return a, nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.col.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "list assemblies")
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "decode assembly id")
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "iterate assemblies")
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "delete assembly %s", id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
