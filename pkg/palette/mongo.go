package palette

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each palette as one document keyed by name.
type MongoStore struct {
	base
	client *mongo.Client
	coll   *mongo.Collection
	key    string
}

type paletteDoc struct {
	ID      string  `bson:"_id"`
	Entries []Entry `bson:"entries"`
}

// NewMongoStore connects to uri and uses database.palettes.
func NewMongoStore(ctx context.Context, uri, database, key string, logger *log.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	err = retryWithBackoff(ctx, func() error {
		return retryable(client.Ping(ctx, nil))
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if database == "" {
		database = "tikzgrid"
	}
	return newMongoStore(client.Database(database).Collection("palettes"), key, logger), nil
}

func newMongoStore(coll *mongo.Collection, key string, logger *log.Logger) *MongoStore {
	if key == "" {
		key = DefaultKey
	}
	s := &MongoStore{
		client: coll.Database().Client(),
		coll:   coll,
		key:    key,
	}
	s.init("mongo", s, logger)
	return s
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *MongoStore) read(ctx context.Context) ([]Entry, error) {
	var doc paletteDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errNoPalette
	}
	if err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

func (s *MongoStore) write(ctx context.Context, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	doc := paletteDoc{ID: s.key, Entries: entries}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.key}, doc, options.Replace().SetUpsert(true))
	return err
}

var _ Store = (*MongoStore)(nil)
