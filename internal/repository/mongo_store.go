package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"NodeDashboard/config"
	"NodeDashboard/internal/normalize"
	mongostore "NodeDashboard/storage/mongo"
)

// MongoStore 基于 MongoDB 集合的 DocumentStore
type MongoStore struct {
	collections map[Source]*mongo.Collection
	timeout     time.Duration
}

func NewMongoStore(collections map[Source]*mongo.Collection, timeout time.Duration) *MongoStore {
	return &MongoStore{collections: collections, timeout: timeout}
}

// NewMongoStoreFromConfig 按配置中的库名与集合名组装，需先调用 storage/mongo.Init
func NewMongoStoreFromConfig() *MongoStore {
	cfg := config.Cfg

	return NewMongoStore(map[Source]*mongo.Collection{
		SourceSubmissions: mongostore.TaskDatabase(cfg.MongoTaskDatabase).Collection(cfg.MongoSubmissionColl),
		SourceReferrals:   mongostore.TaskDatabase(cfg.MongoAffiliateDatabase).Collection(cfg.MongoReferralColl),
		SourceAirdrops:    mongostore.TaskDatabase(cfg.MongoAffiliateDatabase).Collection(cfg.MongoAirdropColl),
		SourceFaucets:     mongostore.FaucetDatabase(cfg.MongoFaucetDatabase).Collection(cfg.MongoFaucetColl),
	}, cfg.MongoQueryTimeout())
}

func (s *MongoStore) Find(ctx context.Context, source Source, fields ...string) ([]normalize.Document, error) {
	coll, ok := s.collections[source]
	if !ok {
		return nil, fmt.Errorf("unknown source %q", source)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	opts := options.Find()
	if len(fields) > 0 {
		projection := bson.D{{Key: "_id", Value: 0}}
		for _, field := range fields {
			projection = append(projection, bson.E{Key: field, Value: 1})
		}
		opts.SetProjection(projection)
	}

	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", source, err)
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}

	docs := make([]normalize.Document, 0, len(raw))
	for _, doc := range raw {
		docs = append(docs, normalize.Document(doc))
	}
	return docs, nil
}
