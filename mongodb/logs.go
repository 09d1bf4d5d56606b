package mongodb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shahafle/costs-manager/models"
)

const LogCollection = "logs"

// LogFilter narrows a log query. Zero values leave a dimension
// unfiltered; Limit 0 falls back to the default of 100.
type LogFilter struct {
	Service string
	Level   string
	Start   *time.Time
	End     *time.Time
	Limit   int64
}

type LogStore struct {
	collection *mongo.Collection
}

func NewLogStore(client *mongo.Client, database string) *LogStore {
	return &LogStore{collection: client.Database(database).Collection(LogCollection)}
}

func (s *LogStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "time", Value: -1}}},
		{Keys: bson.D{{Key: "service", Value: 1}, {Key: "time", Value: -1}}},
		{Keys: bson.D{{Key: "level", Value: 1}, {Key: "time", Value: -1}}},
	})
	return err
}

func (s *LogStore) Insert(ctx context.Context, entry *models.LogEntry) error {
	_, err := s.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("error inserting log entry: %v", err)
	}
	return nil
}

// Ingest decodes a pipeline payload and persists it best-effort. Bad
// payloads and failed writes are dropped silently: the sink must never
// push an error back toward the request that produced the entry.
func (s *LogStore) Ingest(ctx context.Context, payload []byte) {
	var entry models.LogEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = s.Insert(ctx, &entry)
}

func (s *LogStore) Find(ctx context.Context, filter LogFilter) ([]models.LogEntry, error) {
	query := bson.M{}
	if filter.Service != "" {
		query["service"] = filter.Service
	}
	if filter.Level != "" {
		query["level"] = filter.Level
	}
	if filter.Start != nil || filter.End != nil {
		window := bson.M{}
		if filter.Start != nil {
			window["$gte"] = *filter.Start
		}
		if filter.End != nil {
			window["$lte"] = *filter.End
		}
		query["time"] = window
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "time", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching logs: %v", err)
	}
	defer cursor.Close(ctx)

	entries := []models.LogEntry{}
	for cursor.Next(ctx) {
		var entry models.LogEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("error decoding log entry: %v", err)
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return entries, nil
}
