package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shahafle/costs-manager/models"
)

const ReportCollection = "reports"

// ReportStore caches materialized monthly reports. Uniqueness per
// (userid, year, month) is enforced by the store's compound index and
// the upsert below, never by a read-then-write in application code.
type ReportStore struct {
	collection *mongo.Collection
}

func NewReportStore(client *mongo.Client, database string) *ReportStore {
	return &ReportStore{collection: client.Database(database).Collection(ReportCollection)}
}

func (s *ReportStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userid", Value: 1},
			{Key: "year", Value: 1},
			{Key: "month", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Lookup returns nil without error on a cache miss.
func (s *ReportStore) Lookup(ctx context.Context, userID, year, month int) (*models.Report, error) {
	filter := bson.M{"userid": userID, "year": year, "month": month}

	var report models.Report
	err := s.collection.FindOne(ctx, filter).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching report: %v", err)
	}
	return &report, nil
}

// Upsert writes report under its key, replacing any previous value.
// Last writer wins on concurrent upserts for the same key.
func (s *ReportStore) Upsert(ctx context.Context, report *models.Report) error {
	filter := bson.M{"userid": report.UserID, "year": report.Year, "month": report.Month}
	opts := options.Replace().SetUpsert(true)

	_, err := s.collection.ReplaceOne(ctx, filter, report, opts)
	if err != nil {
		return fmt.Errorf("error caching report: %v", err)
	}
	return nil
}
