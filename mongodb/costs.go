package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shahafle/costs-manager/models"
	"github.com/shahafle/costs-manager/report"
)

const CostCollection = "costs"

// CostFilter narrows a cost listing. A nil UserID or empty Category
// leaves that dimension unfiltered.
type CostFilter struct {
	UserID   *int
	Category string
}

type CostStore struct {
	collection *mongo.Collection
}

func NewCostStore(client *mongo.Client, database string) *CostStore {
	return &CostStore{collection: client.Database(database).Collection(CostCollection)}
}

func (s *CostStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userid", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (s *CostStore) Insert(ctx context.Context, cost *models.Cost) error {
	result, err := s.collection.InsertOne(ctx, cost)
	if err != nil {
		return fmt.Errorf("error creating cost: %v", err)
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		cost.ID = oid
	}
	return nil
}

// Find lists costs matching filter, newest first.
func (s *CostStore) Find(ctx context.Context, filter CostFilter) ([]models.Cost, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["userid"] = *filter.UserID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.find(ctx, query, opts)
}

// FindByMonth lists a user's costs inside the inclusive calendar-month
// window, oldest first, the order report aggregation relies on.
func (s *CostStore) FindByMonth(ctx context.Context, userID, year, month int) ([]models.Cost, error) {
	start, end := report.MonthWindow(year, month)
	query := bson.M{
		"userid": userID,
		"createdAt": bson.M{
			"$gte": start,
			"$lte": end,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return s.find(ctx, query, opts)
}

// TotalByUser sums a user's costs at the store. A user with no costs
// totals zero.
func (s *CostStore) TotalByUser(ctx context.Context, userID int) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userid", Value: userID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$sum"}}},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating costs: %v", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("error decoding total: %v", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, fmt.Errorf("cursor error: %v", err)
	}
	return result.Total, nil
}

func (s *CostStore) find(ctx context.Context, query bson.M, opts *options.FindOptionsBuilder) ([]models.Cost, error) {
	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching costs: %v", err)
	}
	defer cursor.Close(ctx)

	costs := []models.Cost{}
	for cursor.Next(ctx) {
		var cost models.Cost
		if err := cursor.Decode(&cost); err != nil {
			return nil, fmt.Errorf("error decoding cost: %v", err)
		}
		costs = append(costs, cost)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return costs, nil
}
