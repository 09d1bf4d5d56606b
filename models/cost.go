package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Cost struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Description string        `bson:"description" json:"description"`
	Category    string        `bson:"category" json:"category"`
	UserID      int           `bson:"userid" json:"userid"`
	Sum         float64       `bson:"sum" json:"sum"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// CostWithUser is a cost enriched with display info fetched from the
// users service. User stays nil when enrichment was unavailable.
type CostWithUser struct {
	Cost
	User *UserView `json:"user,omitempty"`
}
