package donations

import (
	"context"
	"fmt"
	"log/slog"

	"fundfusion/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository is the donation collection
type Repository interface {
	Create(ctx context.Context, donation *Donation) (database.InsertResult, error)
	ListByDonor(ctx context.Context, email string) ([]Donation, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewRepository creates a donation repository backed by coll
func NewRepository(coll *mongo.Collection) Repository {
	return &mongoRepository{coll: coll}
}

func (r *mongoRepository) Create(ctx context.Context, donation *Donation) (database.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, donation)
	if err != nil {
		slog.Error("Error recording donation",
			"campaign_id", donation.CampaignID,
			"email", donation.Email,
			"error", err,
		)
		return database.InsertResult{}, fmt.Errorf("failed to record donation: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		donation.ID = id
	}
	return database.NewInsertResult(res), nil
}

// ListByDonor returns the donor's donations, newest first
func (r *mongoRepository) ListByDonor(ctx context.Context, email string) ([]Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "donatedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "email", Value: email}}, opts)
	if err != nil {
		slog.Error("Error querying donations", "email", email, "error", err)
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}

	donations := []Donation{}
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, fmt.Errorf("failed to decode donations: %w", err)
	}
	return donations, nil
}
