package campaigns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fundfusion/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrCampaignNotFound is returned when no campaign has the requested ID
var ErrCampaignNotFound = errors.New("campaign not found")

// Repository is the campaign collection. Each method is one store operation.
type Repository interface {
	Create(ctx context.Context, campaign *Campaign) (database.InsertResult, error)
	List(ctx context.Context, sortByAmount bool) ([]Campaign, error)
	ListByOwner(ctx context.Context, email string) ([]Campaign, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Campaign, error)
	Delete(ctx context.Context, id primitive.ObjectID) (database.DeleteResult, error)
	// Upsert replaces Fields on the campaign, creating it when absent. A
	// non-empty ownerOnInsert becomes the owner of a newly created campaign.
	Upsert(ctx context.Context, id primitive.ObjectID, fields Fields, ownerOnInsert string) (database.UpdateResult, error)
}

type mongoRepository struct {
	coll *mongo.Collection
}

// NewRepository creates a campaign repository backed by coll
func NewRepository(coll *mongo.Collection) Repository {
	return &mongoRepository{coll: coll}
}

// Create inserts a new campaign; the store assigns its ID
func (r *mongoRepository) Create(ctx context.Context, campaign *Campaign) (database.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, campaign)
	if err != nil {
		slog.Error("Error creating campaign", "email", campaign.Email, "error", err)
		return database.InsertResult{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		campaign.ID = id
	}
	return database.NewInsertResult(res), nil
}

// List returns every campaign, ordered by target amount ascending when requested
func (r *mongoRepository) List(ctx context.Context, sortByAmount bool) ([]Campaign, error) {
	opts := options.Find()
	if sortByAmount {
		opts.SetSort(bson.D{{Key: "amount", Value: 1}})
	}
	return r.find(ctx, bson.D{}, opts)
}

// ListByOwner returns the campaigns whose owner email equals email
func (r *mongoRepository) ListByOwner(ctx context.Context, email string) ([]Campaign, error) {
	return r.find(ctx, bson.D{{Key: "email", Value: email}}, options.Find())
}

// GetByID retrieves a single campaign
func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Campaign, error) {
	var campaign Campaign
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&campaign)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		slog.Error("Error getting campaign by ID", "id", id.Hex(), "error", err)
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &campaign, nil
}

// Delete removes a campaign. Deleting a missing campaign is not an error.
func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (database.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		slog.Error("Error deleting campaign", "id", id.Hex(), "error", err)
		return database.DeleteResult{}, fmt.Errorf("failed to delete campaign: %w", err)
	}
	return database.NewDeleteResult(res), nil
}

func (r *mongoRepository) Upsert(ctx context.Context, id primitive.ObjectID, fields Fields, ownerOnInsert string) (database.UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: fields}}
	if ownerOnInsert != "" {
		update = append(update, bson.E{Key: "$setOnInsert", Value: bson.D{{Key: "email", Value: ownerOnInsert}}})
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update, options.Update().SetUpsert(true))
	if err != nil {
		slog.Error("Error updating campaign", "id", id.Hex(), "error", err)
		return database.UpdateResult{}, fmt.Errorf("failed to update campaign: %w", err)
	}
	return database.NewUpdateResult(res), nil
}

func (r *mongoRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]Campaign, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		slog.Error("Error querying campaigns", "error", err)
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}

	campaigns := []Campaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		slog.Error("Error decoding campaigns", "error", err)
		return nil, fmt.Errorf("failed to decode campaigns: %w", err)
	}
	return campaigns, nil
}
