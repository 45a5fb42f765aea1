// Package database owns the MongoDB client shared by the campaign and
// donation repositories.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fundfusion/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Service represents a connection to the document store.
type Service interface {
	// Campaigns returns the campaign collection
	Campaigns() *mongo.Collection
	// Donations returns the donation collection
	Donations() *mongo.Collection
	// Health pings the server and reports status information
	Health(ctx context.Context) map[string]string
	// Close disconnects the client
	Close(ctx context.Context) error
}

type service struct {
	client    *mongo.Client
	db        *mongo.Database
	campaigns string
	donations string
}

// New connects to MongoDB using the Stable API v1 and verifies the
// connection with a ping.
func New(ctx context.Context, cfg config.MongoConfig) (Service, error) {
	uri, err := cfg.ConnectionURI()
	if err != nil {
		return nil, err
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	slog.Info("Connected to MongoDB", "database", cfg.Database)

	return &service{
		client:    client,
		db:        client.Database(cfg.Database),
		campaigns: cfg.CampaignCollection,
		donations: cfg.DonationCollection,
	}, nil
}

func (s *service) Campaigns() *mongo.Collection {
	return s.db.Collection(s.campaigns)
}

func (s *service) Donations() *mongo.Collection {
	return s.db.Collection(s.donations)
}

// Health checks the database connection. It returns a map with keys
// indicating status and a message.
func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	stats := make(map[string]string)

	start := time.Now()
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["database"] = s.db.Name()
	stats["ping_ms"] = fmt.Sprintf("%d", time.Since(start).Milliseconds())
	return stats
}

// Close disconnects from the database
func (s *service) Close(ctx context.Context) error {
	slog.Info("Disconnecting from MongoDB", "database", s.db.Name())
	return s.client.Disconnect(ctx)
}
