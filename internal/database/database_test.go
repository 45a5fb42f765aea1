package database

import (
	"context"
	"testing"
	"time"

	"fundfusion/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func startMongo(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	return uri
}

func TestNew_HealthAndClose(t *testing.T) {
	uri := startMongo(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, err := New(ctx, config.MongoConfig{
		URI:                uri,
		Database:           "FoundFusions",
		CampaignCollection: "campaign",
		DonationCollection: "donated collection",
	})
	require.NoError(t, err)

	stats := svc.Health(ctx)
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "FoundFusions", stats["database"])

	assert.Equal(t, "campaign", svc.Campaigns().Name())
	assert.Equal(t, "donated collection", svc.Donations().Name())

	require.NoError(t, svc.Close(ctx))

	stats = svc.Health(ctx)
	assert.Equal(t, "down", stats["status"])
}

func TestNew_MissingSettings(t *testing.T) {
	_, err := New(context.Background(), config.MongoConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}
