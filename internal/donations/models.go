package donations

import (
	"time"

	"fundfusion/internal/database"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation records a contribution by the donor identified by Email. CampaignID
// is not checked against the campaign collection.
type Donation struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CampaignID string             `json:"campaignId" bson:"campaignId"`
	Email      string             `json:"email" bson:"email"`
	Name       string             `json:"name" bson:"name"`
	Title      string             `json:"title" bson:"title"`
	Photo      string             `json:"photo" bson:"photo"`
	Amount     database.Amount    `json:"amount" bson:"amount"`
	DonatedAt  time.Time          `json:"donatedAt" bson:"donatedAt"`
}

// CreateDonationRequest is the request body for POST /campaign/:id
type CreateDonationRequest struct {
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	Photo     string          `json:"photo"`
	Amount    database.Amount `json:"amount"`
	DonatedAt *time.Time      `json:"donatedAt,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
