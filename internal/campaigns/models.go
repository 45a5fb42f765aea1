package campaigns

import (
	"fundfusion/internal/database"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign is a fundraising campaign owned by the user identified by Email
type Campaign struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Type        string             `json:"type" bson:"type"`
	Date        string             `json:"date" bson:"date"`
	Description string             `json:"description" bson:"description"`
	Amount      database.Amount    `json:"amount" bson:"amount"`
	Photo       string             `json:"photo" bson:"photo"`
}

// Fields are the campaign attributes replaced by PUT /updateCampaign
type Fields struct {
	Title       string          `json:"title" bson:"title"`
	Type        string          `json:"type" bson:"type"`
	Date        string          `json:"date" bson:"date"`
	Description string          `json:"description" bson:"description"`
	Amount      database.Amount `json:"amount" bson:"amount"`
	Photo       string          `json:"photo" bson:"photo"`
}

// CreateCampaignRequest is the request body for POST /addCampaign
type CreateCampaignRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Fields
}

// UpdateCampaignRequest is the request body for PUT /updateCampaign.
// An empty ID upserts a new campaign.
type UpdateCampaignRequest struct {
	ID string `json:"_id"`
	Fields
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (r CreateCampaignRequest) campaign() *Campaign {
	return &Campaign{
		Email:       r.Email,
		Name:        r.Name,
		Title:       r.Title,
		Type:        r.Type,
		Date:        r.Date,
		Description: r.Description,
		Amount:      r.Amount,
		Photo:       r.Photo,
	}
}
