package donations

import (
	"net/http"
	"time"

	"fundfusion/internal/database"
	"fundfusion/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for donations
type Handler struct {
	repo Repository
	now  func() time.Time
}

// NewHandler creates a new donations handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo, now: time.Now}
}

// CreateDonation handles POST /campaign/:id. The path id is always the
// recorded campaignId.
func (h *Handler) CreateDonation(c *gin.Context) {
	campaignID := c.Param("id")
	if _, err := database.ParseID(campaignID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid campaign id"})
		return
	}

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if middleware.Guarded(c) && !middleware.RequireOwner(c, req.Email) {
		return
	}

	donation := &Donation{
		CampaignID: campaignID,
		Email:      req.Email,
		Name:       req.Name,
		Title:      req.Title,
		Photo:      req.Photo,
		Amount:     req.Amount,
		DonatedAt:  h.now().UTC(),
	}
	if req.DonatedAt != nil {
		donation.DonatedAt = req.DonatedAt.UTC()
	}

	result, err := h.repo.Create(c.Request.Context(), donation)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to record donation"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetMyDonations handles GET /myDonations?email=
func (h *Handler) GetMyDonations(c *gin.Context) {
	email := c.Query("email")
	if middleware.Guarded(c) && !middleware.RequireOwner(c, email) {
		return
	}

	donations, err := h.repo.ListByDonor(c.Request.Context(), email)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to retrieve donations"})
		return
	}
	c.JSON(http.StatusOK, donations)
}
