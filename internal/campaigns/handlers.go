package campaigns

import (
	"errors"
	"net/http"

	"fundfusion/internal/database"
	"fundfusion/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles HTTP requests for campaigns. Ownership is only checked on
// requests that passed the access guard.
type Handler struct {
	repo Repository
}

// NewHandler creates a new campaigns handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateCampaign handles POST /addCampaign
func (h *Handler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
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

	result, err := h.repo.Create(c.Request.Context(), req.campaign())
	if err != nil {
		internalError(c, err, "Failed to create campaign")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAllCampaigns handles GET /campaigns
func (h *Handler) GetAllCampaigns(c *gin.Context) {
	h.list(c, false)
}

// GetCampaignsSorted handles GET /campaigns/sort
func (h *Handler) GetCampaignsSorted(c *gin.Context) {
	h.list(c, true)
}

func (h *Handler) list(c *gin.Context, sortByAmount bool) {
	campaigns, err := h.repo.List(c.Request.Context(), sortByAmount)
	if err != nil {
		internalError(c, err, "Failed to retrieve campaigns")
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// GetCampaign handles GET /campaign/:id
func (h *Handler) GetCampaign(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	campaign, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Message: "campaign not found"})
			return
		}
		internalError(c, err, "Failed to retrieve campaign")
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// GetMyCampaigns handles GET /myCampaign?email=. The route always runs behind
// the access guard; the queried owner must be the caller.
func (h *Handler) GetMyCampaigns(c *gin.Context) {
	email := c.Query("email")
	if !middleware.RequireOwner(c, email) {
		return
	}

	campaigns, err := h.repo.ListByOwner(c.Request.Context(), email)
	if err != nil {
		internalError(c, err, "Failed to retrieve campaigns")
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// DeleteCampaign handles DELETE /myCampaign/:id
func (h *Handler) DeleteCampaign(c *gin.Context) {
	id, ok := parseID(c, c.Param("id"))
	if !ok {
		return
	}

	if middleware.Guarded(c) {
		existing, err := h.repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, ErrCampaignNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Message: "campaign not found"})
				return
			}
			internalError(c, err, "Failed to delete campaign")
			return
		}
		if !middleware.RequireOwner(c, existing.Email) {
			return
		}
	}

	result, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		internalError(c, err, "Failed to delete campaign")
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateCampaign handles PUT /updateCampaign
func (h *Handler) UpdateCampaign(c *gin.Context) {
	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	id := primitive.NewObjectID()
	if req.ID != "" {
		parsed, ok := parseID(c, req.ID)
		if !ok {
			return
		}
		id = parsed
	}

	var owner string
	if middleware.Guarded(c) {
		owner, _ = middleware.GetEmail(c)

		existing, err := h.repo.GetByID(c.Request.Context(), id)
		switch {
		case errors.Is(err, ErrCampaignNotFound):
			// upsert creates the campaign for the caller
		case err != nil:
			internalError(c, err, "Failed to update campaign")
			return
		case !middleware.RequireOwner(c, existing.Email):
			return
		}
	}

	result, err := h.repo.Upsert(c.Request.Context(), id, req.Fields, owner)
	if err != nil {
		internalError(c, err, "Failed to update campaign")
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseID(c *gin.Context, hex string) (primitive.ObjectID, bool) {
	id, err := database.ParseID(hex)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid campaign id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func internalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Message: message})
}
