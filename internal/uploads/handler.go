package uploads

import (
	"errors"
	"log/slog"
	"net/http"

	"fundfusion/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for photo uploads
type Handler struct {
	service *Service
}

// NewHandler creates a new uploads handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PhotoUploadURL handles POST /uploads/photo-url
func (h *Handler) PhotoUploadURL(c *gin.Context) {
	var req PhotoURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	resp, err := h.service.PhotoUploadURL(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidUpload) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to generate upload URL"})
		return
	}

	email, _ := middleware.GetEmail(c)
	slog.Info("Issued photo upload URL", "email", email, "file_key", resp.FileKey)

	c.JSON(http.StatusOK, resp)
}
