package session

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles token issue and logout HTTP requests
type Handler struct {
	manager Manager
}

// NewHandler creates a new session handler
func NewHandler(manager Manager) *Handler {
	return &Handler{manager: manager}
}

// Issue handles POST /jwt
func (h *Handler) Issue(c *gin.Context) {
	var req IssueRequest

	// An empty body signs an empty claim, like any other unvalidated shape.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if _, err := h.manager.Issue(c.Writer, Claims{Email: req.Email, Name: req.Name}); err != nil {
		slog.Error("Failed to issue token",
			"email", req.Email,
			"error", err,
			"request_id", c.GetString("request_id"),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to issue token"})
		return
	}

	slog.Info("Token issued", "email", req.Email, "request_id", c.GetString("request_id"))
	c.JSON(http.StatusOK, Response{Success: true})
}

// Logout handles POST /logout
func (h *Handler) Logout(c *gin.Context) {
	h.manager.Revoke(c.Writer)
	c.JSON(http.StatusOK, Response{Success: true})
}
