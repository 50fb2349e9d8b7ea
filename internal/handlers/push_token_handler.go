package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type pushTokenStore interface {
	UpsertPushToken(ctx context.Context, t *models.PushToken) error
	DeletePushToken(ctx context.Context, userID uint, token string) error
}

// PushTokenHandler registers the devices that receive appointment pushes for
// the logged-in user.
type PushTokenHandler struct {
	store pushTokenStore
}

func NewPushTokenHandler(store pushTokenStore) *PushTokenHandler {
	return &PushTokenHandler{store: store}
}

type PushTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform"`
}

func (h *PushTokenHandler) Register(c *gin.Context) {
	var req PushTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	t := &models.PushToken{
		BusinessID: middleware.BusinessID(c),
		UserID:     middleware.UserID(c),
		Token:      strings.TrimSpace(req.Token),
		Platform:   strings.ToLower(strings.TrimSpace(req.Platform)),
	}
	if err := h.store.UpsertPushToken(c.Request.Context(), t); err != nil {
		httperr.Internal(c, "failed_to_register_token", "Failed to register device.")
		return
	}

	c.Status(204)
}

func (h *PushTokenHandler) Delete(c *gin.Context) {
	var req PushTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.store.DeletePushToken(c.Request.Context(), middleware.UserID(c), strings.TrimSpace(req.Token)); err != nil {
		httperr.Internal(c, "failed_to_delete_token", "Failed to remove device.")
		return
	}

	c.Status(204)
}
