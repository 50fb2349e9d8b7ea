package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/payment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	billinguc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/billing"
)

const maxWebhookBody = 1 << 20

type overviewGetter interface {
	Execute(ctx context.Context, businessID uint) (*billinguc.Overview, error)
}

type checkoutStarter interface {
	Execute(ctx context.Context, in billinguc.CheckoutInput) (*payment.CheckoutSession, error)
}

type portalOpener interface {
	Execute(ctx context.Context, businessID uint) (string, error)
}

type webhookHandler interface {
	Execute(ctx context.Context, provider string, body []byte, header http.Header) (*billinguc.WebhookResult, error)
}

// ======================================================
// OWNER BILLING
// ======================================================

type BillingHandler struct {
	overview overviewGetter
	checkout checkoutStarter
	portal   portalOpener
}

func NewBillingHandler(overview overviewGetter, checkout checkoutStarter, portal portalOpener) *BillingHandler {
	return &BillingHandler{overview: overview, checkout: checkout, portal: portal}
}

type CheckoutRequest struct {
	Plan  string `json:"plan" binding:"required"`
	Email string `json:"email"`
}

func (h *BillingHandler) Overview(c *gin.Context) {
	out, err := h.overview.Execute(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_billing")
		return
	}

	httpresp.OK(c, out)
}

func (h *BillingHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.checkout.Execute(c.Request.Context(), billinguc.CheckoutInput{
		BusinessID: middleware.BusinessID(c),
		Plan:       req.Plan,
		Email:      req.Email,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_start_checkout")
		return
	}

	httpresp.Created(c, session)
}

func (h *BillingHandler) Portal(c *gin.Context) {
	url, err := h.portal.Execute(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_open_portal")
		return
	}

	httpresp.OK(c, gin.H{"url": url})
}

// ======================================================
// PROVIDER WEBHOOKS
// ======================================================

type WebhookHandler struct {
	handle webhookHandler
}

func NewWebhookHandler(handle webhookHandler) *WebhookHandler {
	return &WebhookHandler{handle: handle}
}

// Receive acknowledges every verified notification with 200, including
// duplicates and events that change nothing, so providers stop retrying.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "Invalid webhook payload.")
		return
	}

	res, err := h.handle.Execute(c.Request.Context(), c.Param("provider"), body, c.Request.Header)
	if err != nil {
		httperr.FromError(c, err, "webhook_failed")
		return
	}

	httpresp.OK(c, res)
}
