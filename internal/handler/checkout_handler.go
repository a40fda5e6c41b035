package handler

import (
	"net/http"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/middleware"
	"bakehouse-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkouts *service.CheckoutService
}

func NewCheckoutHandler(checkouts *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts}
}

func (h *CheckoutHandler) Create(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	var req service.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	checkout, err := h.checkouts.Create(c.Request.Context(), actor.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, checkout)
}

func (h *CheckoutHandler) Pay(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req service.PayCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	checkout, err := h.checkouts.Pay(c.Request.Context(), actor.UserID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// Finalize returns 201 with the new order, or 409 ALREADY_PROCESSED carrying
// the existing order so clients can redirect instead of retrying.
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.checkouts.Finalize(c.Request.Context(), actor.UserID, id)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeAlreadyProcessed && order != nil {
			c.JSON(http.StatusConflict, gin.H{
				"error": gin.H{"code": apperr.CodeAlreadyProcessed, "message": "checkout already finalized"},
				"order": order,
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (h *CheckoutHandler) Pending(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	checkout, err := h.checkouts.PendingByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// Webhook is the unauthenticated gateway callback; idempotency is keyed on
// the gateway transaction id.
func (h *CheckoutHandler) Webhook(c *gin.Context) {
	var req service.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	order, err := h.checkouts.HandleWebhook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
