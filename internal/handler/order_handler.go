package handler

import (
	"net/http"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/middleware"
	"bakehouse-backend/internal/service"
	"bakehouse-backend/models"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	orders, err := h.orders.MyOrders(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&req)
	order, err := h.orders.Cancel(c.Request.Context(), actor, id, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Statuses exposes the status display mapping and transition table so every
// panel renders identical labels.
func (h *OrderHandler) Statuses(c *gin.Context) {
	all := []models.OrderStatus{
		models.StatusPending, models.StatusApproved, models.StatusBaking,
		models.StatusReady, models.StatusShipping, models.StatusDelivered,
		models.StatusCancelled, models.StatusCannotDeliver,
	}
	out := make([]gin.H, len(all))
	for i, s := range all {
		info := s.Info()
		out[i] = gin.H{
			"status":      s,
			"label":       info.Label,
			"color":       info.Color,
			"description": info.Description,
			"next":        s.NextStatuses(),
		}
	}
	c.JSON(http.StatusOK, out)
}

// Back-office surface.

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), models.OrderStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.OrderStatus `json:"status"`
		Note   string             `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), actor, id, req.Status, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
