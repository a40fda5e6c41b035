package handler

import (
	"net/http"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/middleware"
	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/internal/service"
	"bakehouse-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	review, err := h.reviews.Create(c.Request.Context(), models.ReviewUser{ID: actor.UserID, Name: actor.Name}, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// List is public; unmoderated listings default to approved reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	filter := repositories.ReviewFilter{
		ItemType: models.ItemType(c.Query("itemType")),
		Status:   models.ReviewStatus(c.Query("status")),
	}
	if productHex := c.Query("product"); productHex != "" {
		productID, err := primitive.ObjectIDFromHex(productHex)
		if err != nil {
			respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid product id"))
			return
		}
		filter.Product = &productID
	}
	if filter.Status == "" {
		filter.Status = models.ReviewApproved
	}
	reviews, err := h.reviews.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ModerationList lets moderators see any status, including pending.
func (h *ReviewHandler) ModerationList(c *gin.Context) {
	filter := repositories.ReviewFilter{
		ItemType: models.ItemType(c.Query("itemType")),
		Status:   models.ReviewStatus(c.Query("status")),
	}
	reviews, err := h.reviews.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Moderate(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.ReviewStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	review, err := h.reviews.Moderate(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
