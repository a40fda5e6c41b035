package handler

import (
	"net/http"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/middleware"
	"bakehouse-backend/internal/service"
	"bakehouse-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistHandler struct {
	wishlists *service.WishlistService
}

func NewWishlistHandler(wishlists *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists}
}

func (h *WishlistHandler) Get(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	wishlist, err := h.wishlists.Get(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

func (h *WishlistHandler) Add(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	var req struct {
		ProductID string          `json:"productId"`
		ItemType  models.ItemType `json:"itemType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid productId"))
		return
	}
	if req.ItemType == "" {
		req.ItemType = models.ItemTypeProduct
	}
	wishlist, err := h.wishlists.Add(c.Request.Context(), actor.UserID, productID, req.ItemType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	productID, ok := objectIDParam(c, "productId")
	if !ok {
		return
	}
	wishlist, err := h.wishlists.Remove(c.Request.Context(), actor.UserID, productID, models.ItemType(c.Param("itemType")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

func (h *WishlistHandler) Check(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	productID, ok := objectIDParam(c, "productId")
	if !ok {
		return
	}
	inWishlist, err := h.wishlists.Check(c.Request.Context(), actor.UserID, productID, models.ItemType(c.Param("itemType")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWishlist": inWishlist})
}
