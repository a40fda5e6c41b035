package handler

import (
	"net/http"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/middleware"
	"bakehouse-backend/internal/service"
	"bakehouse-backend/models"

	"github.com/gin-gonic/gin"
)

const guestIDHeader = "X-Guest-Id"

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// ownerFrom resolves the cart owner: the authenticated user when a token was
// sent, otherwise the guest id from header or query. A fresh guest id is
// issued when neither exists, and always echoed back in the response.
func (h *CartHandler) ownerFrom(c *gin.Context) service.CartOwner {
	if actor, ok := middleware.ActorFrom(c); ok {
		return service.CartOwner{UserID: &actor.UserID}
	}
	guestID := c.GetHeader(guestIDHeader)
	if guestID == "" {
		guestID = c.Query("guestId")
	}
	if guestID == "" {
		guestID = service.NewGuestID()
	}
	return service.CartOwner{GuestID: guestID}
}

func cartResponse(owner service.CartOwner, cart *models.Cart) gin.H {
	resp := gin.H{"cart": cart}
	if owner.GuestID != "" {
		resp["guestId"] = owner.GuestID
	}
	return resp
}

func (h *CartHandler) Get(c *gin.Context) {
	owner := h.ownerFrom(c)
	cart, err := h.carts.Get(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(owner, cart))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	owner := h.ownerFrom(c)
	var req service.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	cart, err := h.carts.AddItem(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(owner, cart))
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	owner := h.ownerFrom(c)
	productID, ok := objectIDParam(c, "productId")
	if !ok {
		return
	}
	var req struct {
		ItemType models.ItemType `json:"itemType"`
		Size     string          `json:"size"`
		Flavor   string          `json:"flavor"`
		Quantity int             `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	if req.ItemType == "" {
		req.ItemType = models.ItemTypeProduct
	}
	cart, err := h.carts.UpdateItem(c.Request.Context(), owner, productID, req.ItemType, req.Size, req.Flavor, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(owner, cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	owner := h.ownerFrom(c)
	productID, ok := objectIDParam(c, "productId")
	if !ok {
		return
	}
	itemType := models.ItemType(c.Query("itemType"))
	if itemType == "" {
		itemType = models.ItemTypeProduct
	}
	cart, err := h.carts.RemoveItem(c.Request.Context(), owner, productID, itemType, c.Query("size"), c.Query("flavor"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(owner, cart))
}

// Merge requires a logged-in user; the guest id rides in the body.
func (h *CartHandler) Merge(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		respondError(c, apperr.New(apperr.CodeUnauthorized, "login required"))
		return
	}
	var req struct {
		GuestID string `json:"guestId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	cart, err := h.carts.Merge(c.Request.Context(), req.GuestID, actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *CartHandler) Refresh(c *gin.Context) {
	owner := h.ownerFrom(c)
	cart, err := h.carts.Refresh(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(owner, cart))
}
