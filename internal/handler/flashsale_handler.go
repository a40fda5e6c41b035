package handler

import (
	"net/http"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/service"
	"bakehouse-backend/models"

	"github.com/gin-gonic/gin"
)

type FlashSaleHandler struct {
	flashSales *service.FlashSaleService
}

func NewFlashSaleHandler(flashSales *service.FlashSaleService) *FlashSaleHandler {
	return &FlashSaleHandler{flashSales: flashSales}
}

func (h *FlashSaleHandler) ListActive(c *gin.Context) {
	sales, err := h.flashSales.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *FlashSaleHandler) List(c *gin.Context) {
	sales, err := h.flashSales.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *FlashSaleHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	sale, err := h.flashSales.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *FlashSaleHandler) Create(c *gin.Context) {
	var sale models.FlashSale
	if err := c.ShouldBindJSON(&sale); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	if err := h.flashSales.Create(c.Request.Context(), &sale); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *FlashSaleHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var sale models.FlashSale
	if err := c.ShouldBindJSON(&sale); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body"))
		return
	}
	if err := h.flashSales.Update(c.Request.Context(), id, &sale); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *FlashSaleHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.flashSales.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
