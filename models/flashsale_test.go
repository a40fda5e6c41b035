package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFlashSaleLineWireShape(t *testing.T) {
	line := FlashSaleLine{
		ItemID:        primitive.NewObjectID(),
		OriginalPrice: 250000,
		SalePrice:     175000,
		Quantity:      10,
		SoldQuantity:  2,
	}
	raw, err := json.Marshal(line)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "productId")
	assert.NotContains(t, decoded, "itemId")
	assert.Contains(t, decoded, "originalPrice")
	assert.Contains(t, decoded, "salePrice")
	assert.Contains(t, decoded, "soldQuantity")
}

func TestFlashSaleIsRunning(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sale := FlashSale{
		Status:    FlashSaleActive,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}
	assert.True(t, sale.IsRunning(now))
	assert.False(t, sale.IsRunning(now.Add(2*time.Hour)))
	assert.False(t, sale.IsRunning(now.Add(-2*time.Hour)))

	sale.Status = FlashSaleInactive
	assert.False(t, sale.IsRunning(now))
}

func TestFlashSaleLineLookup(t *testing.T) {
	productID := primitive.NewObjectID()
	ingredientID := primitive.NewObjectID()
	sale := FlashSale{
		Products:    []FlashSaleLine{{ItemID: productID, SalePrice: 175000}},
		Ingredients: []FlashSaleLine{{ItemID: ingredientID, SalePrice: 36000}},
	}

	require.NotNil(t, sale.Line(productID, ItemTypeProduct))
	assert.Equal(t, 175000, sale.Line(productID, ItemTypeProduct).SalePrice)
	require.NotNil(t, sale.Line(ingredientID, ItemTypeIngredient))

	// Lines do not cross collections.
	assert.Nil(t, sale.Line(productID, ItemTypeIngredient))
	assert.Nil(t, sale.Line(primitive.NewObjectID(), ItemTypeProduct))
}
