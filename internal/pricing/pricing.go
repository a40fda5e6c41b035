// Package pricing resolves the display price of a catalog item. The same
// resolution runs for list views, detail views, cart refresh and checkout so
// every surface shows one consistent number.
package pricing

import (
	"math"
	"time"

	"bakehouse-backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quote is the resolved display price for an item (optionally for one size).
type Quote struct {
	Price           int  `json:"price"`
	OriginalPrice   int  `json:"originalPrice"`
	IsFlashSale     bool `json:"isFlashSale"`
	DiscountPercent int  `json:"discountPercent"`
}

// ActiveLine finds the flash-sale line covering an item among the currently
// running sales. Sold-out lines do not count: once soldQuantity reaches
// quantity the sale price stops applying.
func ActiveLine(sales []models.FlashSale, itemID primitive.ObjectID, itemType models.ItemType, now time.Time) *models.FlashSaleLine {
	for i := range sales {
		if !sales[i].IsRunning(now) {
			continue
		}
		if line := sales[i].Line(itemID, itemType); line != nil && line.SoldQuantity < line.Quantity {
			return line
		}
	}
	return nil
}

// Resolve computes the display price for an item with base price and optional
// discountPrice, size pricing and flash-sale line.
//
// Precedence: active flash sale, then discount price, then base price. When a
// size is selected the size entry's price replaces the base; under a flash
// sale the sale's base discount percentage is reapplied to the size price.
func Resolve(price, discountPrice int, sizePricing []models.SizePrice, size string, sale *models.FlashSaleLine) Quote {
	base := price
	sizeEntry := findSize(sizePricing, size)
	if sizeEntry != nil {
		base = sizeEntry.Price
	}

	if sale != nil && sale.OriginalPrice > 0 && sale.SalePrice < sale.OriginalPrice {
		pct := percentOff(sale.OriginalPrice, sale.SalePrice)
		display := sale.SalePrice
		if sizeEntry != nil {
			display = int(math.Round(float64(sizeEntry.Price) * (1 - float64(pct)/100)))
		}
		return Quote{Price: display, OriginalPrice: base, IsFlashSale: true, DiscountPercent: pct}
	}

	if sizeEntry != nil {
		if sizeEntry.DiscountPrice > 0 && sizeEntry.DiscountPrice < sizeEntry.Price {
			return Quote{
				Price:           sizeEntry.DiscountPrice,
				OriginalPrice:   sizeEntry.Price,
				DiscountPercent: percentOff(sizeEntry.Price, sizeEntry.DiscountPrice),
			}
		}
		return Quote{Price: sizeEntry.Price, OriginalPrice: sizeEntry.Price}
	}

	if discountPrice > 0 && discountPrice < price {
		return Quote{
			Price:           discountPrice,
			OriginalPrice:   price,
			DiscountPercent: percentOff(price, discountPrice),
		}
	}
	return Quote{Price: price, OriginalPrice: price}
}

// ResolveProduct is Resolve with a product's fields spread in.
func ResolveProduct(p *models.Product, size string, sales []models.FlashSale, now time.Time) Quote {
	sale := ActiveLine(sales, p.ID, models.ItemTypeProduct, now)
	return Resolve(p.Price, p.DiscountPrice, p.SizePricing, size, sale)
}

// ResolveIngredient is Resolve for the flat-priced ingredient collection.
func ResolveIngredient(ing *models.Ingredient, sales []models.FlashSale, now time.Time) Quote {
	sale := ActiveLine(sales, ing.ID, models.ItemTypeIngredient, now)
	return Resolve(ing.Price, ing.DiscountPrice, nil, "", sale)
}

func findSize(pricing []models.SizePrice, size string) *models.SizePrice {
	if size == "" {
		return nil
	}
	for i := range pricing {
		if pricing[i].Size == size {
			return &pricing[i]
		}
	}
	return nil
}

func percentOff(original, sale int) int {
	return int(math.Round(float64(original-sale) / float64(original) * 100))
}
