package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FlashSaleStatus string

const (
	FlashSaleActive   FlashSaleStatus = "active"
	FlashSaleInactive FlashSaleStatus = "inactive"
)

// FlashSaleLine is one discounted item inside a sale. SoldQuantity never
// exceeds Quantity; once equal the line is sold out and the overlay price no
// longer applies.
type FlashSaleLine struct {
	ItemID        primitive.ObjectID `bson:"productId" json:"productId"`
	OriginalPrice int                `bson:"originalPrice" json:"originalPrice"`
	SalePrice     int                `bson:"salePrice" json:"salePrice"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	SoldQuantity  int                `bson:"soldQuantity" json:"soldQuantity"`
}

type FlashSale struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Products    []FlashSaleLine    `bson:"products" json:"products"`
	Ingredients []FlashSaleLine    `bson:"ingredients" json:"ingredients"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate" json:"endDate"`
	Status      FlashSaleStatus    `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsRunning reports whether the sale window covers now and the sale is
// switched on.
func (f *FlashSale) IsRunning(now time.Time) bool {
	return f.Status == FlashSaleActive && !now.Before(f.StartDate) && now.Before(f.EndDate)
}

// Line finds the sale line for an item, or nil if the item is not part of the
// sale.
func (f *FlashSale) Line(itemID primitive.ObjectID, itemType ItemType) *FlashSaleLine {
	lines := f.Products
	if itemType == ItemTypeIngredient {
		lines = f.Ingredients
	}
	for i := range lines {
		if lines[i].ItemID == itemID {
			return &lines[i]
		}
	}
	return nil
}
