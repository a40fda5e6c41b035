package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	ItemType  ItemType           `bson:"itemType" json:"itemType"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
}

type Wishlist struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Items  []WishlistItem     `bson:"items" json:"items"`
}

func (w *Wishlist) Contains(productID primitive.ObjectID, itemType ItemType) bool {
	for _, item := range w.Items {
		if item.ProductID == productID && item.ItemType == itemType {
			return true
		}
	}
	return false
}
