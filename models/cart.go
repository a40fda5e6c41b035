package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	ItemType  ItemType           `bson:"itemType" json:"itemType"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     int                `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	Flavor    string             `bson:"flavor,omitempty" json:"flavor,omitempty"`
}

// SameLine reports whether two cart items collapse into one line. Identity is
// (product, itemType, size, flavor); price is not part of the key.
func (i CartItem) SameLine(other CartItem) bool {
	return i.ProductID == other.ProductID &&
		i.ItemType == other.ItemType &&
		i.Size == other.Size &&
		i.Flavor == other.Flavor
}

// Cart belongs to either a logged-in user or an anonymous guest, never both.
type Cart struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	GuestID   string              `bson:"guestId,omitempty" json:"guestId,omitempty"`
	Items     []CartItem          `bson:"items" json:"items"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (c *Cart) TotalPrice() int {
	total := 0
	for _, item := range c.Items {
		total += item.Price * item.Quantity
	}
	return total
}
