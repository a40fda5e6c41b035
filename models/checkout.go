package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkout is a paid-or-pending cart snapshot. Finalizing a paid checkout
// produces the order and stamps OrderID, making the operation idempotent.
type Checkout struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	Items           []CartItem          `bson:"items" json:"items"`
	ShippingAddress ShippingAddress     `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string              `bson:"paymentMethod" json:"paymentMethod"`
	TotalPrice      int                 `bson:"totalPrice" json:"totalPrice"`
	IsPaid          bool                `bson:"isPaid" json:"isPaid"`
	PaidAt          *time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	PaymentDetails  *PaymentDetails     `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	IsFinalized     bool                `bson:"isFinalized" json:"isFinalized"`
	FinalizedAt     *time.Time          `bson:"finalizedAt,omitempty" json:"finalizedAt,omitempty"`
	OrderID         *primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
