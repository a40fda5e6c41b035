package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderUser struct {
	ID    primitive.ObjectID `bson:"id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	ItemType  ItemType           `bson:"itemType" json:"itemType"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     int                `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	Flavor    string             `bson:"flavor,omitempty" json:"flavor,omitempty"`
}

type ShippingAddress struct {
	Name        string `bson:"name" json:"name"`
	PhoneNumber string `bson:"phonenumber" json:"phonenumber"`
	Address     string `bson:"address" json:"address"`
	City        string `bson:"city" json:"city"`
}

type PaymentDetails struct {
	Method        string    `bson:"method" json:"method"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	PaidAt        time.Time `bson:"paidAt" json:"paidAt"`
}

// StatusEntry is one audit line in an order's status history.
type StatusEntry struct {
	Status    OrderStatus `bson:"status" json:"status"`
	Note      string      `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedBy string      `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            OrderUser          `bson:"user" json:"user"`
	OrderItems      []OrderItem        `bson:"orderItems" json:"orderItems"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentDetails  *PaymentDetails    `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	TotalPrice      int                `bson:"totalPrice" json:"totalPrice"`
	IsPaid          bool               `bson:"isPaid" json:"isPaid"`
	Status          OrderStatus        `bson:"status" json:"status"`
	StatusHistory   []StatusEntry      `bson:"statusHistory" json:"statusHistory"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
