package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

type ReviewUser struct {
	ID   primitive.ObjectID `bson:"id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// Review is unique per (order, product, itemType).
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      ReviewUser         `bson:"user" json:"user"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	Order     primitive.ObjectID `bson:"order" json:"order"`
	ItemType  ItemType           `bson:"itemType" json:"itemType"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	Status    ReviewStatus       `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
