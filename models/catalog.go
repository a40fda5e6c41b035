package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemType distinguishes the two sellable collections in carts, orders,
// reviews, wishlists and flash sales.
type ItemType string

const (
	ItemTypeProduct    ItemType = "Product"
	ItemTypeIngredient ItemType = "Ingredient"
)

type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

type Image struct {
	URL     string `bson:"url" json:"url"`
	AltText string `bson:"altText" json:"altText"`
}

// SizePrice overrides the base price for a named size. DiscountPrice of 0
// means no size-level discount.
type SizePrice struct {
	Size          string `bson:"size" json:"size"`
	Price         int    `bson:"price" json:"price"`
	DiscountPrice int    `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         int                `bson:"price" json:"price"`
	DiscountPrice int                `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	SizePricing   []SizePrice        `bson:"sizePricing,omitempty" json:"sizePricing,omitempty"`
	Sizes         []string           `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Flavors       []string           `bson:"flavors,omitempty" json:"flavors,omitempty"`
	Images        []Image            `bson:"images" json:"images"`
	Category      string             `bson:"category" json:"category"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Status        ItemStatus         `bson:"status" json:"status"`
	Rating        float64            `bson:"rating" json:"rating"`
	NumReviews    int                `bson:"numReviews" json:"numReviews"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Ingredient is sold by flat price only; Quantity is the stock count.
type Ingredient struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         int                `bson:"price" json:"price"`
	DiscountPrice int                `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	Unit          string             `bson:"unit" json:"unit"`
	Images        []Image            `bson:"images" json:"images"`
	Category      string             `bson:"category" json:"category"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Supplier      string             `bson:"supplier,omitempty" json:"supplier,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        ItemStatus         `bson:"status" json:"status"`
	Rating        float64            `bson:"rating" json:"rating"`
	NumReviews    int                `bson:"numReviews" json:"numReviews"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type RecipeIngredient struct {
	Name     string  `bson:"name" json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`
}

type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Instructions string             `bson:"instructions" json:"instructions"`
	Ingredients  []RecipeIngredient `bson:"ingredients" json:"ingredients"`
	Difficulty   string             `bson:"difficulty" json:"difficulty"`
	CookingTime  int                `bson:"cookingTime" json:"cookingTime"`
	Servings     int                `bson:"servings" json:"servings"`
	Category     string             `bson:"category" json:"category"`
	Status       ItemStatus         `bson:"status" json:"status"`
	IsPublished  bool               `bson:"isPublished" json:"isPublished"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
