package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleBaker    Role = "baker"
	RoleDelivery Role = "delivery"
)

// Capability is a single permission granted to a role. Route guards and the
// order workflow check capabilities, never raw role strings.
type Capability string

const (
	CapOrdersManage     Capability = "orders:manage"
	CapOrdersBake       Capability = "orders:bake"
	CapOrdersDeliver    Capability = "orders:deliver"
	CapCatalogManage    Capability = "catalog:manage"
	CapRecipesManage    Capability = "recipes:manage"
	CapRecipesRead      Capability = "recipes:read"
	CapReviewsModerate  Capability = "reviews:moderate"
	CapFlashSalesManage Capability = "flashsales:manage"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapOrdersManage, CapCatalogManage, CapRecipesManage, CapRecipesRead,
		CapReviewsModerate, CapFlashSalesManage,
	},
	RoleManager: {
		CapOrdersManage, CapCatalogManage, CapRecipesManage, CapRecipesRead,
		CapReviewsModerate, CapFlashSalesManage,
	},
	RoleBaker:    {CapOrdersBake, CapRecipesRead},
	RoleDelivery: {CapOrdersDeliver},
	RoleCustomer: {},
}

// Capabilities resolves a role into its capability set. Unknown roles get no
// capabilities.
func (r Role) Capabilities() []Capability {
	return roleCapabilities[r]
}

func (r Role) Can(cap Capability) bool {
	for _, c := range roleCapabilities[r] {
		if c == cap {
			return true
		}
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Password  string             `bson:"password" json:"password,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
