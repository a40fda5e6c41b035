package service

import (
	"context"
	"testing"
	"time"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCartFixture(t *testing.T) (*CartService, *fakeCartRepo, *models.Product) {
	t.Helper()
	product := &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Bánh kem dâu tây",
		Price:    250000,
		Quantity: 20,
		Status:   models.ItemStatusActive,
		SizePricing: []models.SizePrice{
			{Size: "S", Price: 250000},
			{Size: "L", Price: 400000},
		},
	}
	carts := newFakeCartRepo()
	svc := NewCartService(carts, newFakeProductRepo(product), newFakeIngredientRepo(), &fakeFlashSaleRepo{}, testLogger())
	return svc, carts, product
}

func TestCartAddItemMergesSameLine(t *testing.T) {
	svc, _, product := newCartFixture(t)
	guest := CartOwner{GuestID: NewGuestID()}

	cart, err := svc.AddItem(context.Background(), guest, AddCartItemRequest{
		ProductID: product.ID, ItemType: models.ItemTypeProduct, Quantity: 2, Size: "S",
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 250000, cart.Items[0].Price)

	// Same product, same size: quantities sum on one line.
	cart, err = svc.AddItem(context.Background(), guest, AddCartItemRequest{
		ProductID: product.ID, ItemType: models.ItemTypeProduct, Quantity: 3, Size: "S",
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// A different size is a new line.
	cart, err = svc.AddItem(context.Background(), guest, AddCartItemRequest{
		ProductID: product.ID, ItemType: models.ItemTypeProduct, Quantity: 1, Size: "L",
	})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCartAddItemRejectsBadInput(t *testing.T) {
	svc, _, product := newCartFixture(t)
	guest := CartOwner{GuestID: NewGuestID()}

	_, err := svc.AddItem(context.Background(), guest, AddCartItemRequest{
		ProductID: product.ID, Quantity: 0,
	})
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	_, err = svc.AddItem(context.Background(), guest, AddCartItemRequest{
		ProductID: primitive.NewObjectID(), Quantity: 1,
	})
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestCartUpdateItemZeroQuantityRemoves(t *testing.T) {
	svc, _, product := newCartFixture(t)
	guest := CartOwner{GuestID: NewGuestID()}

	_, err := svc.AddItem(context.Background(), guest, AddCartItemRequest{
		ProductID: product.ID, Quantity: 2, Size: "S",
	})
	require.NoError(t, err)

	cart, err := svc.UpdateItem(context.Background(), guest, product.ID, models.ItemTypeProduct, "S", "", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.UpdateItem(context.Background(), guest, product.ID, models.ItemTypeProduct, "S", "", 1)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestCartMergeSumsAndUnions(t *testing.T) {
	svc, carts, product := newCartFixture(t)
	guestID := NewGuestID()
	guest := CartOwner{GuestID: guestID}
	userID := primitive.NewObjectID()
	user := CartOwner{UserID: &userID}

	otherProduct := primitive.NewObjectID()

	_, err := svc.AddItem(context.Background(), guest, AddCartItemRequest{
		ProductID: product.ID, Quantity: 2, Size: "S",
	})
	require.NoError(t, err)
	guestCart, err := svc.Get(context.Background(), guest)
	require.NoError(t, err)
	guestCart.Items = append(guestCart.Items, models.CartItem{
		ProductID: otherProduct, ItemType: models.ItemTypeProduct, Name: "Bánh su kem", Price: 15000, Quantity: 4,
	})
	require.NoError(t, carts.Save(context.Background(), guestCart))

	_, err = svc.AddItem(context.Background(), user, AddCartItemRequest{
		ProductID: product.ID, Quantity: 1, Size: "S",
	})
	require.NoError(t, err)

	merged, err := svc.Merge(context.Background(), guestID, userID)
	require.NoError(t, err)
	require.Len(t, merged.Items, 2)

	byProduct := make(map[primitive.ObjectID]models.CartItem)
	for _, item := range merged.Items {
		byProduct[item.ProductID] = item
	}
	assert.Equal(t, 3, byProduct[product.ID].Quantity)
	assert.Equal(t, 4, byProduct[otherProduct].Quantity)

	// The guest cart is gone afterwards.
	_, err = carts.GetByGuest(context.Background(), guestID)
	assert.Error(t, err)
}

func TestCartMergeWithoutGuestCart(t *testing.T) {
	svc, _, product := newCartFixture(t)
	userID := primitive.NewObjectID()
	user := CartOwner{UserID: &userID}

	_, err := svc.AddItem(context.Background(), user, AddCartItemRequest{
		ProductID: product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	merged, err := svc.Merge(context.Background(), NewGuestID(), userID)
	require.NoError(t, err)
	assert.Len(t, merged.Items, 1)

	_, err = svc.Merge(context.Background(), "", userID)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
}

func TestCartRefreshAppliesFlashSale(t *testing.T) {
	product := &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Bánh mì hoa cúc",
		Price:    85000,
		Quantity: 50,
		Status:   models.ItemStatusActive,
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flashSales := &fakeFlashSaleRepo{sales: []*models.FlashSale{{
		ID:        primitive.NewObjectID(),
		Status:    models.FlashSaleActive,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
		Products: []models.FlashSaleLine{
			{ItemID: product.ID, OriginalPrice: 85000, SalePrice: 68000, Quantity: 10},
		},
	}}}

	carts := newFakeCartRepo()
	svc := NewCartService(carts, newFakeProductRepo(product), newFakeIngredientRepo(), flashSales, testLogger())
	svc.now = func() time.Time { return now }

	guest := CartOwner{GuestID: NewGuestID()}
	cart, err := svc.AddItem(context.Background(), guest, AddCartItemRequest{
		ProductID: product.ID, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 68000, cart.Items[0].Price)

	// After the sale window closes, refresh converges back to the base price.
	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	cart, err = svc.Refresh(context.Background(), guest)
	require.NoError(t, err)
	assert.Equal(t, 85000, cart.Items[0].Price)
}

func TestCartGetReturnsEmptyForNewOwner(t *testing.T) {
	svc, _, _ := newCartFixture(t)
	cart, err := svc.Get(context.Background(), CartOwner{GuestID: NewGuestID()})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalPrice())
}
