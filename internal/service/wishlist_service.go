package service

import (
	"context"
	"time"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/models"
	"bakehouse-backend/pkg/logger"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistService struct {
	wishlists   repositories.WishlistRepository
	products    repositories.ProductRepository
	ingredients repositories.IngredientRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewWishlistService(wishlists repositories.WishlistRepository, products repositories.ProductRepository, ingredients repositories.IngredientRepository, log *logger.Logger) *WishlistService {
	return &WishlistService{
		wishlists:   wishlists,
		products:    products,
		ingredients: ingredients,
		logger:      log.WithComponent("wishlist_service"),
		now:         time.Now,
	}
}

func (s *WishlistService) Get(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	wishlist, err := s.wishlists.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.Wishlist{UserID: userID, Items: []models.WishlistItem{}}, nil
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading wishlist")
	}
	return wishlist, nil
}

// Add is a no-op when the item is already wished for, mirroring the
// storefront toggle.
func (s *WishlistService) Add(ctx context.Context, userID, productID primitive.ObjectID, itemType models.ItemType) (*models.Wishlist, error) {
	if err := s.itemExists(ctx, productID, itemType); err != nil {
		return nil, err
	}
	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wishlist.Contains(productID, itemType) {
		return wishlist, nil
	}
	wishlist.Items = append(wishlist.Items, models.WishlistItem{
		ProductID: productID,
		ItemType:  itemType,
		AddedAt:   s.now(),
	})
	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "saving wishlist")
	}
	return wishlist, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID primitive.ObjectID, itemType models.ItemType) (*models.Wishlist, error) {
	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i, item := range wishlist.Items {
		if item.ProductID == productID && item.ItemType == itemType {
			wishlist.Items = append(wishlist.Items[:i], wishlist.Items[i+1:]...)
			if err := s.wishlists.Save(ctx, wishlist); err != nil {
				return nil, apperr.Wrap(err, apperr.CodeInternal, "saving wishlist")
			}
			break
		}
	}
	return wishlist, nil
}

func (s *WishlistService) Check(ctx context.Context, userID, productID primitive.ObjectID, itemType models.ItemType) (bool, error) {
	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return wishlist.Contains(productID, itemType), nil
}

func (s *WishlistService) itemExists(ctx context.Context, productID primitive.ObjectID, itemType models.ItemType) error {
	var err error
	switch itemType {
	case models.ItemTypeIngredient:
		_, err = s.ingredients.GetByID(ctx, productID)
	case models.ItemTypeProduct:
		_, err = s.products.GetByID(ctx, productID)
	default:
		return apperr.New(apperr.CodeInvalidInput, "unknown item type %q", itemType)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "item not found")
		}
		return apperr.Wrap(err, apperr.CodeInternal, "loading item")
	}
	return nil
}
