package service

import (
	"context"
	"time"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/pricing"
	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/models"
	"bakehouse-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartOwner identifies a cart by exactly one of a user id or a guest id.
type CartOwner struct {
	UserID  *primitive.ObjectID
	GuestID string
}

// NewGuestID issues the anonymous cart-owner identifier the client persists
// until login.
func NewGuestID() string {
	return uuid.NewString()
}

type AddCartItemRequest struct {
	ProductID primitive.ObjectID `json:"productId"`
	ItemType  models.ItemType    `json:"itemType"`
	Quantity  int                `json:"quantity"`
	Size      string             `json:"size"`
	Flavor    string             `json:"flavor"`
}

type CartService struct {
	carts       repositories.CartRepository
	products    repositories.ProductRepository
	ingredients repositories.IngredientRepository
	flashSales  repositories.FlashSaleRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository, ingredients repositories.IngredientRepository, flashSales repositories.FlashSaleRepository, log *logger.Logger) *CartService {
	return &CartService{
		carts:       carts,
		products:    products,
		ingredients: ingredients,
		flashSales:  flashSales,
		logger:      log.WithComponent("cart_service"),
		now:         time.Now,
	}
}

// Get returns the owner's cart, or an empty one if none is stored yet.
func (s *CartService) Get(ctx context.Context, owner CartOwner) (*models.Cart, error) {
	cart, err := s.load(ctx, owner)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return s.emptyCart(owner), nil
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading cart")
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, owner CartOwner, req AddCartItemRequest) (*models.Cart, error) {
	if req.Quantity <= 0 {
		return nil, apperr.New(apperr.CodeInvalidInput, "quantity must be positive")
	}
	line, err := s.buildLine(ctx, req)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	merged := false
	for i := range cart.Items {
		if cart.Items[i].SameLine(*line) {
			cart.Items[i].Quantity += req.Quantity
			cart.Items[i].Price = line.Price
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, *line)
	}
	return cart, s.save(ctx, cart)
}

func (s *CartService) UpdateItem(ctx context.Context, owner CartOwner, productID primitive.ObjectID, itemType models.ItemType, size, flavor string, quantity int) (*models.Cart, error) {
	cart, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	key := models.CartItem{ProductID: productID, ItemType: itemType, Size: size, Flavor: flavor}
	for i := range cart.Items {
		if cart.Items[i].SameLine(key) {
			if quantity > 0 {
				cart.Items[i].Quantity = quantity
			} else {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			}
			return cart, s.save(ctx, cart)
		}
	}
	return nil, apperr.New(apperr.CodeNotFound, "item not in cart")
}

func (s *CartService) RemoveItem(ctx context.Context, owner CartOwner, productID primitive.ObjectID, itemType models.ItemType, size, flavor string) (*models.Cart, error) {
	return s.UpdateItem(ctx, owner, productID, itemType, size, flavor, 0)
}

func (s *CartService) Clear(ctx context.Context, owner CartOwner) error {
	cart, err := s.Get(ctx, owner)
	if err != nil {
		return err
	}
	cart.Items = nil
	return s.save(ctx, cart)
}

// Merge folds the guest cart into the user cart after login. Quantities sum
// for identical (product, itemType, size, flavor) lines; distinct lines
// union. The guest cart is removed afterwards.
func (s *CartService) Merge(ctx context.Context, guestID string, userID primitive.ObjectID) (*models.Cart, error) {
	if guestID == "" {
		return nil, apperr.New(apperr.CodeInvalidInput, "guestId is required")
	}
	guestCart, err := s.carts.GetByGuest(ctx, guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Nothing to merge.
			return s.Get(ctx, CartOwner{UserID: &userID})
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading guest cart")
	}

	userCart, err := s.Get(ctx, CartOwner{UserID: &userID})
	if err != nil {
		return nil, err
	}

	for _, item := range guestCart.Items {
		merged := false
		for i := range userCart.Items {
			if userCart.Items[i].SameLine(item) {
				userCart.Items[i].Quantity += item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			userCart.Items = append(userCart.Items, item)
		}
	}

	if err := s.save(ctx, userCart); err != nil {
		return nil, err
	}
	if err := s.carts.DeleteByGuest(ctx, guestID); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "removing guest cart")
	}
	s.logger.WithField("user_id", userID.Hex()).Info("guest cart merged")
	return userCart, nil
}

// Refresh re-resolves every line's price against the current flash sales, so
// stale cart prices converge with the storefront.
func (s *CartService) Refresh(ctx context.Context, owner CartOwner) (*models.Cart, error) {
	cart, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	sales, err := s.flashSales.ListRunning(ctx, s.now())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing flash sales")
	}
	now := s.now()
	for i := range cart.Items {
		item := &cart.Items[i]
		switch item.ItemType {
		case models.ItemTypeIngredient:
			ingredient, err := s.ingredients.GetByID(ctx, item.ProductID)
			if err != nil {
				continue // removed items keep their last price
			}
			item.Price = pricing.ResolveIngredient(ingredient, sales, now).Price
		default:
			product, err := s.products.GetByID(ctx, item.ProductID)
			if err != nil {
				continue
			}
			item.Price = pricing.ResolveProduct(product, item.Size, sales, now).Price
		}
	}
	return cart, s.save(ctx, cart)
}

func (s *CartService) buildLine(ctx context.Context, req AddCartItemRequest) (*models.CartItem, error) {
	sales, err := s.flashSales.ListRunning(ctx, s.now())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing flash sales")
	}

	line := models.CartItem{
		ProductID: req.ProductID,
		ItemType:  req.ItemType,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Flavor:    req.Flavor,
	}

	switch req.ItemType {
	case models.ItemTypeIngredient:
		ingredient, err := s.ingredients.GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperr.New(apperr.CodeNotFound, "ingredient not found")
			}
			return nil, apperr.Wrap(err, apperr.CodeInternal, "loading ingredient")
		}
		if ingredient.Status != models.ItemStatusActive {
			return nil, apperr.New(apperr.CodeInvalidInput, "ingredient is not available")
		}
		line.Name = ingredient.Name
		if len(ingredient.Images) > 0 {
			line.Image = ingredient.Images[0].URL
		}
		line.Price = pricing.ResolveIngredient(ingredient, sales, s.now()).Price
	case models.ItemTypeProduct, "":
		line.ItemType = models.ItemTypeProduct
		product, err := s.products.GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperr.New(apperr.CodeNotFound, "product not found")
			}
			return nil, apperr.Wrap(err, apperr.CodeInternal, "loading product")
		}
		if product.Status != models.ItemStatusActive {
			return nil, apperr.New(apperr.CodeInvalidInput, "product is not available")
		}
		line.Name = product.Name
		if len(product.Images) > 0 {
			line.Image = product.Images[0].URL
		}
		line.Price = pricing.ResolveProduct(product, req.Size, sales, s.now()).Price
	default:
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown item type %q", req.ItemType)
	}
	return &line, nil
}

func (s *CartService) load(ctx context.Context, owner CartOwner) (*models.Cart, error) {
	if owner.UserID != nil {
		return s.carts.GetByUser(ctx, *owner.UserID)
	}
	if owner.GuestID != "" {
		return s.carts.GetByGuest(ctx, owner.GuestID)
	}
	return nil, repositories.ErrNotFound
}

func (s *CartService) emptyCart(owner CartOwner) *models.Cart {
	now := s.now()
	return &models.Cart{
		UserID:    owner.UserID,
		GuestID:   owner.GuestID,
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *CartService) save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = s.now()
	if err := s.carts.Save(ctx, cart); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "saving cart")
	}
	return nil
}
