package service

import (
	"context"
	"time"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/pricing"
	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/models"
	"bakehouse-backend/pkg/logger"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductView is a product with its resolved display price attached, so grid
// and detail views render the same number.
type ProductView struct {
	models.Product
	Pricing pricing.Quote `json:"pricing"`
}

type IngredientView struct {
	models.Ingredient
	Pricing pricing.Quote `json:"pricing"`
}

type CatalogService struct {
	products    repositories.ProductRepository
	ingredients repositories.IngredientRepository
	flashSales  repositories.FlashSaleRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewCatalogService(products repositories.ProductRepository, ingredients repositories.IngredientRepository, flashSales repositories.FlashSaleRepository, log *logger.Logger) *CatalogService {
	return &CatalogService{
		products:    products,
		ingredients: ingredients,
		flashSales:  flashSales,
		logger:      log.WithComponent("catalog_service"),
		now:         time.Now,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, category string, publicOnly bool) ([]ProductView, error) {
	filter := repositories.CatalogFilter{Category: category}
	if publicOnly {
		filter.Status = models.ItemStatusActive
	}
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing products")
	}
	sales, err := s.runningSales(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = ProductView{
			Product: products[i],
			Pricing: pricing.ResolveProduct(&products[i], "", sales, now),
		}
	}
	return views, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID, size string) (*ProductView, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "product not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading product")
	}
	sales, err := s.runningSales(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductView{
		Product: *product,
		Pricing: pricing.ResolveProduct(product, size, sales, s.now()),
	}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := validateCatalogItem(product.Name, product.Price, product.DiscountPrice); err != nil {
		return err
	}
	for _, sp := range product.SizePricing {
		if sp.DiscountPrice > 0 && sp.DiscountPrice >= sp.Price {
			return apperr.New(apperr.CodeInvalidInput, "size %s: discount price must be below price", sp.Size)
		}
	}
	if product.Status == "" {
		product.Status = models.ItemStatusActive
	}
	product.CreatedAt = s.now()
	product.UpdatedAt = product.CreatedAt
	if err := s.products.Create(ctx, product); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "creating product")
	}
	s.logger.WithField("product_id", product.ID.Hex()).Info("product created")
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, product *models.Product) error {
	if err := validateCatalogItem(product.Name, product.Price, product.DiscountPrice); err != nil {
		return err
	}
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "product not found")
		}
		return apperr.Wrap(err, apperr.CodeInternal, "loading product")
	}
	product.ID = id
	product.CreatedAt = existing.CreatedAt
	product.Rating = existing.Rating
	product.NumReviews = existing.NumReviews
	product.UpdatedAt = s.now()
	if err := s.products.Update(ctx, id, product); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "updating product")
	}
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "product not found")
		}
		return apperr.Wrap(err, apperr.CodeInternal, "deleting product")
	}
	s.logger.WithField("product_id", id.Hex()).Info("product deleted")
	return nil
}

func (s *CatalogService) ListIngredients(ctx context.Context, category string, publicOnly bool) ([]IngredientView, error) {
	filter := repositories.CatalogFilter{Category: category}
	if publicOnly {
		filter.Status = models.ItemStatusActive
	}
	ingredients, err := s.ingredients.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing ingredients")
	}
	sales, err := s.runningSales(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]IngredientView, len(ingredients))
	for i := range ingredients {
		views[i] = IngredientView{
			Ingredient: ingredients[i],
			Pricing:    pricing.ResolveIngredient(&ingredients[i], sales, now),
		}
	}
	return views, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id primitive.ObjectID) (*IngredientView, error) {
	ingredient, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "ingredient not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading ingredient")
	}
	sales, err := s.runningSales(ctx)
	if err != nil {
		return nil, err
	}
	return &IngredientView{
		Ingredient: *ingredient,
		Pricing:    pricing.ResolveIngredient(ingredient, sales, s.now()),
	}, nil
}

func (s *CatalogService) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	if err := validateCatalogItem(ingredient.Name, ingredient.Price, ingredient.DiscountPrice); err != nil {
		return err
	}
	if ingredient.Status == "" {
		ingredient.Status = models.ItemStatusActive
	}
	ingredient.CreatedAt = s.now()
	ingredient.UpdatedAt = ingredient.CreatedAt
	if err := s.ingredients.Create(ctx, ingredient); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "creating ingredient")
	}
	s.logger.WithField("ingredient_id", ingredient.ID.Hex()).Info("ingredient created")
	return nil
}

func (s *CatalogService) UpdateIngredient(ctx context.Context, id primitive.ObjectID, ingredient *models.Ingredient) error {
	if err := validateCatalogItem(ingredient.Name, ingredient.Price, ingredient.DiscountPrice); err != nil {
		return err
	}
	existing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "ingredient not found")
		}
		return apperr.Wrap(err, apperr.CodeInternal, "loading ingredient")
	}
	ingredient.ID = id
	ingredient.CreatedAt = existing.CreatedAt
	ingredient.Rating = existing.Rating
	ingredient.NumReviews = existing.NumReviews
	ingredient.UpdatedAt = s.now()
	if err := s.ingredients.Update(ctx, id, ingredient); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "updating ingredient")
	}
	return nil
}

func (s *CatalogService) DeleteIngredient(ctx context.Context, id primitive.ObjectID) error {
	if err := s.ingredients.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "ingredient not found")
		}
		return apperr.Wrap(err, apperr.CodeInternal, "deleting ingredient")
	}
	return nil
}

// AdjustIngredientStock changes the stock count by delta (negative consumes).
func (s *CatalogService) AdjustIngredientStock(ctx context.Context, id primitive.ObjectID, delta int) (*models.Ingredient, error) {
	ingredient, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "ingredient not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading ingredient")
	}
	if ingredient.Quantity+delta < 0 {
		return nil, apperr.New(apperr.CodeInsufficientStock, "stock cannot go below zero (have %d, delta %d)", ingredient.Quantity, delta)
	}
	if err := s.ingredients.AdjustQuantity(ctx, id, delta); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "adjusting stock")
	}
	ingredient.Quantity += delta
	return ingredient, nil
}

func (s *CatalogService) runningSales(ctx context.Context) ([]models.FlashSale, error) {
	sales, err := s.flashSales.ListRunning(ctx, s.now())
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing flash sales")
	}
	return sales, nil
}

func validateCatalogItem(name string, price, discountPrice int) error {
	if name == "" {
		return apperr.New(apperr.CodeInvalidInput, "name is required")
	}
	if price <= 0 {
		return apperr.New(apperr.CodeInvalidInput, "price must be positive")
	}
	if discountPrice > 0 && discountPrice >= price {
		return apperr.New(apperr.CodeInvalidInput, "discount price must be below price")
	}
	return nil
}
