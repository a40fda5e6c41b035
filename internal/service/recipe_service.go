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

type RecipeService struct {
	recipes repositories.RecipeRepository
	logger  *logger.Logger
	now     func() time.Time
}

func NewRecipeService(recipes repositories.RecipeRepository, log *logger.Logger) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		logger:  log.WithComponent("recipe_service"),
		now:     time.Now,
	}
}

func (s *RecipeService) List(ctx context.Context, filter repositories.RecipeFilter) ([]models.Recipe, error) {
	recipes, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing recipes")
	}
	return recipes, nil
}

func (s *RecipeService) Get(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "recipe not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading recipe")
	}
	return recipe, nil
}

func (s *RecipeService) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := validateRecipe(recipe); err != nil {
		return err
	}
	if recipe.Status == "" {
		recipe.Status = models.ItemStatusActive
	}
	recipe.CreatedAt = s.now()
	recipe.UpdatedAt = recipe.CreatedAt
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "creating recipe")
	}
	s.logger.WithField("recipe_id", recipe.ID.Hex()).Info("recipe created")
	return nil
}

func (s *RecipeService) Update(ctx context.Context, id primitive.ObjectID, recipe *models.Recipe) error {
	if err := validateRecipe(recipe); err != nil {
		return err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	recipe.ID = id
	recipe.CreatedAt = existing.CreatedAt
	recipe.UpdatedAt = s.now()
	if err := s.recipes.Update(ctx, id, recipe); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "updating recipe")
	}
	return nil
}

func (s *RecipeService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "recipe not found")
		}
		return apperr.Wrap(err, apperr.CodeInternal, "deleting recipe")
	}
	return nil
}

func (s *RecipeService) ToggleStatus(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.Status == models.ItemStatusActive {
		recipe.Status = models.ItemStatusInactive
	} else {
		recipe.Status = models.ItemStatusActive
	}
	recipe.UpdatedAt = s.now()
	if err := s.recipes.Update(ctx, id, recipe); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "updating recipe")
	}
	return recipe, nil
}

func (s *RecipeService) TogglePublish(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.IsPublished = !recipe.IsPublished
	recipe.UpdatedAt = s.now()
	if err := s.recipes.Update(ctx, id, recipe); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "updating recipe")
	}
	return recipe, nil
}

// Baker surface: published, active recipes only.

func (s *RecipeService) ListPublished(ctx context.Context, category, query string) ([]models.Recipe, error) {
	published := true
	return s.List(ctx, repositories.RecipeFilter{
		Category:    category,
		Status:      models.ItemStatusActive,
		IsPublished: &published,
		Query:       query,
	})
}

func (s *RecipeService) GetPublished(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.IsPublished || recipe.Status != models.ItemStatusActive {
		return nil, apperr.New(apperr.CodeNotFound, "recipe not found")
	}
	return recipe, nil
}

func (s *RecipeService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.recipes.Categories(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing categories")
	}
	return categories, nil
}

func validateRecipe(recipe *models.Recipe) error {
	if recipe.Name == "" {
		return apperr.New(apperr.CodeInvalidInput, "name is required")
	}
	if recipe.Servings < 0 || recipe.CookingTime < 0 {
		return apperr.New(apperr.CodeInvalidInput, "servings and cooking time cannot be negative")
	}
	for i, ing := range recipe.Ingredients {
		if ing.Name == "" {
			return apperr.New(apperr.CodeInvalidInput, "ingredient %d: name is required", i+1)
		}
		if ing.Quantity <= 0 {
			return apperr.New(apperr.CodeInvalidInput, "ingredient %d: quantity must be positive", i+1)
		}
	}
	return nil
}
