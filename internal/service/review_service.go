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

type CreateReviewRequest struct {
	Product  primitive.ObjectID `json:"product"`
	Order    primitive.ObjectID `json:"order"`
	ItemType models.ItemType    `json:"itemType"`
	Rating   int                `json:"rating"`
	Comment  string             `json:"comment"`
}

type ReviewService struct {
	reviews     repositories.ReviewRepository
	orders      repositories.OrderRepository
	products    repositories.ProductRepository
	ingredients repositories.IngredientRepository
	logger      *logger.Logger
	now         func() time.Time
}

func NewReviewService(reviews repositories.ReviewRepository, orders repositories.OrderRepository, products repositories.ProductRepository, ingredients repositories.IngredientRepository, log *logger.Logger) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		orders:      orders,
		products:    products,
		ingredients: ingredients,
		logger:      log.WithComponent("review_service"),
		now:         time.Now,
	}
}

// Create accepts one review per (order, product, itemType) from the order's
// owner, and only once the order is delivered.
func (s *ReviewService) Create(ctx context.Context, user models.ReviewUser, req CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.New(apperr.CodeInvalidInput, "rating must be between 1 and 5")
	}
	if req.ItemType != models.ItemTypeProduct && req.ItemType != models.ItemTypeIngredient {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown item type %q", req.ItemType)
	}

	order, err := s.orders.GetByID(ctx, req.Order)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "order not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading order")
	}
	if order.User.ID != user.ID {
		return nil, apperr.New(apperr.CodeForbidden, "order belongs to another user")
	}
	if order.Status != models.StatusDelivered {
		return nil, apperr.New(apperr.CodeInvalidInput, "order must be delivered before reviewing")
	}

	found := false
	for _, item := range order.OrderItems {
		if item.ProductID == req.Product && item.ItemType == req.ItemType {
			found = true
			break
		}
	}
	if !found {
		return nil, apperr.New(apperr.CodeInvalidInput, "item is not part of this order")
	}

	if _, err := s.reviews.GetByOrderItem(ctx, req.Order, req.Product, req.ItemType); err == nil {
		return nil, apperr.New(apperr.CodeReviewExists, "item already reviewed for this order")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "checking existing review")
	}

	now := s.now()
	review := &models.Review{
		User:      user,
		Product:   req.Product,
		Order:     req.Order,
		ItemType:  req.ItemType,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Status:    models.ReviewPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "creating review")
	}
	s.logger.WithField("review_id", review.ID.Hex()).Info("review submitted")
	return review, nil
}

func (s *ReviewService) List(ctx context.Context, filter repositories.ReviewFilter) ([]models.Review, error) {
	reviews, err := s.reviews.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "listing reviews")
	}
	return reviews, nil
}

// Moderate approves or rejects a review and refreshes the item's aggregate
// rating from the approved set.
func (s *ReviewService) Moderate(ctx context.Context, id primitive.ObjectID, status models.ReviewStatus) (*models.Review, error) {
	if status != models.ReviewApproved && status != models.ReviewRejected {
		return nil, apperr.New(apperr.CodeInvalidInput, "status must be approved or rejected")
	}
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "review not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading review")
	}
	if err := s.reviews.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "updating review")
	}
	review.Status = status

	if err := s.recomputeRating(ctx, review.Product, review.ItemType); err != nil {
		s.logger.WithError(err).Warn("failed to recompute rating")
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id primitive.ObjectID) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.New(apperr.CodeNotFound, "review not found")
		}
		return apperr.Wrap(err, apperr.CodeInternal, "loading review")
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return apperr.Wrap(err, apperr.CodeInternal, "deleting review")
	}
	if err := s.recomputeRating(ctx, review.Product, review.ItemType); err != nil {
		s.logger.WithError(err).Warn("failed to recompute rating")
	}
	return nil
}

func (s *ReviewService) recomputeRating(ctx context.Context, productID primitive.ObjectID, itemType models.ItemType) error {
	approved, err := s.reviews.List(ctx, repositories.ReviewFilter{
		Product:  &productID,
		ItemType: itemType,
		Status:   models.ReviewApproved,
	})
	if err != nil {
		return err
	}
	rating := 0.0
	if len(approved) > 0 {
		sum := 0
		for _, r := range approved {
			sum += r.Rating
		}
		rating = float64(sum) / float64(len(approved))
	}
	if itemType == models.ItemTypeIngredient {
		return s.ingredients.SetRating(ctx, productID, rating, len(approved))
	}
	return s.products.SetRating(ctx, productID, rating, len(approved))
}
