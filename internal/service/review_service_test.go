package service

import (
	"context"
	"testing"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reviewFixture struct {
	svc      *ReviewService
	reviews  *fakeReviewRepo
	products *fakeProductRepo
	user     models.ReviewUser
	order    *models.Order
	product  *models.Product
}

func newReviewFixture(t *testing.T, orderStatus models.OrderStatus) *reviewFixture {
	t.Helper()
	product := &models.Product{
		ID:     primitive.NewObjectID(),
		Name:   "Bánh kem dâu tây",
		Price:  250000,
		Status: models.ItemStatusActive,
	}
	userID := primitive.NewObjectID()
	order := &models.Order{
		ID:     primitive.NewObjectID(),
		User:   models.OrderUser{ID: userID, Name: "Nguyễn Văn An"},
		Status: orderStatus,
		OrderItems: []models.OrderItem{{
			ProductID: product.ID,
			ItemType:  models.ItemTypeProduct,
			Quantity:  1,
		}},
	}

	f := &reviewFixture{
		reviews:  newFakeReviewRepo(),
		products: newFakeProductRepo(product),
		user:     models.ReviewUser{ID: userID, Name: "Nguyễn Văn An"},
		order:    order,
		product:  product,
	}
	f.svc = NewReviewService(f.reviews, newFakeOrderRepo(order), f.products, newFakeIngredientRepo(), testLogger())
	return f
}

func (f *reviewFixture) request() CreateReviewRequest {
	return CreateReviewRequest{
		Product:  f.product.ID,
		Order:    f.order.ID,
		ItemType: models.ItemTypeProduct,
		Rating:   5,
		Comment:  "Bánh rất ngon",
	}
}

func TestReviewCreate(t *testing.T) {
	f := newReviewFixture(t, models.StatusDelivered)

	review, err := f.svc.Create(context.Background(), f.user, f.request())
	require.NoError(t, err)
	assert.Equal(t, models.ReviewPending, review.Status)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewCreateValidation(t *testing.T) {
	f := newReviewFixture(t, models.StatusDelivered)

	req := f.request()
	req.Rating = 6
	_, err := f.svc.Create(context.Background(), f.user, req)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	req = f.request()
	req.ItemType = "Giftcard"
	_, err = f.svc.Create(context.Background(), f.user, req)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	req = f.request()
	req.Product = primitive.NewObjectID()
	_, err = f.svc.Create(context.Background(), f.user, req)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err), "item must belong to the order")
}

func TestReviewCreateRequiresDeliveredOrder(t *testing.T) {
	f := newReviewFixture(t, models.StatusShipping)
	_, err := f.svc.Create(context.Background(), f.user, f.request())
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
}

func TestReviewCreateRequiresOwnership(t *testing.T) {
	f := newReviewFixture(t, models.StatusDelivered)
	stranger := models.ReviewUser{ID: primitive.NewObjectID(), Name: "Người lạ"}
	_, err := f.svc.Create(context.Background(), stranger, f.request())
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestReviewCreateRejectsDuplicate(t *testing.T) {
	f := newReviewFixture(t, models.StatusDelivered)

	_, err := f.svc.Create(context.Background(), f.user, f.request())
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.user, f.request())
	assert.Equal(t, apperr.CodeReviewExists, apperr.CodeOf(err))
}

func TestReviewModerateRecomputesRating(t *testing.T) {
	f := newReviewFixture(t, models.StatusDelivered)

	review, err := f.svc.Create(context.Background(), f.user, f.request())
	require.NoError(t, err)

	approved, err := f.svc.Moderate(context.Background(), review.ID, models.ReviewApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, approved.Status)

	stored, err := f.products.GetByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, stored.Rating)
	assert.Equal(t, 1, stored.NumReviews)

	// Deleting the only approved review resets the aggregate.
	require.NoError(t, f.svc.Delete(context.Background(), review.ID))
	stored, err = f.products.GetByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored.Rating)
	assert.Equal(t, 0, stored.NumReviews)
}

func TestReviewModerateRejectsUnknownStatus(t *testing.T) {
	f := newReviewFixture(t, models.StatusDelivered)
	review, err := f.svc.Create(context.Background(), f.user, f.request())
	require.NoError(t, err)

	_, err = f.svc.Moderate(context.Background(), review.ID, models.ReviewPending)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))

	_, err = f.svc.Moderate(context.Background(), primitive.NewObjectID(), models.ReviewApproved)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
