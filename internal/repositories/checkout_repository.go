package repositories

import (
	"context"

	"bakehouse-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CheckoutRepository interface {
	Create(ctx context.Context, checkout *models.Checkout) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Checkout, error)
	GetPendingByUser(ctx context.Context, userID primitive.ObjectID) (*models.Checkout, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Checkout, error)
	Update(ctx context.Context, checkout *models.Checkout) error
}

type MongoCheckoutRepository struct {
	collection *mongo.Collection
}

func NewMongoCheckoutRepository(db *mongo.Database) *MongoCheckoutRepository {
	return &MongoCheckoutRepository{collection: db.Collection("checkouts")}
}

func (r *MongoCheckoutRepository) Create(ctx context.Context, checkout *models.Checkout) error {
	res, err := r.collection.InsertOne(ctx, checkout)
	if err != nil {
		return err
	}
	checkout.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoCheckoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Checkout, error) {
	var checkout models.Checkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&checkout)
	if err != nil {
		return nil, mapErr(err)
	}
	return &checkout, nil
}

func (r *MongoCheckoutRepository) GetPendingByUser(ctx context.Context, userID primitive.ObjectID) (*models.Checkout, error) {
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})
	var checkout models.Checkout
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "isFinalized": false}, opts).Decode(&checkout)
	if err != nil {
		return nil, mapErr(err)
	}
	return &checkout, nil
}

func (r *MongoCheckoutRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Checkout, error) {
	var checkout models.Checkout
	err := r.collection.FindOne(ctx, bson.M{"paymentDetails.transactionId": transactionID}).Decode(&checkout)
	if err != nil {
		return nil, mapErr(err)
	}
	return &checkout, nil
}

func (r *MongoCheckoutRepository) Update(ctx context.Context, checkout *models.Checkout) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": checkout.ID}, checkout)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
