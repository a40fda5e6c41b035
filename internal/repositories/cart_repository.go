package repositories

import (
	"context"

	"bakehouse-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	GetByGuest(ctx context.Context, guestID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	DeleteByGuest(ctx context.Context, guestID string) error
	ClearUser(ctx context.Context, userID primitive.ObjectID) error
}

type MongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection("carts")}
}

func (r *MongoCartRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		return nil, mapErr(err)
	}
	return &cart, nil
}

func (r *MongoCartRepository) GetByGuest(ctx context.Context, guestID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"guestId": guestID}).Decode(&cart)
	if err != nil {
		return nil, mapErr(err)
	}
	return &cart, nil
}

// Save upserts the cart keyed by its owner.
func (r *MongoCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	filter := bson.M{}
	if cart.UserID != nil {
		filter["userId"] = *cart.UserID
	} else {
		filter["guestId"] = cart.GuestID
	}
	update := bson.M{"$set": bson.M{
		"items":     cart.Items,
		"updatedAt": cart.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"userId":    cart.UserID,
		"guestId":   cart.GuestID,
		"createdAt": cart.CreatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoCartRepository) DeleteByGuest(ctx context.Context, guestID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"guestId": guestID})
	return err
}

func (r *MongoCartRepository) ClearUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}}})
	return err
}
