package repositories

import (
	"context"

	"bakehouse-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WishlistRepository interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error)
	Save(ctx context.Context, wishlist *models.Wishlist) error
}

type MongoWishlistRepository struct {
	collection *mongo.Collection
}

func NewMongoWishlistRepository(db *mongo.Database) *MongoWishlistRepository {
	return &MongoWishlistRepository{collection: db.Collection("wishlists")}
}

func (r *MongoWishlistRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&wishlist)
	if err != nil {
		return nil, mapErr(err)
	}
	return &wishlist, nil
}

func (r *MongoWishlistRepository) Save(ctx context.Context, wishlist *models.Wishlist) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": wishlist.UserID},
		bson.M{"$set": bson.M{"items": wishlist.Items}, "$setOnInsert": bson.M{"userId": wishlist.UserID}},
		options.Update().SetUpsert(true))
	return err
}
