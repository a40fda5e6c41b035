package repositories

import (
	"context"

	"bakehouse-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewFilter struct {
	Product  *primitive.ObjectID
	ItemType models.ItemType
	Status   models.ReviewStatus
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	GetByOrderItem(ctx context.Context, orderID, productID primitive.ObjectID, itemType models.ItemType) (*models.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]models.Review, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReviewStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoReviewRepository struct {
	collection *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{collection: db.Collection("reviews")}
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	res, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	review.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		return nil, mapErr(err)
	}
	return &review, nil
}

func (r *MongoReviewRepository) GetByOrderItem(ctx context.Context, orderID, productID primitive.ObjectID, itemType models.ItemType) (*models.Review, error) {
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{
		"order":    orderID,
		"product":  productID,
		"itemType": itemType,
	}).Decode(&review)
	if err != nil {
		return nil, mapErr(err)
	}
	return &review, nil
}

func (r *MongoReviewRepository) List(ctx context.Context, filter ReviewFilter) ([]models.Review, error) {
	query := bson.M{}
	if filter.Product != nil {
		query["product"] = *filter.Product
	}
	if filter.ItemType != "" {
		query["itemType"] = filter.ItemType
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cur, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *MongoReviewRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReviewStatus) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
