package repositories

import (
	"context"

	"bakehouse-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type IngredientRepository interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ingredient, error)
	List(ctx context.Context, filter CatalogFilter) ([]models.Ingredient, error)
	Update(ctx context.Context, id primitive.ObjectID, ingredient *models.Ingredient) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) error
	SetRating(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error
}

type MongoIngredientRepository struct {
	collection *mongo.Collection
}

func NewMongoIngredientRepository(db *mongo.Database) *MongoIngredientRepository {
	return &MongoIngredientRepository{collection: db.Collection("ingredients")}
}

func (r *MongoIngredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	res, err := r.collection.InsertOne(ctx, ingredient)
	if err != nil {
		return err
	}
	ingredient.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoIngredientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ingredient)
	if err != nil {
		return nil, mapErr(err)
	}
	return &ingredient, nil
}

func (r *MongoIngredientRepository) List(ctx context.Context, filter CatalogFilter) ([]models.Ingredient, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	cur, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	var ingredients []models.Ingredient
	if err := cur.All(ctx, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *MongoIngredientRepository) Update(ctx context.Context, id primitive.ObjectID, ingredient *models.Ingredient) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, ingredient)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoIngredientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoIngredientRepository) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"quantity": delta}})
	return err
}

func (r *MongoIngredientRepository) SetRating(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating, "numReviews": numReviews}})
	return err
}
