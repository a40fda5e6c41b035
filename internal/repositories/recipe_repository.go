package repositories

import (
	"context"

	"bakehouse-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RecipeFilter struct {
	Category    string
	Status      models.ItemStatus
	IsPublished *bool
	Query       string
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	Update(ctx context.Context, id primitive.ObjectID, recipe *models.Recipe) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Categories(ctx context.Context) ([]string, error)
}

type MongoRecipeRepository struct {
	collection *mongo.Collection
}

func NewMongoRecipeRepository(db *mongo.Database) *MongoRecipeRepository {
	return &MongoRecipeRepository{collection: db.Collection("recipes")}
}

func (r *MongoRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	res, err := r.collection.InsertOne(ctx, recipe)
	if err != nil {
		return err
	}
	recipe.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoRecipeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		return nil, mapErr(err)
	}
	return &recipe, nil
}

func (r *MongoRecipeRepository) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.IsPublished != nil {
		query["isPublished"] = *filter.IsPublished
	}
	if filter.Query != "" {
		query["name"] = bson.M{"$regex": filter.Query, "$options": "i"}
	}
	cur, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	var recipes []models.Recipe
	if err := cur.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *MongoRecipeRepository) Update(ctx context.Context, id primitive.ObjectID, recipe *models.Recipe) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, recipe)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRecipeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRecipeRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}
