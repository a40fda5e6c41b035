package repositories

import (
	"context"
	"time"

	"bakehouse-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FlashSaleRepository interface {
	Create(ctx context.Context, sale *models.FlashSale) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FlashSale, error)
	List(ctx context.Context) ([]models.FlashSale, error)
	ListRunning(ctx context.Context, now time.Time) ([]models.FlashSale, error)
	Update(ctx context.Context, id primitive.ObjectID, sale *models.FlashSale) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementSold(ctx context.Context, saleID, itemID primitive.ObjectID, itemType models.ItemType, qty int) error
}

type MongoFlashSaleRepository struct {
	collection *mongo.Collection
}

func NewMongoFlashSaleRepository(db *mongo.Database) *MongoFlashSaleRepository {
	return &MongoFlashSaleRepository{collection: db.Collection("flashsales")}
}

func (r *MongoFlashSaleRepository) Create(ctx context.Context, sale *models.FlashSale) error {
	res, err := r.collection.InsertOne(ctx, sale)
	if err != nil {
		return err
	}
	sale.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoFlashSaleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FlashSale, error) {
	var sale models.FlashSale
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sale)
	if err != nil {
		return nil, mapErr(err)
	}
	return &sale, nil
}

func (r *MongoFlashSaleRepository) List(ctx context.Context) ([]models.FlashSale, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoFlashSaleRepository) ListRunning(ctx context.Context, now time.Time) ([]models.FlashSale, error) {
	return r.find(ctx, bson.M{
		"status":    models.FlashSaleActive,
		"startDate": bson.M{"$lte": now},
		"endDate":   bson.M{"$gt": now},
	})
}

func (r *MongoFlashSaleRepository) find(ctx context.Context, query bson.M) ([]models.FlashSale, error) {
	cur, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	var sales []models.FlashSale
	if err := cur.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *MongoFlashSaleRepository) Update(ctx context.Context, id primitive.ObjectID, sale *models.FlashSale) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, sale)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoFlashSaleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementSold bumps soldQuantity for one sale line. Remaining-quantity
// checks happen in the service before the write.
func (r *MongoFlashSaleRepository) IncrementSold(ctx context.Context, saleID, itemID primitive.ObjectID, itemType models.ItemType, qty int) error {
	field := "products"
	if itemType == models.ItemTypeIngredient {
		field = "ingredients"
	}
	filter := bson.M{
		"_id": saleID,
		field: bson.M{"$elemMatch": bson.M{"productId": itemID}},
	}
	res, err := r.collection.UpdateOne(ctx, filter,
		bson.M{"$inc": bson.M{field + ".$.soldQuantity": qty}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
