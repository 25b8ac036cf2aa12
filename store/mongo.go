package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodiehub/models"
)

// NewID returns a fresh opaque record identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

func mongoErr(err error) error {
	return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
}

type MongoUsers struct {
	collection *mongo.Collection
}

func NewMongoUsers(collection *mongo.Collection) *MongoUsers {
	return &MongoUsers{collection: collection}
}

func (s *MongoUsers) Insert(ctx context.Context, user *models.User) error {
	email := strings.ToLower(user.Email)
	count, err := s.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return mongoErr(err)
	}
	if count > 0 {
		return fmt.Errorf("%w: email already registered", models.ErrConflict)
	}
	user.Email = email
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
		return mongoErr(err)
	}
	return nil
}

func (s *MongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, mongoErr(err)
	}
	return &user, nil
}

func (s *MongoUsers) FindByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, mongoErr(err)
	}
	return &user, nil
}

type MongoMenuItems struct {
	collection *mongo.Collection
}

func NewMongoMenuItems(collection *mongo.Collection) *MongoMenuItems {
	return &MongoMenuItems{collection: collection}
}

func (s *MongoMenuItems) Insert(ctx context.Context, item *models.MenuItem) error {
	if _, err := s.collection.InsertOne(ctx, item); err != nil {
		return mongoErr(err)
	}
	return nil
}

func (s *MongoMenuItems) FindByID(ctx context.Context, itemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.collection.FindOne(ctx, bson.M{"item_id": itemID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, mongoErr(err)
	}
	return &item, nil
}

func (s *MongoMenuItems) List(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, mongoErr(err)
	}
	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, mongoErr(err)
	}
	return items, nil
}

type MongoOrders struct {
	collection *mongo.Collection
}

func NewMongoOrders(collection *mongo.Collection) *MongoOrders {
	return &MongoOrders{collection: collection}
}

var orderSort = bson.D{{Key: "created_at", Value: -1}, {Key: "order_id", Value: -1}}

func (s *MongoOrders) Insert(ctx context.Context, order *models.Order) error {
	if _, err := s.collection.InsertOne(ctx, order); err != nil {
		return mongoErr(err)
	}
	return nil
}

func (s *MongoOrders) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, mongoErr(err)
	}
	return &order, nil
}

func (s *MongoOrders) AppendStatus(ctx context.Context, orderID string, expected models.OrderStatus, change models.StatusChange) (*models.Order, error) {
	filter := bson.M{"order_id": orderID, "status": expected}
	update := bson.M{
		"$set":  bson.M{"status": change.Status},
		"$push": bson.M{"status_history": change},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, mongoErr(err)
	}
	// The conditional update missed: either the order is gone or another
	// writer advanced it first.
	if _, findErr := s.FindByID(ctx, orderID); findErr != nil {
		return nil, findErr
	}
	return nil, fmt.Errorf("%w: order status changed concurrently", models.ErrConflict)
}

func (s *MongoOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

func (s *MongoOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *MongoOrders) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(orderSort))
	if err != nil {
		return nil, mongoErr(err)
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, mongoErr(err)
	}
	return orders, nil
}
