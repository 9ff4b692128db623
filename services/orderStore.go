package services

import (
	"context"
	"errors"
	"time"

	"go-food-delivery/errs"
	"go-food-delivery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderStore is the persistence collaborator for orders. Implementations
// must guarantee per-document atomic updates and unique id generation on
// create; UpdateStatus is a compare-and-set on the current status so a lost
// concurrent write surfaces as a StoreConflict instead of silently winning.
type OrderStore interface {
	Create(ctx context.Context, items []models.OrderItem, total float64, userID string, restaurantID string) (*models.Order, error)
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error)
	FindByPartner(ctx context.Context, partnerID string) ([]models.Order, error)
	Update(ctx context.Context, orderID string, mutation map[string]interface{}) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, from string, to string) (*models.Order, error)
	AssignPartner(ctx context.Context, orderID string, partnerID string) (*models.Order, error)
	UpdateDeliveryDetails(ctx context.Context, orderID string, details models.DeliveryDetails) (*models.Order, error)
}

type MongoOrderStore struct {
	collection *mongo.Collection
}

func NewMongoOrderStore(collection *mongo.Collection) *MongoOrderStore {
	return &MongoOrderStore{collection: collection}
}

func (s *MongoOrderStore) Create(ctx context.Context, items []models.OrderItem, total float64, userID string, restaurantID string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, errs.NewValidationError("items")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, errs.NewValidationErrorWithCause("items", errors.New("quantity must be at least 1"))
		}
	}
	if total < 0 {
		return nil, errs.NewValidationError("total")
	}
	if userID == "" {
		return nil, errs.NewValidationError("user_id")
	}
	if restaurantID == "" {
		return nil, errs.NewValidationError("restaurant_id")
	}

	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	order := models.Order{
		ID:            primitive.NewObjectID(),
		Items:         items,
		Total:         total,
		Status:        models.StatusOrderPlaced,
		User_id:       &userID,
		Restaurant_id: &restaurantID,
		Created_at:    now,
		Updated_at:    now,
	}
	order.Order_id = order.ID.Hex()

	if _, err := s.collection.InsertOne(ctx, order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NewNotFoundError("order", orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *MongoOrderStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"restaurant_id": restaurantID})
}

func (s *MongoOrderStore) FindByPartner(ctx context.Context, partnerID string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"assigned_partner": partnerID})
}

func (s *MongoOrderStore) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoOrderStore) Update(ctx context.Context, orderID string, mutation map[string]interface{}) (*models.Order, error) {
	updateObj := bson.M{}
	for field, value := range mutation {
		updateObj[field] = value
	}
	updateObj["updated_at"] = time.Now()

	return s.findOneAndUpdate(ctx, bson.M{"order_id": orderID}, bson.M{"$set": updateObj}, orderID)
}

func (s *MongoOrderStore) UpdateStatus(ctx context.Context, orderID string, from string, to string) (*models.Order, error) {
	filter := bson.M{"order_id": orderID, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}

	updated, err := s.findOneAndUpdate(ctx, filter, update, orderID)
	if errors.Is(err, errs.ErrNotFound) {
		// The order may exist with a different status: that is a lost race,
		// not a missing document.
		if _, getErr := s.GetByID(ctx, orderID); getErr == nil {
			return nil, errs.NewStoreConflictError(orderID)
		}
		return nil, err
	}
	return updated, err
}

func (s *MongoOrderStore) AssignPartner(ctx context.Context, orderID string, partnerID string) (*models.Order, error) {
	update := bson.M{"$set": bson.M{"assigned_partner": partnerID, "updated_at": time.Now()}}
	return s.findOneAndUpdate(ctx, bson.M{"order_id": orderID}, update, orderID)
}

func (s *MongoOrderStore) UpdateDeliveryDetails(ctx context.Context, orderID string, details models.DeliveryDetails) (*models.Order, error) {
	update := bson.M{"$set": bson.M{"delivery_details": details, "updated_at": time.Now()}}
	return s.findOneAndUpdate(ctx, bson.M{"order_id": orderID}, update, orderID)
}

func (s *MongoOrderStore) findOneAndUpdate(ctx context.Context, filter bson.M, update bson.M, orderID string) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, errs.NewNotFoundError("order", orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
