package services_test

import (
	"context"
	"sync"

	"go-food-delivery/errs"
	"go-food-delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeOrderStore is an in-memory OrderStore with the same compare-and-set
// semantics as the mongo implementation. conflictOnce makes the next
// UpdateStatus lose the race: the "concurrent writer" flips the order to
// conflictStatus and the call reports a StoreConflict.
type fakeOrderStore struct {
	mu             sync.Mutex
	orders         map[string]*models.Order
	conflictOnce   bool
	conflictStatus string
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderStore) seed(order models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.Order_id] = &order
}

func (f *fakeOrderStore) Create(ctx context.Context, items []models.OrderItem, total float64, userID string, restaurantID string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, errs.NewValidationError("items")
	}
	order := models.Order{
		ID:            primitive.NewObjectID(),
		Items:         items,
		Total:         total,
		Status:        models.StatusOrderPlaced,
		User_id:       &userID,
		Restaurant_id: &restaurantID,
	}
	order.Order_id = order.ID.Hex()
	f.seed(order)
	return &order, nil
}

func (f *fakeOrderStore) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, errs.NewNotFoundError("order", orderID)
	}
	snapshot := *order
	return &snapshot, nil
}

func (f *fakeOrderStore) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return f.find(func(o *models.Order) bool { return o.User_id != nil && *o.User_id == userID })
}

func (f *fakeOrderStore) FindByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return f.find(func(o *models.Order) bool { return o.Restaurant_id != nil && *o.Restaurant_id == restaurantID })
}

func (f *fakeOrderStore) FindByPartner(ctx context.Context, partnerID string) ([]models.Order, error) {
	return f.find(func(o *models.Order) bool { return o.Assigned_partner != nil && *o.Assigned_partner == partnerID })
}

func (f *fakeOrderStore) find(match func(*models.Order) bool) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []models.Order
	for _, order := range f.orders {
		if match(order) {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (f *fakeOrderStore) Update(ctx context.Context, orderID string, mutation map[string]interface{}) (*models.Order, error) {
	return f.GetByID(ctx, orderID)
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, orderID string, from string, to string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, errs.NewNotFoundError("order", orderID)
	}
	if f.conflictOnce {
		f.conflictOnce = false
		order.Status = f.conflictStatus
		return nil, errs.NewStoreConflictError(orderID)
	}
	if order.Status != from {
		return nil, errs.NewStoreConflictError(orderID)
	}
	order.Status = to
	snapshot := *order
	return &snapshot, nil
}

func (f *fakeOrderStore) AssignPartner(ctx context.Context, orderID string, partnerID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, errs.NewNotFoundError("order", orderID)
	}
	order.Assigned_partner = &partnerID
	snapshot := *order
	return &snapshot, nil
}

func (f *fakeOrderStore) UpdateDeliveryDetails(ctx context.Context, orderID string, details models.DeliveryDetails) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, errs.NewNotFoundError("order", orderID)
	}
	order.Delivery_details = &details
	snapshot := *order
	return &snapshot, nil
}

// fakeNotifier records fan-out calls synchronously.
type fakeNotifier struct {
	mu              sync.Mutex
	created         []models.Order
	statusChanges   []models.Order
	assignments     []models.Order
	deliveryUpdates []models.Order
}

func (f *fakeNotifier) NotifyOrderCreated(order models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, order)
}

func (f *fakeNotifier) NotifyStatusChange(order models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusChanges = append(f.statusChanges, order)
}

func (f *fakeNotifier) NotifyAssignment(order models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignments = append(f.assignments, order)
}

func (f *fakeNotifier) NotifyDeliveryUpdate(order models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveryUpdates = append(f.deliveryUpdates, order)
}

func strptr(s string) *string {
	return &s
}

func testOrder(orderID string, status string) models.Order {
	return models.Order{
		Order_id:      orderID,
		Items:         []models.OrderItem{{Product_id: "p1", Name: "Margherita", Unit_price: 9.5, Quantity: 1}},
		Total:         9.5,
		Status:        status,
		User_id:       strptr("user-1"),
		Restaurant_id: strptr("restaurant-1"),
	}
}
