package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle statuses. These exact strings are stored in the database
// and exchanged with clients over the REST and websocket surfaces.
const (
	StatusOrderPlaced    = "OrderPlaced"
	StatusAccepted       = "Accepted"
	StatusPreparing      = "Preparing"
	StatusReadyForPickup = "ReadyForPickup"
	StatusPickedUp       = "PickedUp"
	StatusOnTheWay       = "OnTheWay"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
	StatusRejected       = "Rejected"
)

type OrderItem struct {
	Product_id string  `json:"product_id" validate:"required"`
	Name       string  `json:"name"`
	Unit_price float64 `json:"unit_price" validate:"gte=0"`
	Quantity   int     `json:"quantity" validate:"required,min=1"`
	Image      *string `json:"image"`
}

type DeliveryDetails struct {
	Eta      *string `json:"eta"`
	Location *string `json:"location"`
}

type Order struct {
	ID               primitive.ObjectID `bson:"_id"`
	Order_id         string             `json:"order_id"`
	Items            []OrderItem        `json:"items" validate:"required,min=1,dive"`
	Total            float64            `json:"total" validate:"gte=0"`
	Status           string             `json:"status"`
	User_id          *string            `json:"user_id" validate:"required"`
	Restaurant_id    *string            `json:"restaurant_id" validate:"required"`
	Assigned_partner *string            `json:"assigned_partner"` // null until a partner is assigned, never cleared
	Delivery_details *DeliveryDetails   `json:"delivery_details"`
	Created_at       time.Time          `json:"created_at"`
	Updated_at       time.Time          `json:"updated_at"`
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusOrderPlaced, StatusAccepted, StatusPreparing, StatusReadyForPickup,
		StatusPickedUp, StatusOnTheWay, StatusDelivered, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// IsTerminalStatus reports whether status has no outgoing transitions.
func IsTerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled || status == StatusRejected
}
