package services

import (
	"log"

	"go-food-delivery/models"
)

// Publisher is the pub/sub collaborator. Publishes carry no delivery
// guarantee; channels are plain string identifiers keyed by party id.
type Publisher interface {
	Publish(channel string, event string, payload interface{}) error
	Broadcast(event string, payload interface{}) error
}

// OrderNotifier is what the engine and the assignment manager see of the
// fan-out. All methods are fire-and-forget.
type OrderNotifier interface {
	NotifyOrderCreated(order models.Order)
	NotifyStatusChange(order models.Order)
	NotifyAssignment(order models.Order)
	NotifyDeliveryUpdate(order models.Order)
}

// Notifier fans an order event out to every interested party, one publish
// per recipient channel. Publishing happens off the caller's goroutine and
// failures are logged only: the store is the source of truth and a missed
// push never rolls back a committed mutation.
type Notifier struct {
	pub Publisher
}

func NewNotifier(pub Publisher) *Notifier {
	return &Notifier{pub: pub}
}

// NotifyOrderCreated tells the restaurant a new order landed.
func (n *Notifier) NotifyOrderCreated(order models.Order) {
	go func() {
		if err := n.pub.Publish(*order.Restaurant_id, "newOrder", order); err != nil {
			log.Println("Error publishing newOrder:", err)
		}
	}()
}

// NotifyStatusChange pushes the updated order to the customer, the
// restaurant, and the assigned partner if one is set.
func (n *Notifier) NotifyStatusChange(order models.Order) {
	go n.fanOutStatusChange(order)
}

func (n *Notifier) fanOutStatusChange(order models.Order) {
	for _, channel := range statusChangeRecipients(order) {
		if err := n.pub.Publish(channel, "orderUpdated", order); err != nil {
			log.Println("Error publishing orderUpdated:", err)
		}
	}
}

// NotifyAssignment tells the newly assigned partner about its order and
// broadcasts the update for general observers.
func (n *Notifier) NotifyAssignment(order models.Order) {
	go n.fanOutAssignment(order)
}

func (n *Notifier) fanOutAssignment(order models.Order) {
	if order.Assigned_partner != nil {
		if err := n.pub.Publish(*order.Assigned_partner, "newOrder", order); err != nil {
			log.Println("Error publishing newOrder:", err)
		}
	}
	if err := n.pub.Broadcast("orderUpdated", order); err != nil {
		log.Println("Error broadcasting orderUpdated:", err)
	}
}

// NotifyDeliveryUpdate pushes an eta/location change to the customer.
func (n *Notifier) NotifyDeliveryUpdate(order models.Order) {
	go func() {
		if err := n.pub.Publish(*order.User_id, "orderUpdated", order); err != nil {
			log.Println("Error publishing orderUpdated:", err)
		}
	}()
}

func statusChangeRecipients(order models.Order) []string {
	recipients := []string{*order.User_id, *order.Restaurant_id}
	if order.Assigned_partner != nil {
		recipients = append(recipients, *order.Assigned_partner)
	}
	return recipients
}
