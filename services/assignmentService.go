package services

import (
	"context"

	"go-food-delivery/errs"
	"go-food-delivery/models"
)

// AssignmentService attaches a delivery partner to an order and notifies the
// interested parties. A partner may hold any number of orders at once.
type AssignmentService struct {
	store                  OrderStore
	notifier               OrderNotifier
	allowReassignInTransit bool
}

func NewAssignmentService(store OrderStore, notifier OrderNotifier, allowReassignInTransit bool) *AssignmentService {
	return &AssignmentService{
		store:                  store,
		notifier:               notifier,
		allowReassignInTransit: allowReassignInTransit,
	}
}

// Assign sets partnerID as the order's delivery partner. Terminal orders are
// never assignable; replacing the partner on an order already PickedUp or
// OnTheWay is allowed only when the service was built with
// allowReassignInTransit.
func (s *AssignmentService) Assign(ctx context.Context, orderID string, partnerID string) (*models.Order, error) {
	if partnerID == "" {
		return nil, errs.NewValidationError("partner_id")
	}

	order, err := s.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if models.IsTerminalStatus(order.Status) {
		return nil, errs.NewInvalidTransitionError(order.Status, "")
	}
	if !s.allowReassignInTransit && order.Assigned_partner != nil && *order.Assigned_partner != partnerID {
		if order.Status == models.StatusPickedUp || order.Status == models.StatusOnTheWay {
			return nil, errs.NewInvalidTransitionError(order.Status, "")
		}
	}

	updated, err := s.store.AssignPartner(ctx, orderID, partnerID)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyAssignment(*updated)
	return updated, nil
}
