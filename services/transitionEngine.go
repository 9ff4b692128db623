package services

import (
	"context"
	"errors"

	"go-food-delivery/errs"
	"go-food-delivery/models"
)

// transitions is the single shared table of legal status edges. Terminal
// statuses map to an empty set; a transition to the current status is never
// legal.
var transitions = map[string][]string{
	models.StatusOrderPlaced:    {models.StatusAccepted, models.StatusRejected, models.StatusCancelled},
	models.StatusAccepted:       {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:      {models.StatusReadyForPickup, models.StatusCancelled},
	models.StatusReadyForPickup: {models.StatusPickedUp},
	models.StatusPickedUp:       {models.StatusOnTheWay},
	models.StatusOnTheWay:       {models.StatusDelivered},
	models.StatusDelivered:      {},
	models.StatusCancelled:      {},
	models.StatusRejected:       {},
}

// CanTransition reports whether target is reachable from current in one step.
func CanTransition(current string, target string) bool {
	for _, next := range transitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

// AuthorizeActor is the capability check guarding partner-initiated
// transitions, kept separate from transition validation so the two concerns
// stay independently testable. An empty actor means the caller is not
// claiming to be a partner; an order with no assigned partner gates nobody.
func AuthorizeActor(order *models.Order, actorID string) error {
	if actorID == "" || order.Assigned_partner == nil {
		return nil
	}
	if *order.Assigned_partner != actorID {
		return errs.NewForbiddenError(actorID)
	}
	return nil
}

// TransitionEngine validates and applies order status changes, then hands
// the updated order to the notifier. Collaborators are injected at
// construction, never looked up from globals.
type TransitionEngine struct {
	store           OrderStore
	notifier        OrderNotifier
	retryOnConflict bool
}

func NewTransitionEngine(store OrderStore, notifier OrderNotifier, retryOnConflict bool) *TransitionEngine {
	return &TransitionEngine{
		store:           store,
		notifier:        notifier,
		retryOnConflict: retryOnConflict,
	}
}

// Transition moves the order identified by orderID to target. actorID is the
// party claiming the action; pass "" for transitions not initiated by a
// delivery partner. On success the updated order is returned and the fan-out
// is triggered; fan-out failures never surface here since the store mutation
// already committed.
func (e *TransitionEngine) Transition(ctx context.Context, orderID string, target string, actorID string) (*models.Order, error) {
	if !models.IsValidStatus(target) {
		return nil, errs.NewValidationError("status")
	}

	order, err := e.store.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	updated, err := e.apply(ctx, order, target, actorID)
	if errors.Is(err, errs.ErrStoreConflict) && e.retryOnConflict {
		// One re-read and re-validate against whatever the concurrent writer
		// left behind; a now-illegal edge is rejected rather than retried
		// again.
		order, err = e.store.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		updated, err = e.apply(ctx, order, target, actorID)
	}
	if err != nil {
		return nil, err
	}

	e.notifier.NotifyStatusChange(*updated)
	return updated, nil
}

func (e *TransitionEngine) apply(ctx context.Context, order *models.Order, target string, actorID string) (*models.Order, error) {
	if err := AuthorizeActor(order, actorID); err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, target) {
		return nil, errs.NewInvalidTransitionError(order.Status, target)
	}
	return e.store.UpdateStatus(ctx, order.Order_id, order.Status, target)
}
