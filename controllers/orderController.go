package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-food-delivery/errs"
	"go-food-delivery/models"
	"go-food-delivery/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
)

var validate *validator.Validate = validator.New()

// OrderTransitioner applies a validated status change. Implemented by
// services.TransitionEngine.
type OrderTransitioner interface {
	Transition(ctx context.Context, orderID string, target string, actorID string) (*models.Order, error)
}

// PartnerAssigner attaches a delivery partner to an order. Implemented by
// services.AssignmentService.
type PartnerAssigner interface {
	Assign(ctx context.Context, orderID string, partnerID string) (*models.Order, error)
}

type OrderController struct {
	store    services.OrderStore
	engine   OrderTransitioner
	assigner PartnerAssigner
	notifier services.OrderNotifier
}

func NewOrderController(store services.OrderStore, engine OrderTransitioner, assigner PartnerAssigner, notifier services.OrderNotifier) *OrderController {
	return &OrderController{
		store:    store,
		engine:   engine,
		assigner: assigner,
		notifier: notifier,
	}
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrStoreConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (ctl *OrderController) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var order models.Order
		if err := c.BindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&order); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		created, err := ctl.store.Create(ctx, order.Items, order.Total, *order.User_id, *order.Restaurant_id)
		if err != nil {
			c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
			return
		}

		ctl.notifier.NotifyOrderCreated(*created)
		c.JSON(http.StatusCreated, created)
	}
}

func (ctl *OrderController) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		order, err := ctl.store.GetByID(ctx, c.Param("order_id"))
		if err != nil {
			c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (ctl *OrderController) GetOrdersByUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := ctl.store.FindByUser(ctx, c.Param("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (ctl *OrderController) GetOrdersByRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := ctl.store.FindByRestaurant(ctx, c.Param("restaurant_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (ctl *OrderController) GetOrdersByPartner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := ctl.store.FindByPartner(ctx, c.Param("partner_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// UpdateOrderStatus is the restaurant-dashboard transition: no actor, the
// engine decides whether the requested edge is legal.
func (ctl *OrderController) UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Status string `json:"status"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if body.Status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		order, err := ctl.engine.Transition(ctx, c.Param("order_id"), body.Status, "")
		if err != nil {
			c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (ctl *OrderController) AssignPartner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Partner_id string `json:"partner_id"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := ctl.assigner.Assign(ctx, c.Param("order_id"), body.Partner_id)
		if err != nil {
			c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
