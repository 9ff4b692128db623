package controllers

import (
	"context"
	"net/http"
	"time"

	"go-food-delivery/models"
	"go-food-delivery/services"

	"github.com/gin-gonic/gin"
)

// PartnerController serves the delivery-partner side of the order flow.
// Every status change goes through the transition engine with the partner id
// as the acting party, so a partner can never move an order that is assigned
// to somebody else.
type PartnerController struct {
	store    services.OrderStore
	engine   OrderTransitioner
	notifier services.OrderNotifier
}

func NewPartnerController(store services.OrderStore, engine OrderTransitioner, notifier services.OrderNotifier) *PartnerController {
	return &PartnerController{
		store:    store,
		engine:   engine,
		notifier: notifier,
	}
}

func (ctl *PartnerController) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := ctl.store.FindByPartner(ctx, c.Param("partner_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing partner orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (ctl *PartnerController) UpdateStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Status     string `json:"status"`
			Partner_id string `json:"partner_id"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if body.Status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		order, err := ctl.engine.Transition(ctx, c.Param("order_id"), body.Status, body.Partner_id)
		if err != nil {
			c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// MarkDelivered is a shorthand for the final transition.
func (ctl *PartnerController) MarkDelivered() gin.HandlerFunc {
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

		order, err := ctl.engine.Transition(ctx, c.Param("order_id"), models.StatusDelivered, body.Partner_id)
		if err != nil {
			c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// UpdateDeliveryDetails records the partner's eta and current location and
// pushes the change to the customer.
func (ctl *PartnerController) UpdateDeliveryDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Eta      *string `json:"eta"`
			Location *string `json:"location"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		details := models.DeliveryDetails{Eta: body.Eta, Location: body.Location}
		order, err := ctl.store.UpdateDeliveryDetails(ctx, c.Param("order_id"), details)
		if err != nil {
			c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
			return
		}

		ctl.notifier.NotifyDeliveryUpdate(*order)
		c.JSON(http.StatusOK, order)
	}
}
