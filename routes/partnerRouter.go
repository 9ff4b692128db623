package routes

import (
	"go-food-delivery/controllers"

	"github.com/gin-gonic/gin"
)

func PartnerRoutes(incomingRoutes *gin.Engine, ctl *controllers.PartnerController) {
	incomingRoutes.GET("/partners/:partner_id/orders", ctl.GetOrders())
	incomingRoutes.PATCH("/partnerorders/:order_id/status", ctl.UpdateStatus())
	incomingRoutes.PUT("/partnerorders/:order_id/deliver", ctl.MarkDelivered())
	incomingRoutes.PATCH("/partnerorders/:order_id/delivery", ctl.UpdateDeliveryDetails())
}
