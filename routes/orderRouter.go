package routes

import (
	"go-food-delivery/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine, ctl *controllers.OrderController) {
	incomingRoutes.POST("/orders", ctl.CreateOrder())
	incomingRoutes.GET("/orders/:order_id", ctl.GetOrder())
	incomingRoutes.GET("/ordersbyuser/:user_id", ctl.GetOrdersByUser())
	incomingRoutes.GET("/ordersbyrestaurant/:restaurant_id", ctl.GetOrdersByRestaurant())
	incomingRoutes.GET("/ordersbypartner/:partner_id", ctl.GetOrdersByPartner())
	incomingRoutes.PATCH("/orders/:order_id/status", ctl.UpdateOrderStatus())
	incomingRoutes.PUT("/orders/:order_id/assign", ctl.AssignPartner())
}
