package routes

import (
	"go-food-delivery/controllers"

	"github.com/gin-gonic/gin"
)

func WsRoutes(incomingRoutes *gin.Engine, ctl *controllers.WsController) {
	incomingRoutes.GET("/ws", ctl.HandleWebSocket())
}
