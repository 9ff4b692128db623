package main

import (
	"log"
	"time"

	"go-food-delivery/config"
	"go-food-delivery/controllers"
	"go-food-delivery/database"
	"go-food-delivery/pubsub"
	"go-food-delivery/routes"
	"go-food-delivery/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	orderCollection := database.OpenCollection(database.Client, "order")
	store := services.NewMongoOrderStore(orderCollection)

	hub := pubsub.NewHub()
	notifier := services.NewNotifier(hub)
	engine := services.NewTransitionEngine(store, notifier, cfg.RetryOnConflict)
	assigner := services.NewAssignmentService(store, notifier, cfg.AllowReassignInTransit)

	router := gin.New()
	router.Use(gin.Logger())

	// Enable CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.OrderRoutes(router, controllers.NewOrderController(store, engine, assigner, notifier))
	routes.PartnerRoutes(router, controllers.NewPartnerController(store, engine, notifier))
	routes.WsRoutes(router, controllers.NewWsController(hub))

	log.Println("Server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
