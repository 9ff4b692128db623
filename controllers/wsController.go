package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"go-food-delivery/pubsub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type WsController struct {
	hub *pubsub.Hub
}

func NewWsController(hub *pubsub.Hub) *WsController {
	return &WsController{hub: hub}
}

// HandleWebSocket upgrades the connection and services joinRoom/leaveRoom
// messages. A client joins the channel keyed by its own identifier and from
// then on receives the order events published to it.
func (ctl *WsController) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("Error during connection upgrade:", err)
			return
		}
		defer conn.Close()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				ctl.hub.Remove(conn)
				break
			}

			var message struct {
				Event   string `json:"event"`
				Payload string `json:"payload"`
			}
			if err := json.Unmarshal(raw, &message); err != nil {
				continue
			}

			switch message.Event {
			case "joinRoom":
				if message.Payload != "" {
					ctl.hub.Join(message.Payload, conn)
				}
			case "leaveRoom":
				if message.Payload != "" {
					ctl.hub.Leave(message.Payload, conn)
				}
			}
		}
	}
}
