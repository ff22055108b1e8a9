package router

import (
	"context"

	"fitness_chat_service/internal/api/handlers"
	"fitness_chat_service/internal/chat/app"
	"fitness_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes register chat REST routes and the socket channel
// @title Fitness Chat Service API
// @version 1.0
// @description Trainer and user chat persistence with a websocket relay
// @host localhost:8082
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func RegisterRoutes(r *fiber.App, chatHandler *handlers.ChatHandler, chatWebsocket *app.ChatWebsocketHandler) {
	r.Get("/swagger/*", swagger.HandlerDefault)
	r.Get("/", handlers.ConnectCheck)
	r.Post("/debug", handlers.DebugLogFlag)

	protect := middlewares.JWTMiddleware()

	chat := r.Group("/chat", protect)
	chat.Post("", chatHandler.CreateOrAppend)
	chat.Get("", chatHandler.GetChat)
	chat.Put("/message", chatHandler.UpdateMessage)
	chat.Put("/read", chatHandler.MarkRead)
	chat.Get("/trainer/:trainerId", chatHandler.ListTrainerChats)

	r.Get("/ws", protect, upgradeOnly, websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))
}

func upgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
