package router

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/adapter/api/handler"
	"gemora/internal/adapter/api/middleware"
)

func SetupSocketRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	socketHandler := handler.GetSocketHandler()

	ws := e.Group("/v1/ws")
	ws.Use(authMiddleware.Authenticate())
	ws.GET("/notifications", socketHandler.HandleSocket)
}
