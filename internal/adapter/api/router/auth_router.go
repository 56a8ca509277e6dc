package router

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/adapter/api/handler"
	"gemora/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	me := e.Group("/v1/auth")
	me.Use(authMiddleware.Authenticate())
	me.GET("/me", authHandler.Me)
}
