package router

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/adapter/api/handler"
	"gemora/internal/adapter/api/middleware"
)

func SetupDepositRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	depositHandler := handler.GetDepositHandler()

	deposits := e.Group("/v1/deposits")
	deposits.Use(authMiddleware.Authenticate())
	deposits.POST("", depositHandler.RecordDeposit)
	deposits.GET("/:id", depositHandler.GetDeposit)

	admin := e.Group("/v1/admin/deposits")
	admin.Use(authMiddleware.Authenticate())
	admin.Use(adminMiddleware.RequireAdmin())
	admin.GET("", depositHandler.ListDeposits)
	admin.PUT("/:id/status", depositHandler.ReviewDeposit)
}
