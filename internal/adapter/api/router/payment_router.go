package router

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/adapter/api/handler"
	"gemora/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	payments := e.Group("/v1/payments")
	payments.Use(authMiddleware.Authenticate())
	payments.POST("", paymentHandler.InitiatePayment)
	payments.GET("/:id", paymentHandler.GetPayment)
	payments.POST("/:id/verify", paymentHandler.VerifyCode)
	payments.POST("/:id/resend-code", paymentHandler.ResendCode)

	admin := e.Group("/v1/admin/payments")
	admin.Use(authMiddleware.Authenticate())
	admin.Use(adminMiddleware.RequireAdmin())
	admin.GET("", paymentHandler.ListPayments)
	admin.PUT("/:id/status", paymentHandler.UpdateStatus)
}
