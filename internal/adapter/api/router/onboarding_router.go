package router

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/adapter/api/handler"
	"gemora/internal/adapter/api/middleware"
)

func SetupOnboardingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	onboardingHandler := handler.GetOnboardingHandler()

	onboarding := e.Group("/v1/onboarding")
	onboarding.Use(authMiddleware.Authenticate())
	onboarding.POST("/documents", onboardingHandler.SubmitDocument)
	onboarding.POST("/documents/skip", onboardingHandler.SkipDocument)
	onboarding.PUT("/payout-method", onboardingHandler.RecordPayoutMethod)
	onboarding.POST("/registration-fee", onboardingHandler.SettleRegistrationFee)
	onboarding.GET("/activation", onboardingHandler.GetActivationStatus)

	admin := e.Group("/v1/admin/onboarding")
	admin.Use(authMiddleware.Authenticate())
	admin.Use(adminMiddleware.RequireAdmin())
	admin.POST("/documents/review", onboardingHandler.ReviewDocument)
}
