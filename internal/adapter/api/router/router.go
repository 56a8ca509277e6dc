package router

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, environment string) {
	SetupAuthRouter(e, authMiddleware)
	SetupListingRouter(e, authMiddleware, adminMiddleware)
	SetupPaymentRouter(e, authMiddleware, adminMiddleware)
	SetupDepositRouter(e, authMiddleware, adminMiddleware)
	SetupOnboardingRouter(e, authMiddleware, adminMiddleware)
	SetupFileRouter(e, authMiddleware)
	SetupSocketRouter(e, authMiddleware)
	SetupHealthRouter(e)

	if environment == "development" {
		SetupDevRouter(e)
	}
}
