package router

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/adapter/api/handler"
)

// SetupDevRouter exposes local token minting. Never mount outside the
// development environment.
func SetupDevRouter(e *echo.Echo) {
	devTokenHandler := handler.GetDevTokenHandler()

	dev := e.Group("/v1/dev")
	dev.POST("/token", devTokenHandler.GenerateToken)
}
