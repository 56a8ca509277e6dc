package handler

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/usecase"
)

// actorFrom resolves the request's actor. Requests that never passed an auth
// middleware resolve to the anonymous actor.
func actorFrom(c echo.Context, authUseCase *usecase.AuthUseCase) (usecase.Actor, error) {
	uid, _ := c.Get("uid").(string)
	return authUseCase.ActorFor(c.Request().Context(), uid)
}
