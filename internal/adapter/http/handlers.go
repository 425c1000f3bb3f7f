package http

import (
	"net/http"
	"time"

	"lendcore-backend/internal/domain/identity"
	"lendcore-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// actor pulls the identity off the context; the identity middleware
// guarantees it is present on every guarded route.
func actor(c echo.Context) (identity.Actor, bool) {
	return middleware.ActorFrom(c)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing actor identity"})
}
