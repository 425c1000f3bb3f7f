package http

import (
	"net/http"

	"lendcore-backend/internal/domain/apperror"

	"github.com/labstack/echo/v4"
)

// respondError maps the domain error taxonomy onto HTTP status codes.
// Validation failures carry the offending field when the usecase named one.
func respondError(c echo.Context, err error) error {
	ae := apperror.From(err)

	var details []FieldError
	if ae.Field != "" {
		details = []FieldError{{Field: ae.Field, Message: ae.Message}}
	}
	body := ErrorResponse{Error: ae.Message, Details: details}

	switch ae.Kind {
	case apperror.KindValidation:
		return c.JSON(http.StatusUnprocessableEntity, body)
	case apperror.KindNotFound:
		return c.JSON(http.StatusNotFound, body)
	case apperror.KindConflict:
		return c.JSON(http.StatusConflict, body)
	case apperror.KindDependency:
		return c.JSON(http.StatusBadGateway, body)
	default:
		return c.JSON(http.StatusInternalServerError, body)
	}
}
