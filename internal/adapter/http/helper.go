package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerlend-backend/pkg/fault"
)

// writeFault maps the error taxonomy onto HTTP statuses. Invariant breaches
// surface as 500 so operators notice; everything unknown is also a 500.
func writeFault(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch fault.KindOf(err) {
	case fault.KindValidation:
		status = http.StatusUnprocessableEntity
	case fault.KindNotFound:
		status = http.StatusNotFound
	case fault.KindConflict:
		status = http.StatusConflict
	case fault.KindInvariant:
		c.Logger().Errorf("invariant breach: %v", err)
	default:
		c.Logger().Errorf("unhandled error: %v", err)
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
