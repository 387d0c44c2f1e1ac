// Package handler contains the HTTP handlers of the storefront API.
package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/delivery/api/validator"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
)

// bind decodes and validates the request body into req. When it returns
// false the error response has already been written and err is what the
// handler must return.
func bind(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, "INVALID_INPUT", "Request body could not be read")
	}

	if err := c.Validate(req); err != nil {
		var validationErr *validator.ValidationError
		if errors.As(err, &validationErr) {
			return false, response.ValidationFailed(c, validationErr.Fields)
		}

		return false, errors.WithStack(err)
	}

	return true, nil
}

// currentSession returns the session set by the session middleware.
func currentSession(c echo.Context) (*entity.Session, error) {
	session, ok := deliverycontext.GetSession(c)
	if !ok {
		return nil, domainerrors.ErrNotLoggedIn
	}

	return session, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
