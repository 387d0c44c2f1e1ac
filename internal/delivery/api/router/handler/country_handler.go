package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CountryHandlerParams holds dependencies for CountryHandler, injected by Fx.
type CountryHandlerParams struct {
	fx.In

	Countries service.CountryService
}

// CountryHandler serves the country dropdown data.
type CountryHandler struct {
	countries service.CountryService
}

func NewCountryHandler(params CountryHandlerParams) *CountryHandler {
	return &CountryHandler{countries: params.Countries}
}

func (h *CountryHandler) ListCountries(c echo.Context) error {
	countries, err := h.countries.Countries(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, countries)
}
