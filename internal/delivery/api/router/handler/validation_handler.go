package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/validation"

	"github.com/labstack/echo/v4"
)

// ValidationHandler lets forms check a field before submitting it. A valid
// value answers 200, an invalid one answers 400 with the reason per field.
type ValidationHandler struct{}

func NewValidationHandler() *ValidationHandler {
	return &ValidationHandler{}
}

type CardNumberRequest struct {
	Number string `json:"number" validate:"required,luhn"`
}

type ExpiryRequest struct {
	Expiry string `json:"expiry" validate:"required,card_expiry"`
}

type CVVRequest struct {
	Number string `json:"number"`
	CVV    string `json:"cvv" validate:"required,card_cvv=Number"`
}

type MobileMoneyRequest struct {
	Network string `json:"network" validate:"required,oneof=MTN Vodafone AirtelTigo"`
	Phone   string `json:"phone" validate:"required,momo_network=Network"`
}

type IDDocumentRequest struct {
	Number  string `json:"number" validate:"required,id_document=Type Country"`
	Type    string `json:"type" validate:"required,oneof=national_id passport drivers_license ssn other"`
	Country string `json:"country" validate:"required"`
}

type PhoneRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

type cardCheckResponse struct {
	Valid bool               `json:"valid"`
	Type  entity.PaymentType `json:"type"`
	Last4 string             `json:"last4"`
}

type checkResponse struct {
	Valid bool `json:"valid"`
}

func (h *ValidationHandler) Card(c echo.Context) error {
	var req CardNumberRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	return response.Success(c, http.StatusOK, cardCheckResponse{
		Valid: true,
		Type:  validation.DetectCardType(req.Number),
		Last4: validation.Last4(req.Number),
	})
}

func (h *ValidationHandler) Expiry(c echo.Context) error {
	return check(c, &ExpiryRequest{})
}

func (h *ValidationHandler) CVV(c echo.Context) error {
	return check(c, &CVVRequest{})
}

// MobileMoney also reports which network the number belongs to.
func (h *ValidationHandler) MobileMoney(c echo.Context) error {
	var req MobileMoneyRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	network, _ := validation.NetworkForPhone(req.Phone)

	return response.Success(c, http.StatusOK, map[string]any{
		"valid":   true,
		"network": network,
	})
}

func (h *ValidationHandler) IDDocument(c echo.Context) error {
	return check(c, &IDDocumentRequest{})
}

func (h *ValidationHandler) Phone(c echo.Context) error {
	return check(c, &PhoneRequest{})
}

func check(c echo.Context, req any) error {
	if ok, err := bind(c, req); !ok {
		return err
	}

	return response.Success(c, http.StatusOK, checkResponse{Valid: true})
}
