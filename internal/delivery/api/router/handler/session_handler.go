package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
}

// SessionHandler signs users in and out of the storefront.
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
}

func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{sessionUC: params.SessionUC}
}

// LoginRequest carries either a bearer token or account credentials.
type LoginRequest struct {
	Token    string `json:"token" validate:"required_without=Email"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"required_with=Email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128"`
}

func (h *SessionHandler) Login(c echo.Context) error {
	var req LoginRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	ctx := c.Request().Context()
	var (
		session *entity.Session
		err     error
	)
	if req.Token != "" {
		session, err = h.sessionUC.Login(ctx, req.Token)
	} else {
		session, err = h.sessionUC.LoginWithPassword(ctx, req.Email, req.Password)
	}
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session)
}

func (h *SessionHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	if err := h.sessionUC.ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteAccount removes the account and ends the session.
func (h *SessionHandler) DeleteAccount(c echo.Context) error {
	if err := h.sessionUC.DeleteAccount(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessionUC.Logout(c.Request().Context())

	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, session)
}

func (h *SessionHandler) Me(c echo.Context) error {
	user, err := h.sessionUC.Me(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}
