package middleware

import (
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware guards routes that need a signed-in user.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
}

func NewSessionMiddleware(sessions usecase.SessionUsecase) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireSession rejects the request with ErrNotLoggedIn when nobody is signed in.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := m.sessions.Current()
		if err != nil {
			return err
		}
		deliverycontext.SetSession(c, session)

		return next(c)
	}
}
