package main

import (
	"errors"
	"net/http"

	"ProjectDesk/internal/middleware"
	"ProjectDesk/internal/model"
	"ProjectDesk/internal/services"
	"ProjectDesk/internal/token"

	"github.com/labstack/echo/v4"
)

// sessionEstablisher sets the authenticated session on the response.
// *middleware.SessionManager implements it; tests substitute a fake
// to drive the rejection path.
type sessionEstablisher interface {
	Establish(c echo.Context, u *model.User) error
}

func registerLoginRoutes(e *echo.Echo, ls *services.LoginService, sessions sessionEstablisher) {

	e.GET("/users_login", func(c echo.Context) error {
		return c.Render(http.StatusOK, "login.html", map[string]interface{}{
			"Session": middleware.GetClaims(c),
		})
	})

	e.POST("/send-login-link", func(c echo.Context) error {
		err := ls.RequestLink(c.Request().Context(), c.FormValue("email"))
		switch {
		case err == nil:
			return c.String(http.StatusOK, "Check your email for a sign-in link.")
		case errors.Is(err, services.ErrEmailRequired):
			return c.String(http.StatusBadRequest, "Email address is required.")
		default:
			return c.String(http.StatusInternalServerError, "Could not send the sign-in link. Try again later.")
		}
	})

	e.GET("/login/:token", func(c echo.Context) error {
		u, err := ls.VerifyLink(c.Request().Context(), c.Param("token"))
		if err != nil {
			// Broad categories only; no detail about why the link failed.
			switch {
			case errors.Is(err, token.ErrExpired):
				return c.String(http.StatusBadRequest, "This sign-in link has expired. Request a new one.")
			case errors.Is(err, token.ErrInvalid),
				errors.Is(err, token.ErrMalformed),
				errors.Is(err, services.ErrUserNotFound):
				return c.String(http.StatusBadRequest, "This sign-in link is not valid.")
			default:
				return echo.NewHTTPError(http.StatusInternalServerError, "could not verify the sign-in link")
			}
		}

		if err := sessions.Establish(c, u); err != nil {
			return c.String(http.StatusBadRequest, "Could not sign you in.")
		}
		return c.Redirect(http.StatusFound, "/")
	})
}
