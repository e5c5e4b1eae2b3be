package main

import (
	"net/http"
	"strconv"

	"ProjectDesk/internal/middleware"
	"ProjectDesk/internal/services"

	"github.com/labstack/echo/v4"
)

func registerUserRoutes(e *echo.Echo, us *services.UserService) {

	e.GET("/users", func(c echo.Context) error {
		users, roles, err := us.List(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not load users")
		}
		return c.Render(http.StatusOK, "users.html", map[string]interface{}{
			"Users":   users,
			"Roles":   roles,
			"Session": middleware.GetClaims(c),
		})
	})

	// A missing role or a duplicate email is a silent no-op: the form
	// redirects back to the listing either way.
	e.POST("/users/create", func(c echo.Context) error {
		roleID, err := strconv.ParseInt(c.FormValue("role_id"), 10, 64)
		if err != nil {
			roleID = 0 // unresolvable role id, Create treats it as missing
		}
		if err := us.Create(c.Request().Context(), c.FormValue("name"), c.FormValue("email"), roleID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not create user")
		}
		return c.Redirect(http.StatusFound, "/users")
	})
}
