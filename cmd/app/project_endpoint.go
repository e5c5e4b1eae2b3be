package main

import (
	"net/http"
	"time"

	"ProjectDesk/internal/middleware"
	"ProjectDesk/internal/model"
	"ProjectDesk/internal/services"

	"github.com/labstack/echo/v4"
)

func registerProjectRoutes(e *echo.Echo, ps *services.ProjectService) {

	// Landing page: project listing.
	e.GET("/", func(c echo.Context) error {
		projects, err := ps.List(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not load projects")
		}
		return c.Render(http.StatusOK, "projects.html", map[string]interface{}{
			"Projects": projects,
			"Session":  middleware.GetClaims(c),
		})
	})

	e.POST("/add", func(c echo.Context) error {
		start, err := parseDate(c.FormValue("start_date"))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "invalid start date")
		}
		end, err := parseDate(c.FormValue("end_date"))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "invalid end date")
		}

		p := &model.Project{
			Name:             c.FormValue("name"),
			ShortDescription: c.FormValue("short_description"),
			Background:       c.FormValue("background"),
			StartDate:        start,
			EndDate:          end,
		}
		if _, err := ps.Create(c.Request().Context(), p); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not create project")
		}
		return c.Redirect(http.StatusFound, "/")
	})
}

// parseDate parses a YYYY-MM-DD form field; empty means unset.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
