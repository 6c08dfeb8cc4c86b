package locale

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListLocalesHandler returns the static locale catalog so the admin UI can
// populate country/language pickers.
func ListLocalesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"locales": Catalog(),
	})
}

// ReleasePreviewHandler renders a release label for the given query
// parameters, used by the scheduling form to preview what will be shown.
func ReleasePreviewHandler(c echo.Context) error {
	country := c.QueryParam("country")
	date := c.QueryParam("date")
	tm := c.QueryParam("time")

	return c.JSON(http.StatusOK, map[string]string{
		"country":  country,
		"timezone": GetTimeZoneForCountry(country),
		"label":    FormatReleaseDisplay(country, date, tm),
	})
}
