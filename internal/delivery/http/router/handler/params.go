package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// multiParam reads a repeatable query parameter. The bracketed form
// ("name[]") wins; the bare name is the fallback for clients that repeat the
// plain key.
func multiParam(c echo.Context, name string) []string {
	values := c.QueryParams()[name+"[]"]
	if len(values) == 0 {
		values = c.QueryParams()[name]
	}

	return values
}

// intParam reads an integer query parameter, zero when absent or malformed.
// The predicate layer owns normalization, not the transport.
func intParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}
