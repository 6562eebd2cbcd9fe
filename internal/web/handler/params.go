// Package handler holds the shared surface of the web handlers: the
// service interface, route constants and path parameter parsing.
package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ErrInvalidIDParam is returned when a path id parameter is not a positive integer.
var ErrInvalidIDParam = errors.New("invalid id parameter")

// ParseIDParam parses the named path parameter into a uint64 identifier.
// Identifiers are validated at the boundary; malformed input never reaches
// a store query.
func ParseIDParam(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidIDParam
	}

	return id, nil
}
