package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/mayorista/app/services"
	"github.com/shashiranjanraj/mayorista/pkg/ctx"
)

// fail maps a service error onto the response envelope. Anything it does
// not recognise is logged and reported as a generic 500.
func fail(c *ctx.Context, op string, err error) {
	var verrs services.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.ValidationError(verrs)
	case errors.Is(err, services.ErrProductNotFound):
		c.NotFound("Product not found")
	case errors.Is(err, services.ErrSKUTaken):
		c.Error(http.StatusConflict, services.ErrSKUTaken.Error())
	case errors.Is(err, services.ErrImageRequired):
		c.ValidationError(map[string]string{"imageUrl": services.ErrImageRequired.Error()})
	case errors.Is(err, services.ErrInvalidOrder), errors.Is(err, services.ErrInvalidCursor):
		c.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		c.Unauthorized()
	default:
		c.ServerError(op, err)
	}
}

// pageSize reads ?pageSize and caps it at max. Zero means the service
// default.
func pageSize(c *ctx.Context, max int) int {
	n := c.QueryInt("pageSize", 0)
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
