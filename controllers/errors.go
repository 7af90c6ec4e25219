package controllers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/Hemachand25/FreshGrocery/pkg/resp"
	"github.com/Hemachand25/FreshGrocery/services"

	"github.com/gin-gonic/gin"
)

// fail maps a service error onto the response envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrAccountBlocked):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrEmailTaken):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrConflict):
		resp.Conflict(c, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("request_id", c.GetString("requestId")),
			slog.Any("err", err))
		resp.ServerError(c, err)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func queryUint(c *gin.Context, key string) *uint {
	v, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil || v == 0 {
		return nil
	}
	id := uint(v)
	return &id
}
