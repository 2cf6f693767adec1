package handlers_fiber

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/transport/http/dto"
	"github.com/k13lucien/Kollab/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

var errNoCaller = errors.New("caller missing from request context")

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	if status == http.StatusInternalServerError {
		h.log.Errorw("request failed", "error", err, "path", c.Path())
	}
	return c.Status(status).JSON(dto.NewError(code, msg))
}

func classify(err error) (int, dto.ErrorCode, string) {
	switch {
	case errors.Is(err, entities.ErrUnauthenticated):
		return http.StatusUnauthorized, dto.UNAUTHENTICATED, err.Error()
	case errors.Is(err, entities.ErrForbidden):
		return http.StatusForbidden, dto.FORBIDDEN, "forbidden"
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound, dto.NOTFOUND, err.Error()
	case errors.Is(err, entities.ErrConflict):
		return http.StatusBadRequest, dto.CONFLICT, err.Error()
	case errors.Is(err, entities.ErrInvalidOperation):
		return http.StatusBadRequest, dto.INVALIDOPERATION, err.Error()
	case errors.Is(err, entities.ErrInvalidArgument):
		return http.StatusBadRequest, dto.INVALIDARGUMENT, err.Error()
	default:
		return http.StatusInternalServerError, dto.INTERNAL, "internal error"
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(dto.NewError(dto.INVALIDARGUMENT, "invalid body"))
}

func caller(c *fiber.Ctx) (entities.UserID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, errNoCaller
	}
	return id, nil
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, entities.Invalid("%s must be a positive integer", name)
	}
	return id, nil
}

// target resolves the caller and the :id path parameter together.
func target(c *fiber.Ctx) (entities.UserID, int64, error) {
	userID, err := caller(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return userID, id, nil
}
