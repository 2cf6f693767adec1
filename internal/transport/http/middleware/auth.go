package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/k13lucien/Kollab/internal/entities"
	"github.com/k13lucien/Kollab/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const userIDKey = "user_id"

// Authenticator resolves a bearer credential to the caller's id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (entities.UserID, error)
}

// BearerAuth rejects requests without a valid bearer credential and stores
// the caller's id in the request locals.
func BearerAuth(log *zap.SugaredLogger, auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.NewError(dto.UNAUTHENTICATED, "missing bearer token"))
		}

		userID, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, entities.ErrUnauthenticated) {
				log.Errorw("failed to authenticate", "error", err)
				return c.Status(fiber.StatusInternalServerError).
					JSON(dto.NewError(dto.INTERNAL, "internal error"))
			}
			log.Debugw("authentication rejected", "error", err, "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.NewError(dto.UNAUTHENTICATED, "invalid or revoked token"))
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the caller id stored by BearerAuth.
func UserID(c *fiber.Ctx) (entities.UserID, bool) {
	id, ok := c.Locals(userIDKey).(entities.UserID)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
