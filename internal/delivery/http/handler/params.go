package handler

import (
	"strconv"
	"strings"

	"talentsift/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// uuidParam parses a path parameter as a UUID or fails the request with 400.
func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, name+" must be a valid UUID", nil, err)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. A present but
// non-numeric value is a client error, not a silent default.
func queryInt(c fiber.Ctx, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, name+" must be an integer", nil, err)
	}
	return n, nil
}

// callerID pulls the authenticated recruiter's id out of the locals.
func callerID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}
