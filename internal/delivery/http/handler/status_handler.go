package handler

import (
	"talentsift/internal/pkg/response"
	"talentsift/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StatusHandler struct {
	uc usecase.StatusUsecase
}

func NewStatusHandler(uc usecase.StatusUsecase) *StatusHandler {
	return &StatusHandler{uc: uc}
}

func (h *StatusHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health reports service counters and dependency health. It always answers
// 200; degraded dependencies show up in the payload, not the status code,
// so dashboards can read the detail instead of a bare 503.
func (h *StatusHandler) Health(c fiber.Ctx) error {
	status, err := h.uc.GetStatus(c.Context())
	if err != nil {
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}
