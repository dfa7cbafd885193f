package handler

import (
	"errors"

	"talentsift/internal/delivery/http/dto"
	"talentsift/internal/delivery/http/middleware"
	"talentsift/internal/pkg/response"
	"talentsift/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ScreeningHandler struct {
	uc usecase.ScreeningUsecase
}

func NewScreeningHandler(uc usecase.ScreeningUsecase) *ScreeningHandler {
	return &ScreeningHandler{uc: uc}
}

// RegisterRoutes mounts run retrieval on the /screenings group.
func (h *ScreeningHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id", h.Get)
}

// RegisterJobRoutes mounts run start and listing on the /jobs group.
func (h *ScreeningHandler) RegisterJobRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:id/screenings", h.Start)
	r.Get("/:id/screenings", h.ListByJob)
}

// Start kicks off a batch screening and answers 202 immediately; the run
// executes in the background and progress is read back via Get.
func (h *ScreeningHandler) Start(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	run, err := h.uc.Start(c.Context(), userID, jobID)
	if err != nil {
		return mapScreeningUsecaseError(err)
	}

	return response.Success(c, fiber.StatusAccepted, "screening started", dto.NewRunResponse(run))
}

func (h *ScreeningHandler) Get(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	runID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	run, results, err := h.uc.Get(c.Context(), userID, runID)
	if err != nil {
		return mapScreeningUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRunDetailResponse(run, results))
}

func (h *ScreeningHandler) ListByJob(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	runs, err := h.uc.RunsByJob(c.Context(), userID, jobID)
	if err != nil {
		return mapScreeningUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRunListResponse(runs))
}

func mapScreeningUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrRunNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Screening run not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrScreeningInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "A screening for this job is already in progress", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
