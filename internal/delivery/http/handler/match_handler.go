package handler

import (
	"errors"

	"talentsift/internal/delivery/http/dto"
	"talentsift/internal/delivery/http/middleware"
	"talentsift/internal/pkg/response"
	"talentsift/internal/pkg/validate"
	"talentsift/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

// RegisterRoutes mounts the ad-hoc endpoint on the /match group.
func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.AdHoc)
}

// RegisterResumeRoutes mounts the stored-pair endpoint on the /resumes group.
func (h *MatchHandler) RegisterResumeRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:resume_id/match/:job_id", h.Stored)
}

func (h *MatchHandler) AdHoc(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, validate.Message(err), nil, err)
	}

	parsed, res, err := h.uc.MatchAdHoc(c.Context(), req.ResumeText, req.JobText)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAdHocMatchResponse(parsed, res))
}

func (h *MatchHandler) Stored(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	resumeID, err := uuidParam(c, "resume_id")
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	res, err := h.uc.MatchStored(c.Context(), userID, resumeID, jobID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(res))
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrResumeTooShort):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Resume text is too short", nil, err)
	case errors.Is(err, usecase.ErrJobTooShort):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job text is too short", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
