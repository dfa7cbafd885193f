package handler

import (
	"errors"
	"strings"

	"talentsift/internal/delivery/http/dto"
	"talentsift/internal/delivery/http/middleware"
	"talentsift/internal/pkg/response"
	"talentsift/internal/pkg/validate"
	"talentsift/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc       usecase.JobUsecase
	importer usecase.JobImportUsecase
}

func NewJobHandler(uc usecase.JobUsecase, importer usecase.JobImportUsecase) *JobHandler {
	return &JobHandler{uc: uc, importer: importer}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/import", h.Import)
	r.Get("/:id", h.Get)
	r.Get("/:id/keywords", h.Keywords)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, validate.Message(err), nil, err)
	}

	j, err := h.uc.Create(c.Context(), userID, usecase.CreateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "job created", dto.NewJobResponse(j))
}

// List pages through stored postings; with a q parameter it becomes a
// ranked search over recent postings instead.
func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		jobs, err := h.uc.Search(c.Context(), q, limit)
		if err != nil {
			return mapJobUsecaseError(err)
		}
		if limit == 0 {
			limit = 20
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(jobs, len(jobs), limit, 0))
	}

	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}

	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	// Echo back the effective paging so clients see the applied default.
	if limit == 0 {
		limit = len(list.Jobs)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(list.Jobs, list.Total, limit, offset))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Import(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req dto.ImportJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, validate.Message(err), nil, err)
	}

	j, err := h.importer.Import(c.Context(), userID, req.URL)
	if err != nil {
		return mapJobImportError(err)
	}

	return response.Success(c, fiber.StatusCreated, "job imported", dto.NewJobResponse(j))
}

func (h *JobHandler) Keywords(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	ex, err := h.uc.Keywords(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobKeywordsResponse{
		JobID:    id.String(),
		Skills:   ex.Skills,
		Keywords: ex.Keywords,
	})
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrJobTooShort):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job description is too short", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapJobImportError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrImportInvalidURL):
		return middleware.NewAppError(fiber.StatusBadRequest, "URL is not a valid job posting address", nil, err)
	case errors.Is(err, usecase.ErrImportDomainBlocked):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Domain is not allowed for import", nil, err)
	case errors.Is(err, usecase.ErrImportEmptyPosting):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No job posting content found at URL", nil, err)
	default:
		return mapJobUsecaseError(err)
	}
}
