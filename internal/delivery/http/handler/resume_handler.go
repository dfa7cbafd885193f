package handler

import (
	"errors"
	"io"

	"talentsift/internal/delivery/http/dto"
	"talentsift/internal/delivery/http/middleware"
	"talentsift/internal/pkg/response"
	"talentsift/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Upload)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

// Upload accepts a multipart form with the document under the "file" field.
func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "file is required", nil, err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "file could not be read", nil, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "file could not be read", nil, err)
	}

	r, err := h.uc.Upload(c.Context(), userID, usecase.UploadResumeInput{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "resume uploaded", dto.NewResumeResponse(r))
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	resumes, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeListResponse(resumes))
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	r, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewResumeResponse(r))
}

func mapResumeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", nil, err)
	case errors.Is(err, usecase.ErrUnsupportedFile):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unsupported file format", nil, err)
	case errors.Is(err, usecase.ErrResumeTooShort):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Resume text is too short", nil, err)
	case errors.Is(err, usecase.ErrExtractFailed):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Could not extract text from file", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
