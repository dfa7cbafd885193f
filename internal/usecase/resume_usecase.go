package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"talentsift/internal/domain/matching"
	"talentsift/internal/domain/resume"
	"talentsift/internal/infrastructure/textextract"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrResumeNotFound  = errors.New("resume not found")
	ErrResumeTooShort  = errors.New("resume text too short")
	ErrUnsupportedFile = errors.New("unsupported file format")
	ErrExtractFailed   = errors.New("could not extract text from file")
)

// minTextChars is the floor applied to normalized text before it enters the
// engine. Shorter inputs are almost always a bad upload, not a resume.
const minTextChars = 10

type UploadResumeInput struct {
	FileName    string
	ContentType string
	Content     []byte
}

type ResumeUsecase interface {
	Upload(ctx context.Context, userID uuid.UUID, in UploadResumeInput) (resume.Resume, error)
	Get(ctx context.Context, userID, resumeID uuid.UUID) (resume.Resume, error)
	List(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
}

type Resume struct {
	resumes resume.Repository
	engine  *matching.Engine
	now     func() time.Time
}

func NewResumeUsecase(resumes resume.Repository, engine *matching.Engine) *Resume {
	return &Resume{resumes: resumes, engine: engine, now: time.Now}
}

func (u *Resume) Upload(ctx context.Context, userID uuid.UUID, in UploadResumeInput) (resume.Resume, error) {
	if userID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	if strings.TrimSpace(in.FileName) == "" || len(in.Content) == 0 {
		return resume.Resume{}, ErrInvalidInput
	}

	text, err := textextract.Extract(in.FileName, in.Content)
	if err != nil {
		if errors.Is(err, textextract.ErrUnsupportedFormat) {
			return resume.Resume{}, ErrUnsupportedFile
		}
		return resume.Resume{}, ErrExtractFailed
	}

	normalized := matching.NormalizeText(text)
	if utf8.RuneCountInString(normalized) < minTextChars {
		return resume.Resume{}, ErrResumeTooShort
	}

	parsed := u.engine.Parse(text)

	r := resume.Resume{
		ID:             uuid.New(),
		UserID:         userID,
		CandidateName:  candidateName(normalized),
		FileName:       in.FileName,
		ContentType:    in.ContentType,
		RawText:        text,
		Parsed:         parsed,
		CandidateEmail: parsed.Email,
		CreatedAt:      u.now().UTC(),
	}

	if err := u.resumes.Create(ctx, r); err != nil {
		return resume.Resume{}, ErrInternal
	}
	return r, nil
}

func (u *Resume) Get(ctx context.Context, userID, resumeID uuid.UUID) (resume.Resume, error) {
	if userID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}

	r, err := u.resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, resume.ErrNotFound) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, ErrInternal
	}
	// Another recruiter's resume reads as absent, not as forbidden.
	if r.UserID != userID {
		return resume.Resume{}, ErrResumeNotFound
	}
	return r, nil
}

func (u *Resume) List(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	out, err := u.resumes.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// candidateName guesses the candidate from the first line of the resume.
// Resumes overwhelmingly lead with the name; anything long or addressy is
// left blank rather than guessed wrong.
func candidateName(normalized string) string {
	line := normalized
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" || utf8.RuneCountInString(line) > 80 {
		return ""
	}
	if strings.ContainsAny(line, "@/\\") {
		return ""
	}
	return line
}
