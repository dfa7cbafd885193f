package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

const sampleResumeText = `Dana Smith
dana.smith@example.com

SUMMARY
Backend engineer with 5 years of Python and AWS experience.

SKILLS
Python, AWS, Docker, PostgreSQL

EXPERIENCE
Backend Engineer at Initech
Jan 2019 - Present
Built and operated billing services on AWS.

EDUCATION
B.S. Computer Science, State University, 2018
`

func newResumeFixture(t *testing.T) (*Resume, *fakeResumeRepo) {
	t.Helper()
	resumes := newFakeResumeRepo()
	return NewResumeUsecase(resumes, newTestEngine(t)), resumes
}

func TestResume_Upload_Success(t *testing.T) {
	uc, resumes := newResumeFixture(t)
	userID := uuid.New()

	r, err := uc.Upload(context.Background(), userID, UploadResumeInput{
		FileName:    "dana_smith.txt",
		ContentType: "text/plain",
		Content:     []byte(sampleResumeText),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if r.UserID != userID || r.FileName != "dana_smith.txt" {
		t.Errorf("unexpected stored fields: %+v", r)
	}
	if r.CandidateName != "Dana Smith" {
		t.Errorf("CandidateName = %q, want %q", r.CandidateName, "Dana Smith")
	}
	if r.CandidateEmail != "dana.smith@example.com" {
		t.Errorf("CandidateEmail = %q", r.CandidateEmail)
	}

	skills := make(map[string]bool)
	for _, s := range r.Parsed.Skills {
		skills[s] = true
	}
	for _, want := range []string{"python", "aws", "docker", "postgresql"} {
		if !skills[want] {
			t.Errorf("parsed skills missing %q: %v", want, r.Parsed.Skills)
		}
	}

	stored, err := resumes.GetByID(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("stored resume missing: %v", err)
	}
	if stored.RawText == "" {
		t.Error("raw text not persisted")
	}
}

func TestResume_Upload_TooShort(t *testing.T) {
	uc, _ := newResumeFixture(t)

	_, err := uc.Upload(context.Background(), uuid.New(), UploadResumeInput{
		FileName: "short.txt",
		Content:  []byte("   hi   "),
	})
	if !errors.Is(err, ErrResumeTooShort) {
		t.Fatalf("expected ErrResumeTooShort, got %v", err)
	}
}

func TestResume_Upload_UnsupportedFormat(t *testing.T) {
	uc, _ := newResumeFixture(t)

	_, err := uc.Upload(context.Background(), uuid.New(), UploadResumeInput{
		FileName: "resume.exe",
		Content:  []byte(sampleResumeText),
	})
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestResume_Upload_Invalid(t *testing.T) {
	uc, _ := newResumeFixture(t)

	if _, err := uc.Upload(context.Background(), uuid.Nil, UploadResumeInput{FileName: "a.txt", Content: []byte("x")}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("nil user: expected ErrUnauthorized, got %v", err)
	}
	if _, err := uc.Upload(context.Background(), uuid.New(), UploadResumeInput{FileName: "", Content: []byte("x")}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty filename: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.Upload(context.Background(), uuid.New(), UploadResumeInput{FileName: "a.txt"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty content: expected ErrInvalidInput, got %v", err)
	}
}

func TestResume_Get_HidesOtherUsers(t *testing.T) {
	uc, _ := newResumeFixture(t)
	owner := uuid.New()

	r, err := uc.Upload(context.Background(), owner, UploadResumeInput{
		FileName: "dana.txt",
		Content:  []byte(sampleResumeText),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if _, err := uc.Get(context.Background(), owner, r.ID); err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if _, err := uc.Get(context.Background(), uuid.New(), r.ID); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound for other user, got %v", err)
	}
	if _, err := uc.Get(context.Background(), owner, uuid.New()); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound for unknown id, got %v", err)
	}
}

func TestResume_List_ScopedToUser(t *testing.T) {
	uc, _ := newResumeFixture(t)
	alice, bob := uuid.New(), uuid.New()

	for _, userID := range []uuid.UUID{alice, alice, bob} {
		if _, err := uc.Upload(context.Background(), userID, UploadResumeInput{
			FileName: "r.txt",
			Content:  []byte(sampleResumeText),
		}); err != nil {
			t.Fatalf("Upload: %v", err)
		}
	}

	got, err := uc.List(context.Background(), alice)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("alice sees %d resumes, want 2", len(got))
	}
	for _, r := range got {
		if r.UserID != alice {
			t.Errorf("foreign resume in listing: %+v", r)
		}
	}
}
