package dto

import (
	"time"

	"talentsift/internal/domain/matching"
	"talentsift/internal/domain/resume"
)

// ResumeSummaryResponse is the list view of a resume: enough to pick one
// out of the pool without shipping the parsed profile for every row.
type ResumeSummaryResponse struct {
	ID             string    `json:"id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	FileName       string    `json:"file_name"`
	Skills         []string  `json:"skills"`
	CreatedAt      time.Time `json:"created_at"`
}

// ResumeResponse is the detail view including the full parsed profile.
type ResumeResponse struct {
	ID             string                `json:"id"`
	CandidateName  string                `json:"candidate_name"`
	CandidateEmail string                `json:"candidate_email"`
	FileName       string                `json:"file_name"`
	ContentType    string                `json:"content_type"`
	Parsed         matching.ParsedResume `json:"parsed"`
	CreatedAt      time.Time             `json:"created_at"`
}

type ResumeListResponse struct {
	Resumes []ResumeSummaryResponse `json:"resumes"`
	Total   int                     `json:"total"`
}

func NewResumeSummaryResponse(r resume.Resume) ResumeSummaryResponse {
	return ResumeSummaryResponse{
		ID:             r.ID.String(),
		CandidateName:  r.CandidateName,
		CandidateEmail: r.CandidateEmail,
		FileName:       r.FileName,
		Skills:         r.Parsed.Skills,
		CreatedAt:      r.CreatedAt,
	}
}

func NewResumeResponse(r resume.Resume) ResumeResponse {
	return ResumeResponse{
		ID:             r.ID.String(),
		CandidateName:  r.CandidateName,
		CandidateEmail: r.CandidateEmail,
		FileName:       r.FileName,
		ContentType:    r.ContentType,
		Parsed:         r.Parsed,
		CreatedAt:      r.CreatedAt,
	}
}

func NewResumeListResponse(resumes []resume.Resume) ResumeListResponse {
	out := make([]ResumeSummaryResponse, 0, len(resumes))
	for _, r := range resumes {
		out = append(out, NewResumeSummaryResponse(r))
	}
	return ResumeListResponse{Resumes: out, Total: len(out)}
}
