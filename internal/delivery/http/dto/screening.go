package dto

import (
	"time"

	"talentsift/internal/domain/screening"
)

type RunResponse struct {
	ID           string     `json:"id"`
	JobID        string     `json:"job_id"`
	Status       string     `json:"status"`
	TotalResumes int        `json:"total_resumes"`
	Processed    int        `json:"processed"`
	Failed       int        `json:"failed"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at"`
}

// ResultResponse is one ranked row of a finished run.
type ResultResponse struct {
	ResumeID        string   `json:"resume_id"`
	MatchScore      float64  `json:"match_score"`
	MatchPercentage int      `json:"match_percentage"`
	Status          string   `json:"status"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Error           *string  `json:"error"`
}

type RunDetailResponse struct {
	Run     RunResponse      `json:"run"`
	Results []ResultResponse `json:"results"`
}

type RunListResponse struct {
	Runs []RunResponse `json:"runs"`
}

func NewRunResponse(r screening.Run) RunResponse {
	return RunResponse{
		ID:           r.ID.String(),
		JobID:        r.JobID.String(),
		Status:       string(r.Status),
		TotalResumes: r.TotalResumes,
		Processed:    r.Processed,
		Failed:       r.Failed,
		CreatedAt:    r.CreatedAt,
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
	}
}

func NewResultResponse(r screening.Result) ResultResponse {
	return ResultResponse{
		ResumeID:        r.ResumeID.String(),
		MatchScore:      r.MatchScore,
		MatchPercentage: r.MatchPercentage,
		Status:          string(r.Status),
		MatchedKeywords: r.MatchedKeywords,
		MissingKeywords: r.MissingKeywords,
		Error:           r.Error,
	}
}

func NewRunDetailResponse(run screening.Run, results []screening.Result) RunDetailResponse {
	out := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, NewResultResponse(r))
	}
	return RunDetailResponse{Run: NewRunResponse(run), Results: out}
}

func NewRunListResponse(runs []screening.Run) RunListResponse {
	out := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, NewRunResponse(r))
	}
	return RunListResponse{Runs: out}
}
