package dto

import (
	"time"

	"talentsift/internal/domain/job"
)

type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Company     string `json:"company" validate:"max=200"`
	Location    string `json:"location" validate:"max=200"`
	Description string `json:"description" validate:"required"`
}

type ImportJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type JobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    *string   `json:"location"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Keywords    []string  `json:"keywords"`
	Source      string    `json:"source"`
	SourceURL   *string   `json:"source_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobSummaryResponse is the list row: the description is dropped because
// imported postings can run to many kilobytes.
type JobSummaryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Location  *string   `json:"location"`
	Skills    []string  `json:"skills"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type JobListResponse struct {
	Jobs   []JobSummaryResponse `json:"jobs"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

type JobKeywordsResponse struct {
	JobID    string   `json:"job_id"`
	Skills   []string `json:"skills"`
	Keywords []string `json:"keywords"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:          j.ID.String(),
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		Skills:      j.Skills,
		Keywords:    j.Keywords,
		Source:      j.Source,
		SourceURL:   j.SourceURL,
		CreatedAt:   j.CreatedAt,
	}
}

func NewJobSummaryResponse(j job.Job) JobSummaryResponse {
	return JobSummaryResponse{
		ID:        j.ID.String(),
		Title:     j.Title,
		Company:   j.Company,
		Location:  j.Location,
		Skills:    j.Skills,
		Source:    j.Source,
		CreatedAt: j.CreatedAt,
	}
}

func NewJobListResponse(jobs []job.Job, total, limit, offset int) JobListResponse {
	out := make([]JobSummaryResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobSummaryResponse(j))
	}
	return JobListResponse{Jobs: out, Total: total, Limit: limit, Offset: offset}
}
