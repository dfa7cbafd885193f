package dto

import "talentsift/internal/domain/matching"

type MatchRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=10"`
	JobText    string `json:"job_text" validate:"required,min=10"`
}

// MatchResponse wraps the engine result. Resume is only present on ad-hoc
// matches, where the parsed profile is the caller's one chance to see it.
type MatchResponse struct {
	Result matching.Result        `json:"result"`
	Resume *matching.ParsedResume `json:"resume,omitempty"`
}

func NewMatchResponse(res matching.Result) MatchResponse {
	return MatchResponse{Result: res}
}

func NewAdHocMatchResponse(parsed matching.ParsedResume, res matching.Result) MatchResponse {
	return MatchResponse{Result: res, Resume: &parsed}
}
