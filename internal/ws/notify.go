package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"talentsift/internal/domain/screening"
)

// ScreeningCompletedEvent is pushed when a run reaches a terminal state,
// completed or failed alike.
type ScreeningCompletedEvent struct {
	Type         string `json:"type"`
	RunID        string `json:"run_id"`
	JobID        string `json:"job_id"`
	Status       string `json:"status"`
	TotalResumes int    `json:"total_resumes"`
	Processed    int    `json:"processed"`
	Failed       int    `json:"failed"`
	Timestamp    string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

// SetDefaultHub installs the process-wide hub used by NotifyScreeningCompleted.
func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyScreeningCompleted(run screening.Run) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ScreeningCompletedEvent{
		Type:         "screening_completed",
		RunID:        run.ID.String(),
		JobID:        run.JobID.String(),
		Status:       string(run.Status),
		TotalResumes: run.TotalResumes,
		Processed:    run.Processed,
		Failed:       run.Failed,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}

// ScreeningNotifier plugs the default hub into the screening pipeline.
type ScreeningNotifier struct{}

func (ScreeningNotifier) ScreeningCompleted(run screening.Run) {
	NotifyScreeningCompleted(run)
}
