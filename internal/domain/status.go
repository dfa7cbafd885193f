package domain

import "time"

// BandStat counts stored screening results per decision band.
type BandStat struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// ServiceStatus is the operational snapshot served by the health endpoint.
type ServiceStatus struct {
	TotalResumes    int        `json:"total_resumes"`
	TotalJobs       int        `json:"total_jobs"`
	RunsToday       int        `json:"runs_today"`
	Bands           []BandStat `json:"bands"`
	DatabaseHealthy bool       `json:"database_healthy"`
	RedisHealthy    bool       `json:"redis_healthy"`
	ServerTime      time.Time  `json:"server_time"`
}
