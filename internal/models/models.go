package models

import "time"

type JobStatus string

const (
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

type ExecutionStatus string

const (
	ExecutionStatusRunning   ExecutionStatus = "running"
	ExecutionStatusCompleted ExecutionStatus = "completed"
	ExecutionStatusFailed    ExecutionStatus = "failed"
	ExecutionStatusCancelled ExecutionStatus = "cancelled"
)

type Job struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Config      string    `json:"config"` // job-type specific JSON
	ScheduledAt time.Time `json:"scheduled_at"`
	Priority    int       `json:"priority"`
	ProjectID   string    `json:"project_id"`
	Timezone    string    `json:"timezone"`
	Status      JobStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Tags        []Tag     `json:"tags,omitempty"`
}

type Execution struct {
	ID          string          `json:"id"`
	JobID       string          `json:"job_id"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Status      ExecutionStatus `json:"status"`
	Output      string          `json:"output,omitempty"`
	ExitCode    *int            `json:"exit_code,omitempty"`
	Error       string          `json:"error,omitempty"`
	DurationMs  *int64          `json:"duration_ms,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsArchived  bool      `json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

type SystemStats struct {
	TotalScheduled   int64   `json:"total_scheduled"`
	CurrentlyRunning int64   `json:"currently_running"`
	CompletedToday   int64   `json:"completed_today"`
	FailedRecent     int64   `json:"failed_recent"`
	AvgDurationMs    float64 `json:"avg_duration_ms"`
	QueueDepth       int64   `json:"queue_depth"`
}

type WorkerStatus struct {
	TotalWorkers     int      `json:"total_workers"`
	ActiveWorkers    int      `json:"active_workers"`
	AvailableWorkers int      `json:"available_workers"`
	QueuedJobs       int      `json:"queued_jobs"`
	RunningJobs      []string `json:"running_jobs"`
}

// Message is the body of action endpoints such as cancel.
type Message struct {
	Message string `json:"message"`
}

type SystemConfig struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"` // JSON encoded
	UpdatedAt time.Time `json:"updated_at"`
}
