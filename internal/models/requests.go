package models

type CreateJobRequest struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Config      string   `json:"config"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
	Immediate   bool     `json:"immediate,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
	TagIDs      []string `json:"tag_ids,omitempty"`
}

// UpdateJobRequest is a PATCH body; nil fields are left untouched.
type UpdateJobRequest struct {
	Name        *string  `json:"name,omitempty"`
	Config      *string  `json:"config,omitempty"`
	ScheduledAt *string  `json:"scheduled_at,omitempty"`
	Priority    *int     `json:"priority,omitempty"`
	ProjectID   *string  `json:"project_id,omitempty"`
	Timezone    *string  `json:"timezone,omitempty"`
	Status      *string  `json:"status,omitempty"`
	TagIDs      []string `json:"tag_ids,omitempty"`
}

type CloneJobRequest struct {
	ScheduledAt string `json:"scheduled_at"` // RFC3339 or "now"
}

type ProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	IsArchived  *bool   `json:"is_archived,omitempty"`
}

type TagRequest struct {
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

type ConfigUpdate struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
