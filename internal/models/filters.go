package models

import (
	"net/url"
	"strconv"
)

// JobFilter mirrors the dashboard's job list filter. Field order is fixed so
// its JSON form is a stable cache key.
type JobFilter struct {
	ProjectID string   `json:"project_id"`
	Status    string   `json:"status"`
	Type      string   `json:"type"`
	Search    string   `json:"search"`
	TagIDs    []string `json:"tag_ids"`
	SortBy    string   `json:"sort_by"`
	SortOrder string   `json:"sort_order"`
	Limit     int      `json:"limit"`
	Offset    int      `json:"offset"`
}

func DefaultJobFilter() JobFilter {
	return JobFilter{
		TagIDs:    []string{},
		SortBy:    "scheduled_at",
		SortOrder: "asc",
		Limit:     50,
		Offset:    0,
	}
}

// JobFilterPatch overrides fields of a JobFilter. A nil field keeps the
// base value; a set field replaces it, zero values included, so a patch can
// reset offset to 0 or clear a status.
type JobFilterPatch struct {
	ProjectID *string
	Status    *string
	Type      *string
	Search    *string
	TagIDs    *[]string
	SortBy    *string
	SortOrder *string
	Limit     *int
	Offset    *int
}

// Merge returns f with every set field of p applied on top.
func (f JobFilter) Merge(p *JobFilterPatch) JobFilter {
	if p == nil {
		return f
	}
	out := f
	setField(&out.ProjectID, p.ProjectID)
	setField(&out.Status, p.Status)
	setField(&out.Type, p.Type)
	setField(&out.Search, p.Search)
	if p.TagIDs != nil {
		out.TagIDs = append([]string{}, (*p.TagIDs)...)
	}
	setField(&out.SortBy, p.SortBy)
	setField(&out.SortOrder, p.SortOrder)
	setField(&out.Limit, p.Limit)
	setField(&out.Offset, p.Offset)
	return out
}

func setField[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Values encodes the filter with the backend's query parameter names.
func (f JobFilter) Values() url.Values {
	v := url.Values{}
	setIf(v, "project_id", f.ProjectID)
	setIf(v, "status", f.Status)
	setIf(v, "type", f.Type)
	setIf(v, "search", f.Search)
	for _, id := range f.TagIDs {
		v.Add("tag_id", id)
	}
	setIf(v, "sort_by", f.SortBy)
	setIf(v, "sort_order", f.SortOrder)
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	return v
}

type ExecutionFilter struct {
	JobID     string   `json:"job_id"`
	Status    string   `json:"status"`
	ProjectID string   `json:"project_id"`
	TagIDs    []string `json:"tag_ids"`
	SortBy    string   `json:"sort_by"`
	SortOrder string   `json:"sort_order"`
	Limit     int      `json:"limit"`
	Offset    int      `json:"offset"`
}

func (f ExecutionFilter) Values() url.Values {
	v := url.Values{}
	setIf(v, "job_id", f.JobID)
	setIf(v, "status", f.Status)
	setIf(v, "project_id", f.ProjectID)
	for _, id := range f.TagIDs {
		v.Add("tag_id", id)
	}
	setIf(v, "sort_by", f.SortBy)
	setIf(v, "sort_order", f.SortOrder)
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	return v
}

func setIf(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}
