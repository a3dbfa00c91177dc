package api

import (
	"context"

	"github.com/meysam81/oneoffctl/internal/models"
)

type JobsAPI struct{ c *Client }

func (c *Client) Jobs() *JobsAPI { return &JobsAPI{c: c} }

func (a *JobsAPI) List(ctx context.Context, f models.JobFilter) (List[models.Job], error) {
	var out List[models.Job]
	err := a.c.get(ctx, "jobs", f.Values(), &out)
	return out, err
}

func (a *JobsAPI) Get(ctx context.Context, id string) (models.Job, error) {
	return unwrap[models.Job](func(out any) error {
		return a.c.get(ctx, "jobs/"+escape(id), nil, out)
	})
}

func (a *JobsAPI) Create(ctx context.Context, req models.CreateJobRequest) (models.Job, error) {
	return unwrap[models.Job](func(out any) error {
		return a.c.post(ctx, "jobs", req, out)
	})
}

func (a *JobsAPI) Update(ctx context.Context, id string, req models.UpdateJobRequest) (models.Job, error) {
	return unwrap[models.Job](func(out any) error {
		return a.c.patch(ctx, "jobs/"+escape(id), req, out)
	})
}

func (a *JobsAPI) Delete(ctx context.Context, id string) error {
	return a.c.delete(ctx, "jobs/"+escape(id))
}

func (a *JobsAPI) Execute(ctx context.Context, id string) (models.Message, error) {
	return unwrap[models.Message](func(out any) error {
		return a.c.post(ctx, "jobs/"+escape(id)+"/execute", nil, out)
	})
}

// Clone copies a job; scheduledAt is RFC3339 or "now".
func (a *JobsAPI) Clone(ctx context.Context, id, scheduledAt string) (models.Job, error) {
	return unwrap[models.Job](func(out any) error {
		return a.c.post(ctx, "jobs/"+escape(id)+"/clone", models.CloneJobRequest{ScheduledAt: scheduledAt}, out)
	})
}

func (a *JobsAPI) Cancel(ctx context.Context, id string) (models.Message, error) {
	return unwrap[models.Message](func(out any) error {
		return a.c.post(ctx, "jobs/"+escape(id)+"/cancel", nil, out)
	})
}
