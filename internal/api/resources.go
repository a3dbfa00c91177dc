package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/meysam81/oneoffctl/internal/models"
)

type ExecutionsAPI struct{ c *Client }

func (c *Client) Executions() *ExecutionsAPI { return &ExecutionsAPI{c: c} }

func (a *ExecutionsAPI) List(ctx context.Context, f models.ExecutionFilter) ([]models.Execution, error) {
	return unwrap[[]models.Execution](func(out any) error {
		return a.c.get(ctx, "executions", f.Values(), out)
	})
}

func (a *ExecutionsAPI) Get(ctx context.Context, id string) (models.Execution, error) {
	return unwrap[models.Execution](func(out any) error {
		return a.c.get(ctx, "executions/"+escape(id), nil, out)
	})
}

type ProjectsAPI struct{ c *Client }

func (c *Client) Projects() *ProjectsAPI { return &ProjectsAPI{c: c} }

func (a *ProjectsAPI) List(ctx context.Context, includeArchived bool) ([]models.Project, error) {
	q := url.Values{"include_archived": []string{strconv.FormatBool(includeArchived)}}
	return unwrap[[]models.Project](func(out any) error {
		return a.c.get(ctx, "projects", q, out)
	})
}

func (a *ProjectsAPI) Get(ctx context.Context, id string) (models.Project, error) {
	return unwrap[models.Project](func(out any) error {
		return a.c.get(ctx, "projects/"+escape(id), nil, out)
	})
}

func (a *ProjectsAPI) Create(ctx context.Context, req models.ProjectRequest) (models.Project, error) {
	return unwrap[models.Project](func(out any) error {
		return a.c.post(ctx, "projects", req, out)
	})
}

func (a *ProjectsAPI) Update(ctx context.Context, id string, req models.ProjectRequest) (models.Project, error) {
	return unwrap[models.Project](func(out any) error {
		return a.c.patch(ctx, "projects/"+escape(id), req, out)
	})
}

func (a *ProjectsAPI) Delete(ctx context.Context, id string) error {
	return a.c.delete(ctx, "projects/"+escape(id))
}

type TagsAPI struct{ c *Client }

func (c *Client) Tags() *TagsAPI { return &TagsAPI{c: c} }

func (a *TagsAPI) List(ctx context.Context) ([]models.Tag, error) {
	return unwrap[[]models.Tag](func(out any) error {
		return a.c.get(ctx, "tags", nil, out)
	})
}

func (a *TagsAPI) Get(ctx context.Context, id string) (models.Tag, error) {
	return unwrap[models.Tag](func(out any) error {
		return a.c.get(ctx, "tags/"+escape(id), nil, out)
	})
}

func (a *TagsAPI) Create(ctx context.Context, req models.TagRequest) (models.Tag, error) {
	return unwrap[models.Tag](func(out any) error {
		return a.c.post(ctx, "tags", req, out)
	})
}

func (a *TagsAPI) Update(ctx context.Context, id string, req models.TagRequest) (models.Tag, error) {
	return unwrap[models.Tag](func(out any) error {
		return a.c.patch(ctx, "tags/"+escape(id), req, out)
	})
}

func (a *TagsAPI) Delete(ctx context.Context, id string) error {
	return a.c.delete(ctx, "tags/"+escape(id))
}

type SystemAPI struct{ c *Client }

func (c *Client) System() *SystemAPI { return &SystemAPI{c: c} }

func (a *SystemAPI) Status(ctx context.Context) (models.SystemStats, error) {
	return unwrap[models.SystemStats](func(out any) error {
		return a.c.get(ctx, "system/status", nil, out)
	})
}

func (a *SystemAPI) Config(ctx context.Context) ([]models.SystemConfig, error) {
	return unwrap[[]models.SystemConfig](func(out any) error {
		return a.c.get(ctx, "system/config", nil, out)
	})
}

func (a *SystemAPI) UpdateConfig(ctx context.Context, key, value string) (models.Message, error) {
	return unwrap[models.Message](func(out any) error {
		return a.c.patch(ctx, "system/config", models.ConfigUpdate{Key: key, Value: value}, out)
	})
}

func (a *SystemAPI) WorkerStatus(ctx context.Context) (models.WorkerStatus, error) {
	return unwrap[models.WorkerStatus](func(out any) error {
		return a.c.get(ctx, "workers/status", nil, out)
	})
}

func (a *SystemAPI) JobTypes(ctx context.Context) ([]string, error) {
	return unwrap[[]string](func(out any) error {
		return a.c.get(ctx, "job-types", nil, out)
	})
}
