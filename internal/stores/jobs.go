package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/meysam81/oneoffctl/internal/api"
	"github.com/meysam81/oneoffctl/internal/models"
	"github.com/meysam81/oneoffctl/internal/utils"
)

const JobsPrefix = "jobs_"

type JobsStore struct {
	d    *Deps
	busy busy

	mu      sync.RWMutex
	filter  models.JobFilter
	jobs    []models.Job
	total   int64
	current *models.Job
}

func NewJobsStore(d *Deps) *JobsStore {
	return &JobsStore{d: d, filter: models.DefaultJobFilter()}
}

func (s *JobsStore) Filter() models.JobFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *JobsStore) SetFilter(f models.JobFilter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// FetchJobs loads the job list for the store filter with overrides applied.
func (s *JobsStore) FetchJobs(ctx context.Context, overrides *models.JobFilterPatch, useCache bool) error {
	params := s.Filter().Merge(overrides)
	key := Key(JobsPrefix, params)

	list, err := cached(s.d, key, s.d.VolatileTTL, useCache, func() (api.List[models.Job], error) {
		defer s.busy.start()()
		return s.d.API.Jobs().List(ctx, params)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch jobs: %w", err)
	}

	s.mu.Lock()
	s.jobs = list.Data
	s.total = list.Total
	s.mu.Unlock()
	return nil
}

func (s *JobsStore) FetchJob(ctx context.Context, id string) (models.Job, error) {
	defer s.busy.start()()
	job, err := s.d.API.Jobs().Get(ctx, id)
	if err != nil {
		return job, fmt.Errorf("failed to fetch job: %w", err)
	}
	s.mu.Lock()
	s.current = &job
	s.mu.Unlock()
	return job, nil
}

func (s *JobsStore) CreateJob(ctx context.Context, req models.CreateJobRequest) (models.Job, error) {
	return mutate(ctx, s, "create job", func() (models.Job, error) {
		return s.d.API.Jobs().Create(ctx, req)
	})
}

func (s *JobsStore) UpdateJob(ctx context.Context, id string, req models.UpdateJobRequest) (models.Job, error) {
	return mutate(ctx, s, "update job", func() (models.Job, error) {
		return s.d.API.Jobs().Update(ctx, id, req)
	})
}

func (s *JobsStore) DeleteJob(ctx context.Context, id string) error {
	_, err := mutate(ctx, s, "delete job", func() (struct{}, error) {
		return struct{}{}, s.d.API.Jobs().Delete(ctx, id)
	})
	return err
}

func (s *JobsStore) ExecuteJob(ctx context.Context, id string) (models.Message, error) {
	return mutate(ctx, s, "execute job", func() (models.Message, error) {
		return s.d.API.Jobs().Execute(ctx, id)
	})
}

func (s *JobsStore) CloneJob(ctx context.Context, id, scheduledAt string) (models.Job, error) {
	return mutate(ctx, s, "clone job", func() (models.Job, error) {
		return s.d.API.Jobs().Clone(ctx, id, scheduledAt)
	})
}

func (s *JobsStore) CancelJob(ctx context.Context, id string) (models.Message, error) {
	return mutate(ctx, s, "cancel job", func() (models.Message, error) {
		return s.d.API.Jobs().Cancel(ctx, id)
	})
}

// mutate runs op, drops every cached job list and reloads with the store
// filter. A failed reload is reported alongside the successful result.
func mutate[T any](ctx context.Context, s *JobsStore, what string, op func() (T, error)) (T, error) {
	done := s.busy.start()
	v, err := op()
	done()
	if err != nil {
		return v, fmt.Errorf("failed to %s: %w", what, err)
	}

	s.d.Cache.InvalidatePrefix(JobsPrefix)
	if err := s.FetchJobs(ctx, nil, false); err != nil {
		return v, err
	}
	return v, nil
}

func (s *JobsStore) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Job(nil), s.jobs...)
}

func (s *JobsStore) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Current is the job loaded by the last FetchJob, if any.
func (s *JobsStore) Current() (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Job{}, false
	}
	return *s.current, true
}

func (s *JobsStore) Loading() bool { return s.busy.active() }

func (s *JobsStore) ScheduledJobs() []models.Job {
	return s.withStatus(models.JobStatusScheduled)
}

func (s *JobsStore) RunningJobs() []models.Job {
	return s.withStatus(models.JobStatusRunning)
}

func (s *JobsStore) withStatus(st models.JobStatus) []models.Job {
	return utils.Filter(s.Jobs(), func(j models.Job) bool { return j.Status == st })
}
