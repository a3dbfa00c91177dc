package stores

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/meysam81/oneoffctl/internal/dedupe"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/models"
)

const (
	SystemPrefix = "system_"

	keyStats    = SystemPrefix + "stats"
	keyWorkers  = SystemPrefix + "workers"
	keyTags     = SystemPrefix + "tags"
	keyJobTypes = SystemPrefix + "job_types"
	keyConfig   = SystemPrefix + "config"
)

func projectsKey(includeArchived bool) string {
	return SystemPrefix + "projects_" + strconv.FormatBool(includeArchived)
}

// SystemStore holds stats, worker status and the reference collections.
type SystemStore struct {
	d    *Deps
	busy busy

	mu       sync.RWMutex
	stats    *models.SystemStats
	workers  *models.WorkerStatus
	projects []models.Project
	tags     []models.Tag
	jobTypes []string
	settings []models.SystemConfig
}

func NewSystemStore(d *Deps) *SystemStore {
	return &SystemStore{d: d}
}

// FetchStats is deduplicated but never cached.
func (s *SystemStore) FetchStats(ctx context.Context) (models.SystemStats, error) {
	st, err := dedupe.Do(s.d.Dedupe, keyStats, func() (models.SystemStats, error) {
		return s.d.API.System().Status(ctx)
	})
	if err != nil {
		return st, fmt.Errorf("failed to fetch stats: %w", err)
	}
	s.mu.Lock()
	s.stats = &st
	s.mu.Unlock()
	return st, nil
}

// FetchWorkerStatus is deduplicated but never cached.
func (s *SystemStore) FetchWorkerStatus(ctx context.Context) (models.WorkerStatus, error) {
	ws, err := dedupe.Do(s.d.Dedupe, keyWorkers, func() (models.WorkerStatus, error) {
		return s.d.API.System().WorkerStatus(ctx)
	})
	if err != nil {
		return ws, fmt.Errorf("failed to fetch worker status: %w", err)
	}
	s.mu.Lock()
	s.workers = &ws
	s.mu.Unlock()
	return ws, nil
}

func (s *SystemStore) FetchProjects(ctx context.Context, includeArchived, useCache bool) ([]models.Project, error) {
	ps, err := cached(s.d, projectsKey(includeArchived), s.d.ReferenceTTL, useCache, func() ([]models.Project, error) {
		return s.d.API.Projects().List(ctx, includeArchived)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	s.mu.Lock()
	s.projects = ps
	s.mu.Unlock()
	return ps, nil
}

func (s *SystemStore) FetchTags(ctx context.Context, useCache bool) ([]models.Tag, error) {
	tags, err := cached(s.d, keyTags, s.d.ReferenceTTL, useCache, func() ([]models.Tag, error) {
		return s.d.API.Tags().List(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	s.mu.Lock()
	s.tags = tags
	s.mu.Unlock()
	return tags, nil
}

func (s *SystemStore) FetchJobTypes(ctx context.Context, useCache bool) ([]string, error) {
	types, err := cached(s.d, keyJobTypes, s.d.ReferenceTTL, useCache, func() ([]string, error) {
		return s.d.API.System().JobTypes(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job types: %w", err)
	}
	s.mu.Lock()
	s.jobTypes = types
	s.mu.Unlock()
	return types, nil
}

func (s *SystemStore) FetchConfig(ctx context.Context) ([]models.SystemConfig, error) {
	cfg, err := dedupe.Do(s.d.Dedupe, keyConfig, func() ([]models.SystemConfig, error) {
		return s.d.API.System().Config(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch config: %w", err)
	}
	s.mu.Lock()
	s.settings = cfg
	s.mu.Unlock()
	return cfg, nil
}

func (s *SystemStore) UpdateConfig(ctx context.Context, key, value string) error {
	if _, err := s.d.API.System().UpdateConfig(ctx, key, value); err != nil {
		return fmt.Errorf("failed to update config %q: %w", key, err)
	}
	_, err := s.FetchConfig(ctx)
	return err
}

func (s *SystemStore) CreateProject(ctx context.Context, req models.ProjectRequest) (models.Project, error) {
	p, err := s.d.API.Projects().Create(ctx, req)
	if err != nil {
		return p, fmt.Errorf("failed to create project: %w", err)
	}
	return p, s.refreshProjects(ctx)
}

func (s *SystemStore) UpdateProject(ctx context.Context, id string, req models.ProjectRequest) (models.Project, error) {
	p, err := s.d.API.Projects().Update(ctx, id, req)
	if err != nil {
		return p, fmt.Errorf("failed to update project: %w", err)
	}
	return p, s.refreshProjects(ctx)
}

func (s *SystemStore) DeleteProject(ctx context.Context, id string) error {
	if err := s.d.API.Projects().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return s.refreshProjects(ctx)
}

func (s *SystemStore) CreateTag(ctx context.Context, req models.TagRequest) (models.Tag, error) {
	t, err := s.d.API.Tags().Create(ctx, req)
	if err != nil {
		return t, fmt.Errorf("failed to create tag: %w", err)
	}
	return t, s.refreshTags(ctx)
}

func (s *SystemStore) UpdateTag(ctx context.Context, id string, req models.TagRequest) (models.Tag, error) {
	t, err := s.d.API.Tags().Update(ctx, id, req)
	if err != nil {
		return t, fmt.Errorf("failed to update tag: %w", err)
	}
	return t, s.refreshTags(ctx)
}

func (s *SystemStore) DeleteTag(ctx context.Context, id string) error {
	if err := s.d.API.Tags().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return s.refreshTags(ctx)
}

func (s *SystemStore) refreshProjects(ctx context.Context) error {
	s.d.Cache.InvalidatePrefix(SystemPrefix)
	_, err := s.FetchProjects(ctx, false, false)
	return err
}

func (s *SystemStore) refreshTags(ctx context.Context) error {
	s.d.Cache.InvalidatePrefix(SystemPrefix)
	_, err := s.FetchTags(ctx, false)
	return err
}

// InitializeApp loads projects, tags, job types, stats and worker status in
// parallel. A failing collection is logged and leaves the others untouched.
func (s *SystemStore) InitializeApp(ctx context.Context) {
	defer s.busy.start()()

	var g errgroup.Group
	tasks := map[string]func() error{
		"projects":      func() error { _, err := s.FetchProjects(ctx, false, true); return err },
		"tags":          func() error { _, err := s.FetchTags(ctx, true); return err },
		"job types":     func() error { _, err := s.FetchJobTypes(ctx, true); return err },
		"stats":         func() error { _, err := s.FetchStats(ctx); return err },
		"worker status": func() error { _, err := s.FetchWorkerStatus(ctx); return err },
	}
	for name, task := range tasks {
		g.Go(func() error {
			if err := task(); err != nil {
				logger.Warn("%s unavailable: %v", name, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *SystemStore) Stats() (models.SystemStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return models.SystemStats{}, false
	}
	return *s.stats, true
}

func (s *SystemStore) WorkerStatus() (models.WorkerStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.workers == nil {
		return models.WorkerStatus{}, false
	}
	return *s.workers, true
}

func (s *SystemStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Project(nil), s.projects...)
}

func (s *SystemStore) Tags() []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Tag(nil), s.tags...)
}

func (s *SystemStore) JobTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.jobTypes...)
}

func (s *SystemStore) Loading() bool { return s.busy.active() }
