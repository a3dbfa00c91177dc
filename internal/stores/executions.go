package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/meysam81/oneoffctl/internal/models"
)

const ExecutionsPrefix = "executions_"

type ExecutionsStore struct {
	d    *Deps
	busy busy

	mu         sync.RWMutex
	executions []models.Execution
	current    *models.Execution
}

func NewExecutionsStore(d *Deps) *ExecutionsStore {
	return &ExecutionsStore{d: d}
}

func (s *ExecutionsStore) FetchExecutions(ctx context.Context, f models.ExecutionFilter, useCache bool) error {
	key := Key(ExecutionsPrefix, f)
	list, err := cached(s.d, key, s.d.VolatileTTL, useCache, func() ([]models.Execution, error) {
		defer s.busy.start()()
		return s.d.API.Executions().List(ctx, f)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch executions: %w", err)
	}

	s.mu.Lock()
	s.executions = list
	s.mu.Unlock()
	return nil
}

func (s *ExecutionsStore) FetchExecution(ctx context.Context, id string) (models.Execution, error) {
	defer s.busy.start()()
	e, err := s.d.API.Executions().Get(ctx, id)
	if err != nil {
		return e, fmt.Errorf("failed to fetch execution: %w", err)
	}
	s.mu.Lock()
	s.current = &e
	s.mu.Unlock()
	return e, nil
}

func (s *ExecutionsStore) Executions() []models.Execution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Execution(nil), s.executions...)
}

func (s *ExecutionsStore) Current() (models.Execution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Execution{}, false
	}
	return *s.current, true
}

func (s *ExecutionsStore) Loading() bool { return s.busy.active() }
