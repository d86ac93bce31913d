package comparison

import (
	"context"
	"sync"

	"dbcompare/core/compare"
	"dbcompare/core/database"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// runKey is the singleflight key of a full run.
const runKey = "run"

// Service exposes comparison runs to HTTP callers.
type Service struct {
	engine *compare.Engine
	logger *zap.Logger

	sf   singleflight.Group
	mu   sync.RWMutex
	last *compare.Summary
}

// NewService creates a new comparison service around engine.
func NewService(engine *compare.Engine, logger *zap.Logger) *Service {
	return &Service{
		engine: engine,
		logger: logger,
	}
}

// Run executes a full comparison. Callers arriving while a run is in flight
// wait for it and share its summary; shared reports whether that happened.
func (s *Service) Run(ctx context.Context) (summary *compare.Summary, shared bool, err error) {
	result, err, shared := s.sf.Do(runKey, func() (interface{}, error) {
		// The run outlives the request that started it, other callers may be waiting.
		summary, err := s.engine.Run(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.last = summary
		s.mu.Unlock()

		return summary, nil
	})
	if err != nil {
		return nil, shared, err
	}
	return result.(*compare.Summary), shared, nil
}

// Last returns the summary of the most recent completed run, nil if none.
func (s *Service) Last() *compare.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// CompareTable compares one table, ignoring exclusions.
func (s *Service) CompareTable(ctx context.Context, table database.Table) compare.Result {
	return s.engine.CompareTable(ctx, table)
}

// Tables lists the tables of the new database with their exclusion status.
func (s *Service) Tables(ctx context.Context) ([]compare.TableStatus, error) {
	return s.engine.Tables(ctx)
}
