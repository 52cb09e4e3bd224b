package service

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// StatusRefreshWorker periodically re-derives policy statuses and corrects the
// stored column where the calendar has moved a policy into a new status
type StatusRefreshWorker struct {
	notifier
	policyRepo domain.PolicyRepository
	logger     zerolog.Logger
	interval   time.Duration
	batchSize  int32
	now        func() time.Time
	mu         sync.Mutex
	running    bool
	current    *workerRun
}

// workerRun is one Start..Stop lifetime. Stop may be called any number of
// times and from several goroutines; stop is closed exactly once.
type workerRun struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StatusRefreshWorkerConfig holds configuration for the status refresh worker
type StatusRefreshWorkerConfig struct {
	Interval  time.Duration
	BatchSize int32
}

// DefaultStatusRefreshWorkerConfig returns an hourly refresh in pages of 500
func DefaultStatusRefreshWorkerConfig() StatusRefreshWorkerConfig {
	return StatusRefreshWorkerConfig{
		Interval:  time.Hour,
		BatchSize: 500,
	}
}

// RefreshResult reports one pass over all policies
type RefreshResult struct {
	Scanned    int
	Changed    int
	Workspaces int
}

// NewStatusRefreshWorker creates a new status refresh worker
func NewStatusRefreshWorker(policyRepo domain.PolicyRepository, logger zerolog.Logger, config StatusRefreshWorkerConfig) *StatusRefreshWorker {
	defaults := DefaultStatusRefreshWorkerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}

	return &StatusRefreshWorker{
		policyRepo: policyRepo,
		logger:     logger.With().Str("component", "status_refresh_worker").Logger(),
		interval:   config.Interval,
		batchSize:  config.BatchSize,
		now:        time.Now,
	}
}

// Start begins the background refresh. A stopped worker can be started again.
func (w *StatusRefreshWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	run := &workerRun{stop: make(chan struct{}), done: make(chan struct{})}
	w.running = true
	w.current = run
	w.mu.Unlock()

	w.logger.Info().
		Dur("interval", w.interval).
		Int32("batch_size", w.batchSize).
		Msg("Starting status refresh worker")

	go w.run(ctx, run)
}

// Stop gracefully stops the worker and waits for the current pass to end
func (w *StatusRefreshWorker) Stop() {
	w.mu.Lock()
	run := w.current
	w.mu.Unlock()
	if run == nil {
		return
	}

	first := false
	run.stopOnce.Do(func() {
		first = true
		w.logger.Info().Msg("Stopping status refresh worker")
		close(run.stop)
	})
	<-run.done
	if first {
		w.logger.Info().Msg("Status refresh worker stopped")
	}
}

// stopSignal is closed when the running worker is asked to stop; nil when idle
func (w *StatusRefreshWorker) stopSignal() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return nil
	}
	return w.current.stop
}

func (w *StatusRefreshWorker) run(ctx context.Context, run *workerRun) {
	defer close(run.done)
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-run.stop:
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *StatusRefreshWorker) refresh(ctx context.Context) {
	startTime := time.Now()
	result, err := w.RefreshAll(ctx)
	if err != nil {
		w.logger.Error().Err(err).Int("scanned", result.Scanned).Msg("Status refresh failed")
		return
	}

	w.logger.Info().
		Int("scanned", result.Scanned).
		Int("changed", result.Changed).
		Int("workspaces", result.Workspaces).
		Dur("elapsed", time.Since(startTime)).
		Msg("Completed status refresh")
}

// RefreshAll walks every non-deleted policy in id order, writes corrected statuses
// page by page and notifies each workspace that had changes
func (w *StatusRefreshWorker) RefreshAll(ctx context.Context) (RefreshResult, error) {
	var result RefreshResult
	changedByWorkspace := make(map[int32][]int32)
	now := w.now()

	stop := w.stopSignal()
	var afterID int32
pages:
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-stop:
			w.logger.Info().Msg("Stop signal received, stopping refresh")
			break pages
		default:
		}

		policies, err := w.policyRepo.ListForStatusRefresh(afterID, w.batchSize)
		if err != nil {
			return result, err
		}
		if len(policies) == 0 {
			break
		}

		var updates []domain.PolicyStatusUpdate
		for _, p := range policies {
			if p.RefreshStatus(now) {
				updates = append(updates, domain.PolicyStatusUpdate{ID: p.ID, WorkspaceID: p.WorkspaceID, Status: p.Status})
				changedByWorkspace[p.WorkspaceID] = append(changedByWorkspace[p.WorkspaceID], p.ID)
			}
		}
		if len(updates) > 0 {
			if err := w.policyRepo.UpdateStatuses(updates); err != nil {
				return result, err
			}
		}

		result.Scanned += len(policies)
		result.Changed += len(updates)
		afterID = policies[len(policies)-1].ID
		if int32(len(policies)) < w.batchSize {
			break
		}
	}

	for workspaceID, ids := range changedByWorkspace {
		w.logger.Debug().Int32("workspace_id", workspaceID).Int("changed", len(ids)).Msg("Policy statuses changed")
		w.invalidateDashboard(workspaceID)
		w.publishEvent(workspaceID, websocket.PolicyStatusChanged(ids))
	}
	result.Workspaces = len(changedByWorkspace)
	return result, nil
}

// IsRunning returns whether the worker is currently running
func (w *StatusRefreshWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
