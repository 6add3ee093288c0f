package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"universal-scraper/internal/config"
	"universal-scraper/internal/logging/types"
	"universal-scraper/internal/pipeline"
	"universal-scraper/internal/session"
	"universal-scraper/pkg/models"
	"universal-scraper/pkg/utils"
)

// Task manager configuration constants
const (
	DefaultMaxWorkers   = 2
	DefaultMaxQueueSize = 20

	MaxWorkers   = 64
	MaxQueueSize = 10000

	cleanupInterval = time.Hour
)

// Runner executes one scrape; *pipeline.Pipeline satisfies it
type Runner interface {
	Run(ctx context.Context, req *models.ScrapeRequest) (*pipeline.Result, error)
}

// TaskManager runs scrape jobs on a bounded worker pool. Each job is a
// sequential pipeline run; on success its result replaces the submitting
// session's stored result, exactly like a synchronous scrape.
type TaskManager struct {
	runner    Runner
	sessions  session.Store
	store     TaskStore
	logger    types.Logger
	timeout   time.Duration
	retention time.Duration

	maxWorkers int
	taskChan   chan *taskExecution

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
}

type taskExecution struct {
	processID string
	sessionID string
	request   models.ScrapeRequest
}

// clampPool validates and returns safe pool values
func clampPool(workers, queueSize int) (int, int) {
	if workers <= 0 {
		workers = DefaultMaxWorkers
	} else if workers > MaxWorkers {
		workers = MaxWorkers
	}

	if queueSize <= 0 {
		queueSize = DefaultMaxQueueSize
	} else if queueSize > MaxQueueSize {
		queueSize = MaxQueueSize
	}

	return workers, queueSize
}

// NewTaskManager creates a new task manager
func NewTaskManager(cfg *config.Config, runner Runner, sessions session.Store, logger types.Logger) *TaskManager {
	workers, queueSize := clampPool(cfg.Jobs.Workers, cfg.Jobs.QueueSize)

	logger.Info("Task manager configuration initialized", map[string]interface{}{
		"max_workers":    workers,
		"max_queue_size": queueSize,
	})

	return &TaskManager{
		runner:     runner,
		sessions:   sessions,
		store:      NewInMemoryTaskStore(),
		logger:     logger.WithField("component", "task_manager"),
		timeout:    cfg.Jobs.Timeout,
		retention:  cfg.Jobs.Retention,
		maxWorkers: workers,
		taskChan:   make(chan *taskExecution, queueSize),
	}
}

// Start starts the workers and the cleanup routine
func (tm *TaskManager) Start(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.running {
		return fmt.Errorf("task manager already running")
	}

	tm.ctx, tm.cancel = context.WithCancel(ctx)
	tm.running = true

	for i := 0; i < tm.maxWorkers; i++ {
		tm.wg.Add(1)
		go tm.worker(i)
	}

	tm.wg.Add(1)
	go tm.cleanupRoutine()

	tm.logger.Info("Task manager started", map[string]interface{}{
		"max_workers": tm.maxWorkers,
	})
	return nil
}

// Stop cancels in-flight jobs and waits for workers, bounded by ctx
func (tm *TaskManager) Stop(ctx context.Context) error {
	tm.mu.Lock()
	if !tm.running {
		tm.mu.Unlock()
		return nil
	}
	tm.running = false
	tm.cancel()
	tm.mu.Unlock()

	done := make(chan struct{})
	go func() {
		tm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		tm.logger.Info("Task manager stopped gracefully")
		return nil
	case <-ctx.Done():
		tm.logger.Warn("Task manager shutdown timed out")
		return ctx.Err()
	}
}

// IsHealthy reports whether the manager accepts jobs
func (tm *TaskManager) IsHealthy() bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.running && tm.ctx.Err() == nil
}

// SubmitScrapeTask queues a validated request and returns the accepted job
func (tm *TaskManager) SubmitScrapeTask(ctx context.Context, sessionID string, request models.ScrapeRequest) (*TaskResult, error) {
	if !tm.IsHealthy() {
		return nil, ErrNotRunning
	}

	result := &TaskResult{
		ProcessID: uuid.New().String(),
		SessionID: sessionID,
		URL:       request.URL,
		Status:    TaskStatusAccepted,
		CreatedAt: time.Now(),
	}
	if err := tm.store.Store(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to store task result: %w", err)
	}

	execution := &taskExecution{processID: result.ProcessID, sessionID: sessionID, request: request}

	select {
	case tm.taskChan <- execution:
	default:
		_ = tm.store.Update(ctx, result.ProcessID, func(r *TaskResult) {
			r.Status = TaskStatusFailure
			r.Error = ErrQueueFull.Error()
		})
		return nil, ErrQueueFull
	}

	tm.logger.Info("Task accepted", map[string]interface{}{
		"process_id": result.ProcessID,
		"url":        request.URL,
	})
	return result, nil
}

// GetTaskResult returns a job by id
func (tm *TaskManager) GetTaskResult(ctx context.Context, processID string) (*TaskResult, error) {
	return tm.store.Get(ctx, processID)
}

func (tm *TaskManager) worker(workerID int) {
	defer tm.wg.Done()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case task := <-tm.taskChan:
			tm.processTask(workerID, task)
		}
	}
}

func (tm *TaskManager) processTask(workerID int, task *taskExecution) {
	startTime := time.Now()
	logger := tm.logger.WithFields(map[string]interface{}{
		"worker_id":  workerID,
		"process_id": task.processID,
		"session_id": task.sessionID,
	})

	if err := tm.store.Update(tm.ctx, task.processID, func(r *TaskResult) { r.Status = TaskStatusProcessing }); err != nil {
		logger.Error("Failed to update task status to processing", map[string]interface{}{"error": err.Error()})
		return
	}

	ctx := tm.ctx
	if tm.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(tm.ctx, tm.timeout)
		defer cancel()
	}

	runResult, err := tm.runner.Run(ctx, &task.request)
	if err == nil {
		if storeErr := tm.sessions.Put(ctx, task.sessionID, runResult.Extraction); storeErr != nil {
			err = fmt.Errorf("failed to store session result: %w", storeErr)
		}
	}

	processingTime := time.Since(startTime)
	completedAt := time.Now()

	updateErr := tm.store.Update(context.Background(), task.processID, func(r *TaskResult) {
		r.CompletedAt = &completedAt
		r.ProcessingTime = utils.FormatDuration(processingTime)
		if err != nil {
			r.Status = TaskStatusFailure
			r.Error = err.Error()
			r.ErrorKind = "internal_error"
			if errors.Is(err, context.DeadlineExceeded) {
				r.ErrorKind = "timeout"
			} else if customErr, ok := utils.AsCustomError(err); ok {
				r.ErrorKind = customErr.Kind
			}
			return
		}
		r.Status = TaskStatusSuccess
		r.Result = runResult.Extraction
	})
	if updateErr != nil {
		logger.Error("Failed to store task result", map[string]interface{}{"error": updateErr.Error()})
	}

	if err != nil {
		logger.Error("Task execution failed", map[string]interface{}{
			"processing_time": processingTime.String(),
			"error":           err.Error(),
		})
		return
	}

	logger.Info("Task execution completed successfully", map[string]interface{}{
		"processing_time": processingTime.String(),
		"records":         len(runResult.Extraction.Records),
	})
}

// cleanupRoutine periodically drops finished jobs past retention
func (tm *TaskManager) cleanupRoutine() {
	defer tm.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case <-ticker.C:
			removed, err := tm.store.Cleanup(context.Background(), tm.retention)
			if err != nil {
				tm.logger.Error("Failed to cleanup old task results", map[string]interface{}{"error": err.Error()})
				continue
			}
			if removed > 0 {
				tm.logger.Debug("Cleaned up task results", map[string]interface{}{"removed": removed})
			}
		}
	}
}
