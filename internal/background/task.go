package background

import (
	"context"
	"errors"
	"sync"
	"time"

	"universal-scraper/pkg/models"
)

// TaskStatus represents the status of a background scrape job
type TaskStatus string

const (
	TaskStatusAccepted   TaskStatus = "ACCEPTED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusSuccess    TaskStatus = "SUCCESS"
	TaskStatusFailure    TaskStatus = "FAILURE"
)

// Done reports whether the status is terminal
func (s TaskStatus) Done() bool {
	return s == TaskStatusSuccess || s == TaskStatusFailure
}

// TaskResult is the externally visible state of one job
type TaskResult struct {
	ProcessID      string                   `json:"process_id"`
	SessionID      string                   `json:"-"`
	URL            string                   `json:"url"`
	Status         TaskStatus               `json:"status"`
	Result         *models.ExtractionResult `json:"result,omitempty"`
	Error          string                   `json:"error,omitempty"`
	ErrorKind      string                   `json:"error_kind,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	CompletedAt    *time.Time               `json:"completed_at,omitempty"`
	ProcessingTime string                   `json:"processing_time,omitempty"`
}

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrQueueFull    = errors.New("task queue is full")
	ErrNotRunning   = errors.New("task manager is not running")
)

// TaskStore keeps job state for polling
type TaskStore interface {
	Store(ctx context.Context, result *TaskResult) error
	Get(ctx context.Context, processID string) (*TaskResult, error)
	Update(ctx context.Context, processID string, fn func(*TaskResult)) error
	Cleanup(ctx context.Context, maxAge time.Duration) (int, error)
}

// InMemoryTaskStore implements TaskStore using in-memory storage
type InMemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*TaskResult
	now   func() time.Time
}

// NewInMemoryTaskStore creates a new in-memory task store
func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		tasks: make(map[string]*TaskResult),
		now:   time.Now,
	}
}

// Store stores a task result
func (s *InMemoryTaskStore) Store(ctx context.Context, result *TaskResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *result
	s.tasks[result.ProcessID] = &copied
	return nil
}

// Get returns a copy so callers never race with the worker mutating it
func (s *InMemoryTaskStore) Get(ctx context.Context, processID string) (*TaskResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, exists := s.tasks[processID]
	if !exists {
		return nil, ErrTaskNotFound
	}

	copied := *result
	return &copied, nil
}

// Update applies fn to the stored result under the lock
func (s *InMemoryTaskStore) Update(ctx context.Context, processID string, fn func(*TaskResult)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, exists := s.tasks[processID]
	if !exists {
		return ErrTaskNotFound
	}

	fn(result)
	return nil
}

// Cleanup removes finished results older than maxAge and returns how many were dropped
func (s *InMemoryTaskStore) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	removed := 0

	for processID, result := range s.tasks {
		if result.Status.Done() && result.CreatedAt.Before(cutoff) {
			delete(s.tasks, processID)
			removed++
		}
	}

	return removed, nil
}

// Len returns the number of tracked jobs
func (s *InMemoryTaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
