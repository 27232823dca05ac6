package routemap

import (
	"sync"
)

// Hook function types for stage events
type (
	// StageStartedHook is called before a stage runs
	StageStartedHook func(stage Stage)

	// StageCompletedHook is called after a stage succeeds
	StageCompletedHook func(result StageResult)

	// StageFailedHook is called when a stage returns an error
	StageFailedHook func(stage Stage, err error)
)

// hooks manages event callbacks for stage execution
type hooks struct {
	mu               sync.RWMutex
	onStageStarted   []StageStartedHook
	onStageCompleted []StageCompletedHook
	onStageFailed    []StageFailedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnStageStarted registers a callback for when a stage starts
func (h *hooks) OnStageStarted(fn StageStartedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStageStarted = append(h.onStageStarted, fn)
}

// OnStageCompleted registers a callback for when a stage completes
func (h *hooks) OnStageCompleted(fn StageCompletedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStageCompleted = append(h.onStageCompleted, fn)
}

// OnStageFailed registers a callback for when a stage fails
func (h *hooks) OnStageFailed(fn StageFailedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onStageFailed = append(h.onStageFailed, fn)
}

func (h *hooks) triggerStarted(stage Stage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onStageStarted {
		hook(stage)
	}
}

func (h *hooks) triggerCompleted(result StageResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onStageCompleted {
		hook(result)
	}
}

func (h *hooks) triggerFailed(stage Stage, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onStageFailed {
		hook(stage, err)
	}
}
