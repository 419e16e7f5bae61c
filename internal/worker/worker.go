// Package worker runs file translations off the caller's goroutine and
// reports back through an event channel.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/oukeidos/glosst/internal/batcher"
	"github.com/oukeidos/glosst/internal/logger"
	"github.com/oukeidos/glosst/internal/pipeline"
)

// ErrBusy is returned by Start while a job is still running.
var ErrBusy = errors.New("a translation job is already running")

type EventKind int

const (
	// ControlsDisabled opens every job.
	ControlsDisabled EventKind = iota
	FileStarted
	Total
	Progress
	FileFinished
	// ControlsEnabled closes every job, including one that panicked.
	ControlsEnabled
)

func (k EventKind) String() string {
	switch k {
	case ControlsDisabled:
		return "controls-disabled"
	case FileStarted:
		return "file-started"
	case Total:
		return "total"
	case Progress:
		return "progress"
	case FileFinished:
		return "file-finished"
	case ControlsEnabled:
		return "controls-enabled"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one notification from a running job.
type Event struct {
	JobID string
	Kind  EventKind
	File  string
	// Value is the unit total for Total and the dispatched start index for
	// Progress.
	Value  int
	Result pipeline.TranslationResult
	Err    error
}

// FileTranslator is the part of a pipeline session a job needs.
type FileTranslator interface {
	TranslateFile(ctx context.Context, path string, progress batcher.Progress) (pipeline.TranslationResult, error)
}

// Runner allows one active job at a time. Events must be drained by the
// caller; sends block until received.
type Runner struct {
	translator FileTranslator
	events     chan Event

	mu     sync.Mutex
	active bool
	cancel context.CancelFunc
}

func NewRunner(t FileTranslator, buffer int) *Runner {
	if buffer < 0 {
		buffer = 0
	}
	return &Runner{translator: t, events: make(chan Event, buffer)}
}

func (r *Runner) Events() <-chan Event { return r.events }

// Busy reports whether a job is running.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Start translates paths in order on a new goroutine and returns the job ID.
func (r *Runner) Start(ctx context.Context, paths []string) (string, error) {
	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return "", ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	r.active = true
	r.cancel = cancel
	r.mu.Unlock()

	id := newJobID()
	go r.run(ctx, id, append([]string(nil), paths...))
	return id, nil
}

// Cancel stops the active job, if any. The file in flight fails with the
// context error and the remaining files are not started.
func (r *Runner) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		logger.Warn("Cancellation requested")
		cancel()
	}
}

func (r *Runner) run(ctx context.Context, id string, paths []string) {
	current := ""
	defer func() {
		// A panic in one file ends the job; it is reported against that file.
		if v := recover(); v != nil {
			logger.Error("Recovered panic in job", "job", id, "path", current, "panic", fmt.Sprint(v))
			r.emit(Event{JobID: id, Kind: FileFinished, File: current,
				Result: pipeline.TranslationResult{Status: pipeline.TranslationStatusFailure, SourcePath: current},
				Err:    fmt.Errorf("internal error: %v", v)})
		}
		r.mu.Lock()
		r.active = false
		r.cancel()
		r.cancel = nil
		r.mu.Unlock()
		logger.Info("Job finished", "job", id)
		r.emit(Event{JobID: id, Kind: ControlsEnabled})
	}()

	r.emit(Event{JobID: id, Kind: ControlsDisabled})
	logger.Info("Job started", "job", id, "files", len(paths))

	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		current = path
		r.emit(Event{JobID: id, Kind: FileStarted, File: path})
		res, err := r.translator.TranslateFile(ctx, path, batcher.Progress{
			OnTotal: func(n int) {
				r.emit(Event{JobID: id, Kind: Total, File: path, Value: n})
			},
			OnProgress: func(start int) {
				r.emit(Event{JobID: id, Kind: Progress, File: path, Value: start})
			},
		})
		r.emit(Event{JobID: id, Kind: FileFinished, File: path, Result: res, Err: err})
	}
}

func (r *Runner) emit(e Event) {
	r.events <- e
}

func newJobID() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}
