// Package state tracks the one-time asynchronous graph load.
package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"maxim-atlas/backend/internal/constants"
	"maxim-atlas/backend/internal/graph"
	apperrors "maxim-atlas/backend/pkg/errors"
)

// Status of the graph load
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Snapshot is a point-in-time view of the load state
type Snapshot struct {
	Status   Status    `json:"status"`
	Source   string    `json:"source,omitempty"`
	Error    string    `json:"error,omitempty"`
	Nodes    int       `json:"nodes"`
	Edges    int       `json:"edges"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// Holder owns the graph once loaded. Until then, and after a failed load,
// Store reports why no graph is available.
type Holder struct {
	mu       sync.RWMutex
	status   Status
	source   string
	store    *graph.Store
	err      error
	loadedAt time.Time

	retryDelay time.Duration

	done     chan struct{}
	doneOnce sync.Once
}

// NewHolder starts in the loading state
func NewHolder() *Holder {
	return &Holder{
		status:     StatusLoading,
		retryDelay: constants.GraphLoadRetryDelay,
		done:       make(chan struct{}),
	}
}

// SetReady records a successful load
func (h *Holder) SetReady(store *graph.Store, source string) {
	h.mu.Lock()
	h.status = StatusReady
	h.store = store
	h.source = source
	h.err = nil
	h.loadedAt = time.Now()
	h.mu.Unlock()

	h.doneOnce.Do(func() { close(h.done) })
}

// SetFailed records a failed load
func (h *Holder) SetFailed(err error, source string) {
	h.mu.Lock()
	h.status = StatusFailed
	h.source = source
	h.err = err
	h.mu.Unlock()

	h.doneOnce.Do(func() { close(h.done) })
}

// Done is closed once the load has either succeeded or failed
func (h *Holder) Done() <-chan struct{} {
	return h.done
}

// Store returns the loaded graph, ErrGraphNotReady while loading, or the load error
func (h *Holder) Store() (*graph.Store, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch h.status {
	case StatusReady:
		return h.store, nil
	case StatusFailed:
		return nil, h.err
	default:
		return nil, apperrors.ErrGraphNotReady
	}
}

// Snapshot returns the current load state
func (h *Holder) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	s := Snapshot{
		Status:   h.status,
		Source:   h.source,
		LoadedAt: h.loadedAt,
	}
	if h.err != nil {
		s.Error = h.err.Error()
	}
	if h.store != nil {
		s.Nodes = h.store.Len()
		s.Edges = len(h.store.Edges())
	}
	return s
}

// Load opens src with the given timeout and records the outcome. A
// retryable failure is attempted once more inside the same deadline. The
// returned error is the load failure, if any; the holder keeps it too.
func (h *Holder) Load(ctx context.Context, src graph.Source, timeout time.Duration, logger *zap.Logger) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	logger.Info("Loading graph", zap.String("source", src.String()))

	store, err := graph.Open(ctx, src)
	if err != nil && apperrors.IsRetryable(err) && ctx.Err() == nil {
		logger.Warn("Graph load failed, retrying",
			zap.String("source", src.String()),
			zap.Duration("delay", h.retryDelay),
			zap.Error(err),
		)
		select {
		case <-time.After(h.retryDelay):
			store, err = graph.Open(ctx, src)
		case <-ctx.Done():
		}
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = apperrors.NewGraphLoadFailed(src.String(), apperrors.NewContextTimeout("graph load", timeout))
		}
		h.SetFailed(err, src.String())
		logger.Error("Graph load failed",
			zap.String("source", src.String()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return err
	}

	h.SetReady(store, src.String())
	logger.Info("Graph loaded",
		zap.String("source", src.String()),
		zap.Int("nodes", store.Len()),
		zap.Int("edges", len(store.Edges())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
