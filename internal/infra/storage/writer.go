package storage

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"storefront/internal/domain/repository"
)

type writeKind int

const (
	writeSet writeKind = iota
	writeRemove
	writeMarker
)

type writeOp struct {
	kind  writeKind
	key   string
	value string
	keys  []string
	done  chan struct{}
}

// QueueWriter applies storage writes one at a time, in the order they were
// requested, on a single goroutine. Enqueueing never blocks: pending writes
// are held in memory and a Set replaces an earlier pending Set of the same
// key unless a Flush sits between them. Failed writes are logged and dropped.
type QueueWriter struct {
	storage repository.DeviceStorage
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	closed  bool
	pending []writeOp
	wake    chan struct{}
	stopped chan struct{}
}

var _ repository.StorageWriter = (*QueueWriter)(nil)

// NewQueueWriter starts the writer goroutine. size is the initial capacity of
// the pending list. Close stops it.
func NewQueueWriter(storage repository.DeviceStorage, logger *slog.Logger, timeout time.Duration, size int) *QueueWriter {
	w := &QueueWriter{
		storage: storage,
		logger:  logger,
		timeout: timeout,
		pending: make([]writeOp, 0, size),
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}

	go w.run()

	return w
}

func (w *QueueWriter) Set(key, value string) {
	w.enqueue(writeOp{kind: writeSet, key: key, value: value})
}

func (w *QueueWriter) Remove(keys ...string) {
	if len(keys) == 0 {
		return
	}

	w.enqueue(writeOp{kind: writeRemove, keys: keys})
}

// Flush waits until every write enqueued before the call has been applied.
func (w *QueueWriter) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if !w.enqueue(writeOp{kind: writeMarker, done: done}) {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue and stops the writer. Writes enqueued after Close are dropped.
func (w *QueueWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()

		return nil
	}
	w.closed = true
	w.mu.Unlock()
	w.signal()

	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *QueueWriter) enqueue(op writeOp) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.logger.Warn("Storage writer closed, dropping write",
			slog.String("key", op.key),
			slog.Any("keys", op.keys),
		)

		return false
	}

	if op.kind == writeSet {
		w.dropSupersededLocked(op.key)
	}
	w.pending = append(w.pending, op)
	w.mu.Unlock()

	w.signal()

	return true
}

// dropSupersededLocked removes the pending Set of key queued after the last Flush marker.
func (w *QueueWriter) dropSupersededLocked(key string) {
	for i := len(w.pending) - 1; i >= 0; i-- {
		op := w.pending[i]
		if op.kind == writeMarker {
			return
		}
		if op.kind == writeSet && op.key == key {
			w.pending = slices.Delete(w.pending, i, i+1)

			return
		}
	}
}

func (w *QueueWriter) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *QueueWriter) run() {
	defer close(w.stopped)

	for range w.wake {
		w.mu.Lock()
		batch := w.pending
		w.pending = nil
		closed := w.closed
		w.mu.Unlock()

		for _, op := range batch {
			w.apply(op)
		}
		if closed {
			return
		}
	}
}

func (w *QueueWriter) apply(op writeOp) {
	if op.kind == writeMarker {
		close(op.done)

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	switch op.kind {
	case writeSet:
		if err := w.storage.SetItem(ctx, op.key, op.value); err != nil {
			w.logger.Error("Failed to persist storage key",
				slog.String("key", op.key),
				slog.Any("error", err),
			)
		}
	case writeRemove:
		if err := w.storage.RemoveItems(ctx, op.keys...); err != nil {
			w.logger.Error("Failed to remove storage keys",
				slog.Any("keys", op.keys),
				slog.Any("error", err),
			)
		}
	}
}
