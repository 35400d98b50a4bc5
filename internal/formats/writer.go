package formats

import (
	"context"
	"log/slog"
	"sync"

	"minutes/internal/logging"
)

type writeKind int

const (
	writePut writeKind = iota
	writeDelete
	writeBarrier
)

type writeOp struct {
	ctx    context.Context
	kind   writeKind
	record Record
	id     string
	done   chan struct{}
}

// writer applies repository writes on one goroutine in FIFO order. The queue
// is unbounded so a stalled store never blocks a command.
type writer struct {
	repo   Repository
	logger *slog.Logger

	mu      sync.Mutex
	pending []writeOp
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

func newWriter(repo Repository, logger *slog.Logger) *writer {
	w := &writer{
		repo:    repo,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) enqueue(op writeOp) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false
	}
	w.pending = append(w.pending, op)
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default:
	}
	return true
}

func (w *writer) put(ctx context.Context, record Record) {
	if !w.enqueue(writeOp{ctx: context.WithoutCancel(ctx), kind: writePut, record: record}) {
		w.logger.Warn("format write dropped after close", logging.FormatID(record.ID))
	}
}

func (w *writer) delete(ctx context.Context, id string) {
	if !w.enqueue(writeOp{ctx: context.WithoutCancel(ctx), kind: writeDelete, id: id}) {
		w.logger.Warn("format delete dropped after close", logging.FormatID(id))
	}
}

// flush waits until every write enqueued before the call has been applied.
func (w *writer) flush(ctx context.Context) error {
	done := make(chan struct{})
	if !w.enqueue(writeOp{kind: writeBarrier, done: done}) {
		select {
		case <-w.stopped:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close drains the queue and stops the goroutine.
func (w *writer) close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default:
	}
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *writer) run() {
	defer close(w.stopped)
	for {
		w.mu.Lock()
		batch := w.pending
		w.pending = nil
		closed := w.closed
		w.mu.Unlock()

		for _, op := range batch {
			w.apply(op)
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-w.wake
	}
}

func (w *writer) apply(op writeOp) {
	switch op.kind {
	case writeBarrier:
		close(op.done)
	case writePut:
		if err := w.repo.Put(op.ctx, op.record); err != nil {
			logging.WithContext(op.ctx, w.logger).Warn("format write failed; change kept for this session",
				logging.FormatID(op.record.ID),
				logging.Error(err),
			)
			return
		}
		logging.WithContext(op.ctx, w.logger).Debug("format persisted",
			logging.FormatID(op.record.ID),
			logging.Bool("selected", op.record.Selected),
		)
	case writeDelete:
		deleter, ok := w.repo.(Deleter)
		if !ok {
			w.logger.Warn("repository cannot delete; record will reappear on reload", logging.FormatID(op.id))
			return
		}
		if err := deleter.Delete(op.ctx, op.id); err != nil {
			logging.WithContext(op.ctx, w.logger).Warn("format delete failed; change kept for this session",
				logging.FormatID(op.id),
				logging.Error(err),
			)
		}
	}
}
