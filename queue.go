package ssd1306

import (
	"context"
	"time"
)

// Queue serialises drawing from any number of goroutines onto one render loop.
//
// Producers submit operations with Do or TryDo. Run is the only goroutine that touches the
// display: it applies operations in submission order and renders on every tick.
type Queue struct {
	d   *Display
	ops chan func(*Display)
}

// NewQueue returns a queue for d that buffers up to size operations.
func NewQueue(d *Display, size int) *Queue {
	return &Queue{
		d:   d,
		ops: make(chan func(*Display), max(size, 0)),
	}
}

// Do submits op, waiting for room in the queue until ctx is done.
func (q *Queue) Do(ctx context.Context, op func(*Display)) error {
	select {
	case q.ops <- op:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryDo submits op if the queue has room, it reports false if op was dropped.
func (q *Queue) TryDo(op func(*Display)) bool {
	select {
	case q.ops <- op:
		return true
	default:
		return false
	}
}

// Run applies queued operations and renders the display every interval until ctx is done.
// It returns the first render error, or the context error.
func (q *Queue) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	q.d.log.Debug("render loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			q.d.log.Debug("render loop stopped", "frames", q.d.Frames())
			return ctx.Err()
		case op := <-q.ops:
			op(q.d)
		case <-ticker.C:
			if err := q.d.Render(); err != nil {
				q.d.log.Error("render failed", "frame", q.d.Frames(), "error", err)
				return err
			}
		}
	}
}
