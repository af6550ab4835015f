package stream

import (
	"context"
	"sync"
	"time"
)

// FrameHandle identifies a requested frame callback. The zero handle is never
// issued.
type FrameHandle uint64

// FrameCallback runs once per requested frame with the host's timestamp.
type FrameCallback func(timestamp time.Duration)

// A Scheduler runs callbacks before the host's next repaint.
type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameHandle
	CancelFrame(h FrameHandle)
}

type pendingFrame struct {
	handle FrameHandle
	cb     FrameCallback
}

// FrameQueue holds requested callbacks until the host flushes them.
type FrameQueue struct {
	mu      sync.Mutex
	next    FrameHandle
	pending []pendingFrame
}

// NewFrameQueue creates an empty FrameQueue.
func NewFrameQueue() *FrameQueue {
	return new(FrameQueue)
}

// RequestFrame queues cb for the next Flush.
func (q *FrameQueue) RequestFrame(cb FrameCallback) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	q.pending = append(q.pending, pendingFrame{handle: q.next, cb: cb})
	return q.next
}

// CancelFrame removes h if it has not run yet.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.pending {
		if p.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next Flush.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs the callbacks queued before it was called, in request order.
// Callbacks requested while flushing wait for the next Flush.
func (q *FrameQueue) Flush(timestamp time.Duration) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, p := range batch {
		p.cb(timestamp)
	}
	return len(batch)
}

// Ticker is a Scheduler that flushes its queue at a fixed frame rate.
type Ticker struct {
	*FrameQueue
	interval time.Duration
}

// NewTicker creates a Ticker running frameRate frames per second.
func NewTicker(frameRate float64) *Ticker {
	t := new(Ticker)
	t.FrameQueue = NewFrameQueue()
	t.interval = time.Duration(float64(time.Second) / frameRate)
	return t
}

// Run flushes the queue every frame interval with the time since Run began.
// All callbacks run on the calling goroutine. Run returns when ctx is done.
func (t *Ticker) Run(ctx context.Context) {
	publishTimer := time.NewTicker(t.interval)
	defer publishTimer.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-publishTimer.C:
			t.Flush(now.Sub(start))
		}
	}
}
