package stream

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// A FrameSink receives every painted frame. It must not keep f past the call.
type FrameSink interface {
	SendFrame(f *Frame)
}

// FrameSinks fans a frame out to several sinks in order.
type FrameSinks []FrameSink

// SendFrame sends f to each sink.
func (s FrameSinks) SendFrame(f *Frame) {
	for _, sink := range s {
		sink.SendFrame(f)
	}
}

// ControllerOptions wires a Controller to its collaborators.
type ControllerOptions struct {
	Scheduler Scheduler
	Animation Animation
	Renderer  *Renderer
	Frame     *Frame
	Sink      FrameSink
	Paused    bool
}

// Controller drives the scene once per scheduled frame: it measures elapsed
// time, advances the animation and repaints while running, and always asks
// for the next frame until stopped.
//
// A single Controller should own a given Frame.
type Controller struct {
	scheduler Scheduler
	running   atomic.Bool

	mu        sync.Mutex
	clock     Clock
	animation Animation
	renderer  *Renderer
	frame     *Frame
	sink      FrameSink
	state     State
	handle    FrameHandle
	started   bool
}

// NewController creates an instance of a Controller.
func NewController(opts ControllerOptions) *Controller {
	c := new(Controller)
	c.scheduler = opts.Scheduler
	c.animation = opts.Animation
	c.renderer = opts.Renderer
	c.frame = opts.Frame
	c.sink = opts.Sink
	c.running.Store(!opts.Paused)

	if r, ok := c.animation.(interface{ Reset(*State) }); ok {
		r.Reset(&c.state)
	}

	return c
}

// Start requests the first frame. It reports false, without scheduling
// anything, when there is no surface or renderer to paint with.
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return true
	}
	if c.frame == nil || c.renderer == nil || c.animation == nil || c.scheduler == nil {
		log.Println("No surface to render on, not starting")
		return false
	}

	c.started = true
	c.handle = c.scheduler.RequestFrame(c.tick)
	return true
}

// Stop cancels the outstanding frame request. It is safe to call repeatedly.
// A callback the host already started still completes but is not rescheduled.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.started = false
	if c.handle != 0 {
		c.scheduler.CancelFrame(c.handle)
		c.handle = 0
	}
	c.clock.Reset()
}

func (c *Controller) tick(timestamp time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := c.clock.Tick(timestamp)
	if c.running.Load() {
		c.animation.Advance(&c.state, elapsed)
		c.renderer.Paint(c.frame, c.state, elapsed)
		if c.sink != nil {
			c.sink.SendFrame(c.frame)
		}
	}

	if c.started {
		c.handle = c.scheduler.RequestFrame(c.tick)
	} else {
		c.handle = 0
	}
}

// Toggle flips the run flag and returns the new value.
func (c *Controller) Toggle() bool {
	for {
		old := c.running.Load()
		if c.running.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetRunning sets the run flag.
func (c *Controller) SetRunning(running bool) {
	c.running.Store(running)
}

// Running reports whether the scene advances on the next tick.
func (c *Controller) Running() bool {
	return c.running.Load()
}

// State returns a copy of the animation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetAnimation replaces the animation from the next tick on.
func (c *Controller) SetAnimation(a Animation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.animation = a
}

// SetSink replaces the frame sink from the next tick on.
func (c *Controller) SetSink(sink FrameSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = sink
}

// SetRenderer replaces the renderer from the next tick on.
func (c *Controller) SetRenderer(r *Renderer) {
	if r == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer = r
}
