// Package scheduler drives the background animation: it mounts the renderers
// onto a host, runs one frame per host refresh, and tears everything down on
// unmount.
package scheduler

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iburimskiy/neon-bars/internal/bars"
	"github.com/iburimskiy/neon-bars/internal/config"
	"github.com/iburimskiy/neon-bars/internal/frame"
	"github.com/iburimskiy/neon-bars/internal/input"
	"github.com/iburimskiy/neon-bars/internal/oscillator"
	"github.com/iburimskiy/neon-bars/internal/particle"
	"github.com/iburimskiy/neon-bars/internal/pointer"
	"github.com/iburimskiy/neon-bars/internal/shared"
	"github.com/iburimskiy/neon-bars/internal/surface"
)

// State is the scheduler lifecycle state.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

const (
	// maxDelta caps the particle step after a stall (a hidden window, a debugger).
	maxDelta = 0.1

	statsRingSize = 240
)

// Options configures a Scheduler.
type Options struct {
	Host      Host
	Surface   *surface.Manager
	Layers    []config.LayerConfig
	Speed     float64
	Intensity float64
	// Seed for the oscillator and particle draws; 0 picks a fresh one per mount.
	Seed   uint64
	Logger *log.Logger
	// Now is the clock used for frame budget accounting. Defaults to time.Now.
	Now func() time.Time
}

// Scheduler owns every piece of mutable animation state for one mount. It is
// not safe for concurrent use; the host calls it from a single thread.
type Scheduler struct {
	host      Host
	surface   *surface.Manager
	layers    []config.LayerConfig
	speed     float64
	intensity float64
	seed      uint64
	base      *log.Logger
	logger    *log.Logger
	now       func() time.Time

	state       State
	pending     Handle
	unsubscribe func()
	canvas      surface.Canvas

	tracker   pointer.Tracker
	particles *particle.Field
	renderer  *bars.Renderer
	halo      *halo
	budget    *budget

	origin  time.Duration
	last    time.Duration
	started bool
	ctx     frame.Context
}

// New returns a stopped scheduler.
func New(opts Options) *Scheduler {
	if opts.Surface == nil {
		opts.Surface = &surface.Manager{}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.Intensity <= 0 {
		opts.Intensity = 1
	}
	return &Scheduler{
		host:      opts.Host,
		surface:   opts.Surface,
		layers:    opts.Layers,
		speed:     opts.Speed,
		intensity: opts.Intensity,
		seed:      opts.Seed,
		base:      opts.Logger,
		logger:    opts.Logger,
		now:       opts.Now,
	}
}

// Mount configures the surface, seeds particles and oscillators, attaches the
// event listeners and requests the first frame. When the host has no canvas
// the mount does nothing and returns shared.ErrNoContext.
func (s *Scheduler) Mount() error {
	if s.state == Running {
		return shared.ErrAlreadyMounted
	}
	canvas := s.host.Canvas()
	if canvas == nil {
		s.logger.Error("cannot mount background", "err", shared.ErrNoContext)
		return fmt.Errorf("mount: %w", shared.ErrNoContext)
	}
	s.canvas = canvas
	s.logger = shared.WithLogger(s.base, "mount", shared.GenerateID())

	vp := s.host.Viewport()
	s.surface.Configure(vp.Width, vp.Height, vp.Ratio)
	vp = s.surface.Viewport()

	rng := oscillator.NewSource(s.seed)
	s.particles = particle.NewField(s.speed, s.intensity, rng)
	s.particles.Initialize(vp.Width, vp.Height)
	s.renderer = bars.NewRenderer(s.layers, oscillator.Generate(s.layers, rng))
	s.halo = newHalo()
	s.budget = newBudget(time.Second/config.FrameRate, statsRingSize)
	s.tracker.Reset()
	s.started = false

	s.unsubscribe = s.host.Subscribe(s.handle)
	s.state = Running
	s.pending = s.host.RequestFrame(s.frame)

	s.logger.Info("background mounted",
		"viewport", fmt.Sprintf("%.0fx%.0f@%.2g", vp.Width, vp.Height, vp.Ratio),
		"layers", len(s.layers),
		"particles", s.particles.Len())
	return nil
}

// Unmount stops the loop, cancels the pending frame and detaches every
// listener. It is safe to call more than once.
func (s *Scheduler) Unmount() {
	if s.state != Running {
		return
	}
	s.state = Stopped
	s.host.CancelFrame(s.pending)
	s.pending = 0
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	st := s.budget.stats()
	s.logger.Info("background unmounted", "frames", st.Frames, "avg", st.Average, "max", st.Max, "over_budget", st.Over)
}

// State returns the lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Pending returns the handle of the outstanding frame request, or 0.
func (s *Scheduler) Pending() Handle {
	return s.pending
}

// Pointer returns the tracked pointer state.
func (s *Scheduler) Pointer() pointer.State {
	return s.tracker.State()
}

// Stats returns frame budget statistics for the current or last mount.
func (s *Scheduler) Stats() Stats {
	if s.budget == nil {
		return Stats{}
	}
	return s.budget.stats()
}

// RecentFrames returns up to n of the latest frame work durations, oldest first.
func (s *Scheduler) RecentFrames(n int) []time.Duration {
	if s.budget == nil {
		return nil
	}
	return s.budget.snapshot(n)
}

func (s *Scheduler) handle(ev input.Event) {
	if s.state != Running {
		return
	}
	if ev.Kind == input.Resize {
		s.surface.Configure(ev.Width, ev.Height, ev.Ratio)
		vp := s.surface.Viewport()
		s.particles.Resize(vp.Width, vp.Height)
		s.logger.Debug("surface resized", "width", vp.Width, "height", vp.Height, "ratio", vp.Ratio)
		return
	}
	s.tracker.Handle(ev)
}

func (s *Scheduler) frame(timestamp time.Duration) {
	if s.state != Running {
		return
	}
	began := s.now()

	if !s.started {
		s.origin, s.last, s.started = timestamp, timestamp, true
	}
	delta := (timestamp - s.last).Seconds()
	if delta > maxDelta {
		delta = maxDelta
	}
	if delta < 0 {
		delta = 0
	}
	s.last = timestamp

	s.ctx = frame.Context{
		Time:     (timestamp - s.origin).Seconds(),
		Delta:    delta,
		Pointer:  s.tracker.State(),
		Viewport: s.surface.Viewport(),
	}
	c := s.canvas

	c.Clear(skyBottom)
	drawBackdrop(c, &s.ctx)
	s.particles.Advance(s.ctx.Delta)
	s.particles.Render(c, s.ctx.Time)
	s.renderer.Render(c, &s.ctx)
	s.halo.update(&s.ctx)
	s.halo.render(c)

	s.pending = s.host.RequestFrame(s.frame)

	took := s.now().Sub(began)
	if s.budget.record(took) {
		s.logger.Warn("frame over budget", "took", took, "budget", s.budget.limit)
	}
}
