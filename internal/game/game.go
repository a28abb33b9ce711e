// Package game hosts the background inside an Ebitengine window. Game is both
// the ebiten.Game driven by the engine and the scheduler.Host the animation
// mounts onto.
package game

import (
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/neon-bars/internal/config"
	"github.com/iburimskiy/neon-bars/internal/input"
	"github.com/iburimskiy/neon-bars/internal/scheduler"
	"github.com/iburimskiy/neon-bars/internal/shared"
	"github.com/iburimskiy/neon-bars/internal/snapshot"
	"github.com/iburimskiy/neon-bars/internal/surface"
)

var frameBudget = time.Second / config.FrameRate

// Options configures a Game.
type Options struct {
	Surface *surface.Manager
	// Width and Height are the initial window size in CSS pixels.
	Width, Height int
	Snapshots     *snapshot.Writer
	Logger        *log.Logger
}

type Game struct {
	manager  *surface.Manager
	canvas   *EbitenCanvas
	shots    *snapshot.Writer
	logger   *log.Logger
	start    time.Time
	viewport surface.Viewport

	nextHandle scheduler.Handle
	pendingID  scheduler.Handle
	pending    scheduler.FrameFunc

	nextSub  int
	handlers map[int]input.Handler

	poller  input.Poller
	touches []ebiten.TouchID
	points  []input.Point

	stats    FrameStats
	debug    bool
	wantShot bool
	shot     *image.RGBA
	status   string
}

func New(opts Options) *Game {
	if opts.Surface == nil {
		opts.Surface = &surface.Manager{}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Snapshots == nil {
		opts.Snapshots = snapshot.NewWriter("")
	}
	return &Game{
		manager:  opts.Surface,
		canvas:   NewEbitenCanvas(opts.Surface),
		shots:    opts.Snapshots,
		logger:   opts.Logger,
		start:    time.Now(),
		viewport: surface.Viewport{Width: float64(opts.Width), Height: float64(opts.Height), Ratio: 1},
		handlers: map[int]input.Handler{},
	}
}

// FrameStats reports frame budget numbers for the debug overlay.
type FrameStats interface {
	Stats() scheduler.Stats
	RecentFrames(n int) []time.Duration
}

// stripLength is how many recent frames the overlay plots.
const stripLength = 48

// ShowStats makes the debug overlay report frame budget numbers from s.
func (g *Game) ShowStats(s FrameStats) {
	g.stats = s
}

// RequestFrame implements scheduler.Host. Only one request is outstanding at
// a time; a new request replaces the previous one.
func (g *Game) RequestFrame(fn scheduler.FrameFunc) scheduler.Handle {
	g.nextHandle++
	g.pendingID = g.nextHandle
	g.pending = fn
	return g.pendingID
}

// CancelFrame implements scheduler.Host.
func (g *Game) CancelFrame(h scheduler.Handle) {
	if h != 0 && h == g.pendingID {
		g.pendingID = 0
		g.pending = nil
	}
}

// Viewport implements scheduler.Host.
func (g *Game) Viewport() surface.Viewport {
	return g.viewport
}

// Canvas implements scheduler.Host.
func (g *Game) Canvas() surface.Canvas {
	return g.canvas
}

// Subscribe implements scheduler.Host. A new subscriber starts from a fresh
// input state so it sees the current pointer as a move.
func (g *Game) Subscribe(h input.Handler) func() {
	g.poller.Reset()
	g.nextSub++
	id := g.nextSub
	g.handlers[id] = h
	return func() { delete(g.handlers, id) }
}

func (g *Game) emit(ev input.Event) {
	for _, h := range g.handlers {
		h(ev)
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.wantShot = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}

	if g.shot != nil {
		img := g.shot
		g.shot = nil
		g.saveSnapshot(img)
	}

	for _, ev := range g.poller.Step(g.sample()) {
		g.emit(ev)
	}
	return nil
}

// sample reads the cursor and touches, converting buffer pixels to CSS pixels.
func (g *Game) sample() input.Sample {
	ratio := g.viewport.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	cx, cy := ebiten.CursorPosition()

	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	g.points = g.points[:0]
	for _, id := range g.touches {
		tx, ty := ebiten.TouchPosition(id)
		g.points = append(g.points, input.Point{X: float64(tx) / ratio, Y: float64(ty) / ratio})
	}

	return input.Sample{
		CursorX: float64(cx) / ratio,
		CursorY: float64(cy) / ratio,
		Focused: ebiten.IsFocused(),
		Width:   g.viewport.Width,
		Height:  g.viewport.Height,
		Touches: g.points,
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Bind(screen)
	g.runPending()

	if g.wantShot {
		g.wantShot = false
		g.shot = capture(screen)
	}
	if g.debug {
		ebitenutil.DebugPrintAt(screen, g.overlay(), 12, 12)
	}
}

// runPending hands the outstanding frame request to its callback. The request
// is cleared first so the callback may schedule the next one.
func (g *Game) runPending() {
	fn := g.pending
	if fn == nil {
		return
	}
	g.pending, g.pendingID = nil, 0
	fn(time.Since(g.start))
}

func (g *Game) overlay() string {
	s := fmt.Sprintf("up %s  tps %.0f  fps %.0f  %.0fx%.0f@%.2g",
		formatDuration(time.Since(g.start)), ebiten.ActualTPS(), ebiten.ActualFPS(),
		g.viewport.Width, g.viewport.Height, g.viewport.Ratio)
	if g.stats != nil {
		st := g.stats.Stats()
		recent := g.stats.RecentFrames(stripLength)
		s += fmt.Sprintf("\nframe avg %s  max %s  over budget %d/%d", st.Average, st.Max, st.Over, st.Frames)
		s += fmt.Sprintf("\nlast %d [%s] peak %s", len(recent), frameStrip(recent, frameBudget), peak(recent))
	}
	if g.status != "" {
		s += "\n" + g.status
	}
	return s
}

// Layout reports a Resize whenever the window size or the device scale factor
// changes and renders at device resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := ebiten.Monitor().DeviceScaleFactor()
	if ratio <= 0 {
		ratio = 1
	}
	vp := surface.Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight), Ratio: ratio}
	if vp != g.viewport {
		g.viewport = vp
		g.emit(input.Event{Kind: input.Resize, Width: vp.Width, Height: vp.Height, Ratio: vp.Ratio})
	}

	if g.manager.Viewport() == vp {
		return g.manager.BufferSize()
	}
	return int(math.Round(vp.Width * ratio)), int(math.Round(vp.Height * ratio))
}

func (g *Game) saveSnapshot(img image.Image) {
	path, err := g.shots.Save(img)
	switch {
	case errors.Is(err, shared.ErrSnapshotCanceled):
		g.logger.Debug("snapshot canceled")
	case err != nil:
		g.logger.Error("snapshot failed", "err", err)
		g.status = "snapshot failed: " + err.Error()
	default:
		g.logger.Info("snapshot saved", "path", path)
		g.status = "saved " + path
	}
}

func capture(screen *ebiten.Image) *image.RGBA {
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	return img
}
