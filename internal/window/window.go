// window is the frame driver: it owns one world and one surface, and ticks
// the world (events, Update, Picture) once per frame on the UI context.
package window

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/silbinarywolf/toy-jazz/input"
	"github.com/silbinarywolf/toy-jazz/internal/config"
	"github.com/silbinarywolf/toy-jazz/internal/logging"
	"github.com/silbinarywolf/toy-jazz/internal/monotime"
	"github.com/silbinarywolf/toy-jazz/internal/renderer"
	"github.com/silbinarywolf/toy-jazz/internal/world"
	"github.com/silbinarywolf/toy-jazz/picture"
)

// State is the lifecycle of a window
type State int32

const (
	// Created means the surface has not been constructed yet
	Created State = iota
	// Running means frames are being produced
	Running
	// Closed is terminal, no frame starts after it
	Closed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// WorldError is a panic raised by a world behaviour. It ends the frame loop.
type WorldError struct {
	// Phase is one of event, update, picture or draw
	Phase string
	Value interface{}
}

func (e *WorldError) Error() string {
	return fmt.Sprintf("world panicked during %s: %v", e.Phase, e.Value)
}

// Unwrap returns the panic value if it was an error
func (e *WorldError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Options configure a window. Width or Height <= 0 asks for fullscreen.
type Options struct {
	Title         string
	Width, Height int
	// Config defaults to config.Default() when left zero
	Config config.Config
	// Clock defaults to monotime.System
	Clock monotime.Clock
	// Logger defaults to a discarding logger
	Logger *log.Logger
}

// WantsFullscreen reports whether the size is the fullscreen sentinel
func (o Options) WantsFullscreen() bool {
	return o.Width <= 0 || o.Height <= 0
}

func (o Options) withDefaults() Options {
	if o.Config.TPS == 0 {
		o.Config = config.Default()
	}
	if o.Clock == nil {
		o.Clock = monotime.System
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return o
}

// Window is the handle of a window. Every method is safe to call from any
// goroutine, including from inside the world's behaviours.
type Window struct {
	options Options
	world   world.World
	logger  *log.Logger

	// fields below are only touched on the UI context
	surface   renderer.Surface
	events    input.Source
	eventBuf  []input.Event
	started   bool
	startTime time.Duration
	lastTime  time.Duration
	picture   picture.Picture
	cursorX   int
	cursorY   int
	dragging  bool

	state       atomic.Int32
	constructed atomic.Bool
	fullscreen  atomic.Bool
	frames      atomic.Int64

	mu           sync.Mutex
	zoom         float64
	panX         float64
	panY         float64
	err          error
	closeSurface func()

	closeOnce sync.Once
	done      chan struct{}
}

var (
	_ renderer.Game          = new(Window)
	_ renderer.SurfaceCloser = new(Window)
)

func newWindow(w world.World, options Options) *Window {
	options = options.withDefaults()
	return &Window{
		options: options,
		world:   w,
		logger:  options.Logger.With("title", options.Title),
		zoom:    1,
		done:    make(chan struct{}),
	}
}

// attach binds the constructed surface, on the UI context. closeSurface
// closes it from any goroutine except the UI context.
func (w *Window) attach(surface renderer.Surface, fullscreen bool, closeSurface func()) {
	w.surface = surface
	w.events = surface.Events()
	w.mu.Lock()
	w.closeSurface = closeSurface
	w.mu.Unlock()
	w.fullscreen.Store(fullscreen)
	w.constructed.Store(true)
	w.state.CompareAndSwap(int32(Created), int32(Running))
}

func (w *Window) Title() string {
	return w.options.Title
}

// Size returns the requested size, 0x0 for a fullscreen request
func (w *Window) Size() (width, height int) {
	return w.options.Width, w.options.Height
}

func (w *Window) State() State {
	return State(w.state.Load())
}

// Constructed reports whether a surface was created for the window. A window
// whose creation failed is never constructed and is closed immediately.
func (w *Window) Constructed() bool {
	return w.constructed.Load()
}

// Fullscreen reports whether the surface was placed in fullscreen mode.
func (w *Window) Fullscreen() bool {
	return w.fullscreen.Load()
}

// Frames returns the number of completed ticks.
func (w *Window) Frames() int64 {
	return w.frames.Load()
}

// Err returns the error that closed the window, or nil if it is open or was
// closed normally.
func (w *Window) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Done is closed once the window is closed.
func (w *Window) Done() <-chan struct{} {
	return w.done
}

// Wait blocks until the window is closed and returns Err.
func (w *Window) Wait() error {
	<-w.done
	return w.Err()
}

// Close stops the frame loop and closes the surface. A tick already in
// progress completes, no further tick starts.
func (w *Window) Close() {
	w.closeOnce.Do(func() {
		w.state.Store(int32(Closed))
		close(w.done)
		w.mu.Lock()
		closeSurface := w.closeSurface
		w.mu.Unlock()
		if closeSurface != nil {
			// Close may be called from a world behaviour on the UI context,
			// which can't wait for its own queue.
			go closeSurface()
		}
		w.logger.Info("window closed", "frames", w.frames.Load())
	})
}

func (w *Window) isClosed() bool {
	return w.State() == Closed
}

// fail records err as the reason the window closed, the first error wins.
func (w *Window) fail(err error) {
	w.mu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.mu.Unlock()
	w.Close()
}

// SurfaceClosed is called by the toolkit once the surface stopped.
func (w *Window) SurfaceClosed(err error) {
	if err != nil && w.Err() == nil {
		w.logger.Error("surface stopped", "err", err)
		w.fail(errors.Wrap(err, "surface stopped"))
		return
	}
	w.Close()
}

// Update runs one tick: deliver events, advance the world, then take its
// picture for Draw.
func (w *Window) Update() (err error) {
	if w.isClosed() {
		return renderer.ErrTerminated
	}
	phase := "event"
	defer func() {
		if r := recover(); r != nil {
			worldErr := &WorldError{Phase: phase, Value: r}
			w.logger.Error("world failed", "phase", phase, "panic", r)
			w.fail(worldErr)
			err = worldErr
		}
	}()

	now := w.options.Clock.Now()
	if !w.started {
		w.started = true
		w.startTime = now
		w.lastTime = now
	}
	elapsed := (now - w.startTime).Seconds()
	delta := (now - w.lastTime).Seconds()
	w.lastTime = now

	if w.events != nil {
		w.eventBuf = w.events.Poll(w.eventBuf[:0])
		for _, event := range w.eventBuf {
			w.handleViewEvent(event)
			world.HandleEvent(w.world, event)
		}
	}

	phase = "update"
	w.world.Update(elapsed, delta)

	phase = "picture"
	w.picture = w.world.Picture()

	w.frames.Add(1)
	return nil
}

// Draw renders the picture of the latest tick with the view transform.
func (w *Window) Draw(screen renderer.Screen) {
	p := w.picture
	if p == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			// the next Update sees the closed state and ends the loop
			w.logger.Error("world failed", "phase", "draw", "panic", r)
			w.fail(&WorldError{Phase: "draw", Value: r})
		}
	}()
	zoom, panX, panY := w.View()
	p.Draw(picture.NewTransformScreen(screen, float32(zoom), float32(panX), float32(panY)))
}

// Layout uses the full outside size, so resizing shows more of the world.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// View returns the current zoom factor and pan offset.
func (w *Window) View() (zoom, panX, panY float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.zoom, w.panX, w.panY
}

func (w *Window) Zoom() float64 {
	zoom, _, _ := w.View()
	return zoom
}

func (w *Window) Pan() (x, y float64) {
	_, x, y = w.View()
	return x, y
}

// SetZoom sets the zoom factor, clamped to the configured limits.
func (w *Window) SetZoom(zoom float64) {
	if w.isClosed() {
		return
	}
	w.mu.Lock()
	w.zoom = w.clampZoom(zoom)
	w.mu.Unlock()
}

// ZoomBy multiplies the zoom factor around the origin.
func (w *Window) ZoomBy(factor float64) {
	w.zoomAt(factor, 0, 0)
}

// zoomAt multiplies the zoom factor keeping the screen point x, y fixed
func (w *Window) zoomAt(factor float64, x, y float64) {
	if w.isClosed() || factor <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	zoom := w.clampZoom(w.zoom * factor)
	ratio := zoom / w.zoom
	w.panX = x - (x-w.panX)*ratio
	w.panY = y - (y-w.panY)*ratio
	w.zoom = zoom
}

func (w *Window) clampZoom(zoom float64) float64 {
	view := w.options.Config.View
	return math.Max(view.MinZoom, math.Min(view.MaxZoom, zoom))
}

func (w *Window) SetPan(x, y float64) {
	if w.isClosed() {
		return
	}
	w.mu.Lock()
	w.panX, w.panY = x, y
	w.mu.Unlock()
}

func (w *Window) PanBy(dx, dy float64) {
	if w.isClosed() {
		return
	}
	w.mu.Lock()
	w.panX += dx
	w.panY += dy
	w.mu.Unlock()
}

// ResetView restores zoom 1 and no pan.
func (w *Window) ResetView() {
	if w.isClosed() {
		return
	}
	w.mu.Lock()
	w.zoom, w.panX, w.panY = 1, 0, 0
	w.mu.Unlock()
}

// handleViewEvent applies the built-in zoom and pan controls
func (w *Window) handleViewEvent(event input.Event) {
	if !w.options.Config.View.Interactive {
		return
	}
	switch event := event.(type) {
	case input.WheelEvent:
		step := w.options.Config.View.ZoomStep
		if event.DY > 0 {
			w.zoomAt(step, float64(w.cursorX), float64(w.cursorY))
		} else if event.DY < 0 {
			w.zoomAt(1/step, float64(w.cursorX), float64(w.cursorY))
		}
	case input.MouseButtonEvent:
		w.cursorX, w.cursorY = event.X, event.Y
		if event.Button == input.MouseButtonRight {
			w.dragging = event.Pressed
		}
	case input.MouseMoveEvent:
		if w.dragging {
			w.PanBy(float64(event.X-w.cursorX), float64(event.Y-w.cursorY))
		}
		w.cursorX, w.cursorY = event.X, event.Y
	}
}
