// headless is the headless mode driver so we can avoid building the ebiten
// library into test and server binaries
package headless

import (
	"context"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/silbinarywolf/toy-jazz/input"
	"github.com/silbinarywolf/toy-jazz/internal/renderer/internal/rendereriface"
	"github.com/silbinarywolf/toy-jazz/internal/uictx"
)

var _ rendereriface.Toolkit = new(Toolkit)

type Options struct {
	// TPS is the tick rate when not in Manual mode, defaults to 60
	TPS int
	// Manual disables the ticker, frames only advance with Step
	Manual bool
	// Fullscreen is the capability reported by the default device
	Fullscreen bool
	// ScreenWidth and ScreenHeight are the outside size passed to Layout
	// for fullscreen surfaces, defaults to 1280x720
	ScreenWidth, ScreenHeight int
	// Detached leaves the UI context unserviced, every Do fails
	Detached bool
}

// Toolkit runs every surface on a single goroutine that acts as the UI
// context.
type Toolkit struct {
	options Options
	queue   *uictx.Queue
	stop    chan struct{}
	stopped chan struct{}

	// surfaces are only touched on the UI context
	surfaces []*Surface

	mu     sync.Mutex
	open   int
	closed chan struct{}
}

// New starts the toolkit's UI context.
func New(options Options) *Toolkit {
	if options.TPS <= 0 {
		options.TPS = 60
	}
	if options.ScreenWidth <= 0 || options.ScreenHeight <= 0 {
		options.ScreenWidth, options.ScreenHeight = 1280, 720
	}
	tk := &Toolkit{
		options: options,
		queue:   uictx.New(),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
		closed:  make(chan struct{}, 1),
	}
	if options.Detached {
		close(tk.stopped)
		return tk
	}
	tk.queue.Attach()
	go tk.loop()
	return tk
}

func (tk *Toolkit) loop() {
	defer close(tk.stopped)
	defer tk.queue.Detach()

	var tick <-chan time.Time
	if !tk.options.Manual {
		// note(jae): 2021-03-18
		// this should probably align with how the Ebiten clock works
		// but I'm going to take a lazy shortcut.
		ticker := time.NewTicker(time.Second / time.Duration(tk.options.TPS))
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case req := <-tk.queue.Next():
			tk.queue.Run(req)
		case now := <-tick:
			tk.tickAt(now)
		case <-tk.stop:
			return
		}
	}
}

// tick updates then draws every visible surface once
func (tk *Toolkit) tick() {
	tk.stepSurfaces(func(*Surface) bool { return true })
}

// tickAt steps the surfaces whose own tick rate is due at now
func (tk *Toolkit) tickAt(now time.Time) {
	tk.stepSurfaces(func(s *Surface) bool { return s.due(now) })
}

func (tk *Toolkit) stepSurfaces(due func(s *Surface) bool) {
	alive := tk.surfaces[:0]
	for _, s := range tk.surfaces {
		if !due(s) {
			alive = append(alive, s)
			continue
		}
		if s.step() {
			alive = append(alive, s)
		}
	}
	tk.surfaces = alive
}

// TPS is the rate of the toolkit's ticker
func (tk *Toolkit) TPS() int {
	return tk.options.TPS
}

// Step runs one tick on the UI context and waits for it, for use with
// Options.Manual.
func (tk *Toolkit) Step(ctx context.Context) error {
	return tk.Do(ctx, tk.tick)
}

// Stop shuts the UI context down. Surfaces still open are not closed.
func (tk *Toolkit) Stop() {
	select {
	case <-tk.stop:
	default:
		close(tk.stop)
	}
	<-tk.stopped
}

func (tk *Toolkit) Do(ctx context.Context, task func()) error {
	return tk.queue.Call(ctx, task)
}

func (tk *Toolkit) CreateSurface(options rendereriface.SurfaceOptions, game rendereriface.Game) (rendereriface.Surface, error) {
	s := &Surface{
		toolkit: tk,
		options: options,
		game:    game,
		screen:  &Screen{},
		events:  &input.Queue{},
	}
	tk.mu.Lock()
	tk.open++
	tk.mu.Unlock()
	return s, nil
}

func (tk *Toolkit) DefaultDevice() rendereriface.Device {
	return device{fullscreen: tk.options.Fullscreen}
}

func (tk *Toolkit) NewImageFromImage(img image.Image) rendereriface.Image {
	return &Image{Bounds: img.Bounds()}
}

// Main runs run and then waits for every surface to close. The UI context is
// the toolkit's own goroutine, so the calling goroutine only waits.
func (tk *Toolkit) Main(run func()) error {
	run()
	for {
		tk.mu.Lock()
		open := tk.open
		tk.mu.Unlock()
		if open == 0 {
			return nil
		}
		select {
		case <-tk.closed:
		case <-tk.stopped:
			return uictx.ErrStopped
		}
	}
}

func (tk *Toolkit) surfaceClosed() {
	tk.mu.Lock()
	tk.open--
	tk.mu.Unlock()
	select {
	case tk.closed <- struct{}{}:
	default:
	}
}

type device struct {
	fullscreen bool
}

func (d device) SupportsExclusiveFullscreen() bool {
	return d.fullscreen
}

// Image records the bounds of the image it was made from
type Image struct {
	Bounds image.Rectangle
}

// Surface is a headless surface. Only Inject and the query methods may be
// used off the UI context.
type Surface struct {
	toolkit *Toolkit
	options rendereriface.SurfaceOptions
	game    rendereriface.Game
	screen  *Screen
	events  *input.Queue

	// nextTick is only touched on the UI context
	nextTick time.Time

	mu         sync.Mutex
	visible    bool
	fullscreen bool
	closed     bool
	frames     int
	err        error
}

var _ rendereriface.Surface = new(Surface)

func (s *Surface) SetFullscreen(device rendereriface.Device) {
	s.mu.Lock()
	s.fullscreen = true
	s.mu.Unlock()
	s.Show()
}

func (s *Surface) Show() {
	s.mu.Lock()
	if s.visible || s.closed {
		s.mu.Unlock()
		return
	}
	s.visible = true
	s.mu.Unlock()
	s.toolkit.surfaces = append(s.toolkit.surfaces, s)
}

func (s *Surface) Close() {
	s.finish(nil)
}

func (s *Surface) IsFullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullscreen
}

func (s *Surface) Events() input.Source {
	return s.events
}

// Inject queues events to be delivered on the next tick.
func (s *Surface) Inject(events ...input.Event) {
	s.events.Push(events...)
}

func (s *Surface) Title() string {
	return s.options.Title
}

func (s *Surface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *Surface) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Frames is the number of ticks that drew a frame.
func (s *Surface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Err is the error that ended the frame loop, if any.
func (s *Surface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// LastFrame returns the draw calls of the most recent frame.
func (s *Surface) LastFrame() []DrawCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DrawCall(nil), s.screen.calls...)
}

// step runs one update and draw, returning false once the surface is done.
func (s *Surface) step() bool {
	if s.Closed() {
		return false
	}
	if err := s.game.Update(); err != nil {
		if err == rendereriface.ErrTerminated {
			err = nil
		}
		s.finish(err)
		return false
	}

	width, height := s.game.Layout(s.outsideSize())
	frame := &Screen{width: width, height: height}
	s.game.Draw(frame)

	s.mu.Lock()
	s.screen = frame
	s.frames++
	s.mu.Unlock()
	return true
}

// due reports whether the surface's tick rate allows a tick at now. Surfaces
// without a rate, or a rate above the toolkit's, tick with the toolkit.
func (s *Surface) due(now time.Time) bool {
	if s.options.TPS <= 0 || s.options.TPS >= s.toolkit.options.TPS {
		return true
	}
	interval := time.Second / time.Duration(s.options.TPS)
	// ticker jitter must not skip a tick that is only just early
	slack := time.Second / time.Duration(s.toolkit.options.TPS) / 2
	if !s.nextTick.IsZero() && now.Before(s.nextTick.Add(-slack)) {
		return false
	}
	if s.nextTick.IsZero() || now.Sub(s.nextTick) > interval {
		s.nextTick = now
	}
	s.nextTick = s.nextTick.Add(interval)
	return true
}

func (s *Surface) outsideSize() (int, int) {
	if s.IsFullscreen() {
		return s.toolkit.options.ScreenWidth, s.toolkit.options.ScreenHeight
	}
	if s.options.Width > 0 && s.options.Height > 0 {
		return s.options.Width, s.options.Height
	}
	return s.options.FallbackWidth, s.options.FallbackHeight
}

func (s *Surface) finish(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.err = err
	s.mu.Unlock()

	if closer, ok := s.game.(rendereriface.SurfaceCloser); ok {
		closer.SurfaceClosed(err)
	}
	s.toolkit.surfaceClosed()
}

// DrawCall is one recorded screen operation
type DrawCall struct {
	Image   rendereriface.Image
	Options rendereriface.ImageOptions
	// Fill is set for Fill calls, Image is nil then
	Fill color.Color
}

// Screen records draw calls
type Screen struct {
	width, height int
	calls         []DrawCall
}

var _ rendereriface.Screen = new(Screen)

func (screen *Screen) DrawImage(img rendereriface.Image, options rendereriface.ImageOptions) {
	screen.calls = append(screen.calls, DrawCall{Image: img, Options: options})
}

func (screen *Screen) Fill(clr color.Color) {
	screen.calls = append(screen.calls, DrawCall{Fill: clr})
}

func (screen *Screen) Size() (int, int) {
	return screen.width, screen.height
}

// Calls returns the recorded draw calls
func (screen *Screen) Calls() []DrawCall {
	return screen.calls
}
